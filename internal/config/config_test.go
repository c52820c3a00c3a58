package config

import (
	"os"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Embedding: EmbeddingConfig{
			APIKey: "test-key",
			Model:  "all-MiniLM-L6-v2",
		},
		Generation: GenerationConfig{
			APIKey: "test-key",
			Models: []string{"google/gemma-2-9b-it:free"},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_BadPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for port 0")
	}
}

func TestValidate_MissingModels(t *testing.T) {
	cfg := validConfig()
	cfg.Generation.Models = nil

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for empty generation.models")
	}

	expected := "generation.models must list at least one model"
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_BlankModel(t *testing.T) {
	cfg := validConfig()
	cfg.Generation.Models = []string{"google/gemma-2-9b-it:free", "  "}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for blank model name")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Retrieval.TopK != 3 {
		t.Errorf("default top_k = %d, want 3", cfg.Retrieval.TopK)
	}
	if cfg.Fetch.TimeoutSec != 10 {
		t.Errorf("default fetch timeout = %d, want 10", cfg.Fetch.TimeoutSec)
	}
	if cfg.Generation.TimeoutSec != 5 {
		t.Errorf("default generation timeout = %d, want 5", cfg.Generation.TimeoutSec)
	}
	if cfg.Generation.MaxTokens != 300 {
		t.Errorf("default max tokens = %d, want 300", cfg.Generation.MaxTokens)
	}
	if cfg.Generation.Temperature != 0.7 {
		t.Errorf("default temperature = %f, want 0.7", cfg.Generation.Temperature)
	}
}

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("CHATBOT_TEST_KEY", "secret")
	defer os.Unsetenv("CHATBOT_TEST_KEY")

	in := []byte("api_key: ${CHATBOT_TEST_KEY}\nbase_url: ${CHATBOT_TEST_URL:-https://example.com}\n")
	out := string(expandEnvVars(in))

	want := "api_key: secret\nbase_url: https://example.com\n"
	if out != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", out, want)
	}
}
