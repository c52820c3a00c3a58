package domain

// Document is a record in the offline-built corpus metadata: a dense,
// zero-based id paired with the page url and title.
type Document struct {
	ID    int
	URL   string
	Title string
}

// Candidate is a single nearest-neighbor hit for one query. Lower distance
// means more similar. Candidates are ephemeral and never persisted.
type Candidate struct {
	ID       int
	Distance float32
}

// Source is a citation returned alongside an answer, one per candidate that
// participated in ranking, independent of whether its content fetch succeeded.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// QueryResult is the outcome of one end-to-end query resolution.
type QueryResult struct {
	Answer  string
	Sources []Source
}
