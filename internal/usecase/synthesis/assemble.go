package synthesis

import "strings"

// AssembleContext pairs titles with fetched contents positionally, drops
// pairs whose content is empty, and joins the survivors as "title: content"
// lines in ranking order. Returns "" when nothing survives.
func AssembleContext(titles, contents []string) string {
	n := len(titles)
	if len(contents) < n {
		n = len(contents)
	}

	var lines []string
	for i := 0; i < n; i++ {
		if contents[i] == "" {
			continue
		}
		lines = append(lines, titles[i]+": "+contents[i])
	}
	return strings.Join(lines, "\n")
}
