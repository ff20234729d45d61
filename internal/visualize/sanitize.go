package visualize

import "strings"

// sanitizeID replaces the characters spec §4.6 names (space, dot, dash,
// parentheses) with underscores so a name is safe to use as a diagram
// node id.
func sanitizeID(s string) string {
	replacer := strings.NewReplacer(
		" ", "_", ".", "_", "-", "_", "(", "_", ")", "_",
	)
	return replacer.Replace(s)
}

// sanitizeTitle replaces filesystem path-illegal characters with
// underscores so a title is safe to use as a file name.
func sanitizeTitle(s string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "_",
	)
	return replacer.Replace(s)
}
