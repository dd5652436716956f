package upload

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// ParsePaths splits text pasted into the terminal into file paths.
// Terminals paste dropped files as shell words: quoted, backslash escaped
// or as file:// URLs, separated by whitespace or newlines.
func ParsePaths(text string) []string {
	var (
		paths   []string
		current strings.Builder
		quote   rune
		escaped bool
		inWord  bool
	)

	flush := func() {
		if inWord && current.Len() > 0 {
			paths = append(paths, normalisePath(current.String()))
		}
		current.Reset()
		inWord = false
	}

	for _, r := range text {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inWord = true
		case unicode.IsSpace(r):
			flush()
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	flush()

	return paths
}

func normalisePath(p string) string {
	if strings.HasPrefix(p, "file://") {
		if u, err := url.Parse(p); err == nil && u.Path != "" {
			p = u.Path
		}
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
