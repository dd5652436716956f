package upload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaths(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single", "/tmp/a.pdf", []string{"/tmp/a.pdf"}},
		{"whitespace separated", "/tmp/a.pdf /tmp/b.pdf", []string{"/tmp/a.pdf", "/tmp/b.pdf"}},
		{"newline separated", "/tmp/a.pdf\n/tmp/b.pdf\n", []string{"/tmp/a.pdf", "/tmp/b.pdf"}},
		{"escaped space", `/tmp/clinical\ guide.pdf`, []string{"/tmp/clinical guide.pdf"}},
		{"single quoted", `'/tmp/clinical guide.pdf' /tmp/b.pdf`, []string{"/tmp/clinical guide.pdf", "/tmp/b.pdf"}},
		{"double quoted", `"/tmp/it's here.pdf"`, []string{"/tmp/it's here.pdf"}},
		{"file url", "file:///tmp/clinical%20guide.pdf", []string{"/tmp/clinical guide.pdf"}},
		{"empty", "   \n ", nil},
		{"empty quotes", `''`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePaths(tt.text))
		})
	}
}

func TestParsePaths_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(home, "docs/a.pdf")}, ParsePaths("~/docs/a.pdf"))
}
