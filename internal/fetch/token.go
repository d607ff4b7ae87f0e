package fetch

import (
	"os"
	"strings"
)

// TokenSource supplies the current auth token. An empty token means
// "not signed in" and makes a poll cycle a no-op.
type TokenSource interface {
	Token() string
}

// FileTokenSource reads the token from a file on each call, so a
// re-login in another instance is picked up without restart.
type FileTokenSource struct {
	Path string
}

func (f FileTokenSource) Token() string {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// StaticTokenSource returns a fixed token. Used in tests.
type StaticTokenSource string

func (s StaticTokenSource) Token() string {
	return string(s)
}
