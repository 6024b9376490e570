// Package uri turns command-line media arguments into URIs the playback engine understands.
package uri

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// ErrInvalid is returned for arguments that cannot name any media.
var ErrInvalid = errors.New("invalid media location")

// Resolve converts a bare argument into a URI. An argument containing ':' is
// taken to carry a scheme and is returned verbatim; anything else is a local
// path and becomes an absolute file:// URI.
func Resolve(arg string) (string, error) {
	s := strings.TrimSpace(arg)
	if s == "" {
		return "", fmt.Errorf("%w: empty argument", ErrInvalid)
	}

	if strings.ContainsAny(s, "\x00\n\r") {
		return "", fmt.Errorf("%w: control characters in %q", ErrInvalid, s)
	}

	// mpv would read a leading dash as an option
	if strings.HasPrefix(s, "-") {
		return "", fmt.Errorf("%w: %q looks like a flag", ErrInvalid, s)
	}

	if strings.Contains(s, ":") {
		return s, nil
	}

	abs, err := filepath.Abs(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return "file://" + filepath.ToSlash(abs), nil
}

// Scheme returns the lower-cased scheme of a resolved URI, or "" when it has none.
func Scheme(u string) string {
	i := strings.Index(u, ":")
	if i <= 0 {
		return ""
	}
	return strings.ToLower(u[:i])
}

// Path returns the local filesystem path of a file:// URI.
func Path(u string) (string, bool) {
	if Scheme(u) != "file" {
		return "", false
	}

	parsed, err := url.Parse(u)
	if err != nil {
		return strings.TrimPrefix(u, "file://"), true
	}
	return filepath.FromSlash(parsed.Path), true
}
