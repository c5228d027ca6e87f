// Package envfile resolves named values from a line-oriented key=value file.
package envfile

import (
	"context"
	"os"
	"strings"
)

// Lookup returns the value of key in the file at path. When the file is
// missing or unreadable, or the key is absent, def is returned and reported
// as found only if it is non-empty.
//
// Blank lines and lines starting with '#' (after trimming) are skipped. Other
// lines are split on the first '='; name and value are trimmed. Lines without
// '=' are ignored and the first matching line wins.
func Lookup(path, key, def string) (string, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return def, def != ""
	}
	if v, ok := parse(raw, key); ok {
		return v, true
	}
	return def, def != ""
}

func parse(raw []byte, key string) (string, bool) {
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if strings.TrimSpace(name) == key {
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}

// Source serves secrets from a file, falling back to Defaults per key.
// The file is re-read on every call.
type Source struct {
	Path     string
	Defaults map[string]string
}

func (s Source) LookupSecret(_ context.Context, name string) (string, bool, error) {
	v, ok := Lookup(s.Path, name, s.Defaults[name])
	return v, ok, nil
}
