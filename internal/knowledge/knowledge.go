// Package knowledge loads the knowledge-base text the assistant answers from.
package knowledge

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"hub-assistant/internal/integrations/paramstore"
)

// ErrNotFound is returned when the knowledge-base resource does not exist.
var ErrNotFound = errors.New("knowledge: knowledge base not found")

// FileLoader reads the knowledge base from a local file on every call.
type FileLoader struct {
	Path string
}

func (l FileLoader) Load(_ context.Context) (string, error) {
	if strings.TrimSpace(l.Path) == "" {
		return "", ErrNotFound
	}
	raw, err := os.ReadFile(l.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, l.Path)
	}
	if err != nil {
		return "", fmt.Errorf("knowledge: read %s: %w", l.Path, err)
	}
	return string(raw), nil
}

type Getter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

// ParamLoader reads the knowledge base from a parameter store entry.
type ParamLoader struct {
	getter Getter
	name   string
}

func NewParamLoader(g Getter, name string) (*ParamLoader, error) {
	if g == nil {
		return nil, errors.New("knowledge: getter must not be nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("knowledge: parameter name must not be empty")
	}
	return &ParamLoader{getter: g, name: name}, nil
}

func (l *ParamLoader) Load(ctx context.Context) (string, error) {
	v, err := l.getter.GetParameter(ctx, l.name)
	if errors.Is(err, paramstore.ErrNotFound) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, l.name)
	}
	if err != nil {
		return "", fmt.Errorf("knowledge: load %s: %w", l.name, err)
	}
	return v, nil
}
