package knowledge

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"hub-assistant/internal/integrations/paramstore"
)

func TestFileLoader_ReadsWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge_base.txt")
	require.NoError(t, os.WriteFile(path, []byte("HUB has three modules.\nReceiving, storage, shipping.\n"), 0o600))

	kb, err := FileLoader{Path: path}.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "HUB has three modules.\nReceiving, storage, shipping.\n", kb)
}

func TestFileLoader_Missing(t *testing.T) {
	_, err := FileLoader{Path: filepath.Join(t.TempDir(), "absent.txt")}.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)

	_, err = FileLoader{}.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

type fakeGetter struct {
	val string
	err error
}

func (f *fakeGetter) GetParameter(_ context.Context, _ string) (string, error) {
	return f.val, f.err
}

func TestNewParamLoader_Validates(t *testing.T) {
	_, err := NewParamLoader(nil, "knowledge_base")
	require.Error(t, err)

	_, err = NewParamLoader(&fakeGetter{}, " ")
	require.Error(t, err)
}

func TestParamLoader_Load(t *testing.T) {
	l, err := NewParamLoader(&fakeGetter{val: "kb"}, "knowledge_base")
	require.NoError(t, err)
	kb, err := l.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "kb", kb)

	l, err = NewParamLoader(&fakeGetter{err: fmt.Errorf("%w: %q", paramstore.ErrNotFound, "/x/knowledge_base")}, "knowledge_base")
	require.NoError(t, err)
	_, err = l.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)

	l, err = NewParamLoader(&fakeGetter{err: errors.New("ssm down")}, "knowledge_base")
	require.NoError(t, err)
	_, err = l.Load(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}
