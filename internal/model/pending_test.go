package model_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/sbomkit/vex2pdf/internal/model"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	return path
}

func TestNewIdentity(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	jsonPath := touch(t, dir, "doc.json")
	id, err := model.NewIdentity(jsonPath)
	require.NoError(t, err)
	require.Equal(t, model.KindJSON, id.Kind)
	require.True(t, id.Supported())

	// a directory exists but classifies as unsupported
	dirID, err := model.NewIdentity(dir)
	require.NoError(t, err)
	require.False(t, dirID.Supported())

	_, err = model.NewIdentity(filepath.Join(dir, "does-not-exist.json"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestPendingSetAdd(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	set := model.NewPendingSet()

	require.NoError(t, set.Add(touch(t, dir, "a.json")))
	require.NoError(t, set.Add(touch(t, dir, "b.xml")))
	require.Equal(t, 2, set.Len())

	err := set.Add(touch(t, dir, "c.txt"))
	require.ErrorIs(t, err, model.ErrUnsupportedType)
	require.Equal(t, 2, set.Len())

	err = set.Add(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, fs.ErrNotExist)
	require.Equal(t, 2, set.Len())
}

func TestPendingSetAddIdempotent(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	set := model.NewPendingSet()
	path := touch(t, dir, "dup.json")

	require.NoError(t, set.Add(path))
	require.NoError(t, set.Add(path))
	require.Equal(t, 1, set.Len())
}

func TestPendingSetAddAllowed(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	jsonPath := touch(t, dir, "doc.json")
	xmlPath := touch(t, dir, "doc.xml")
	txtPath := touch(t, dir, "doc.txt")

	type given struct {
		path    string
		ignored map[model.Kind]bool
	}
	var testCases = []struct {
		scenario string
		given    given
		thenErr  error
		thenLen  int
	}{
		{"empty ignore list inserts", given{jsonPath, nil}, nil, 1},
		{"ignored kind rejected", given{jsonPath, map[model.Kind]bool{model.KindJSON: true}}, model.ErrIgnoredByUser, 0},
		{"other kind unaffected", given{xmlPath, map[model.Kind]bool{model.KindJSON: true}}, nil, 1},
		{"explicit false is not ignored", given{xmlPath, map[model.Kind]bool{model.KindXML: false}}, nil, 1},
		{"unsupported beats ignored", given{txtPath, map[model.Kind]bool{model.KindJSON: true}}, model.ErrUnsupportedType, 0},
	}

	for _, tt := range testCases {
		t.Run(tt.scenario, func(t *testing.T) {
			t.Parallel()
			set := model.NewPendingSet()
			err := set.AddAllowed(tt.given.path, tt.given.ignored)
			if tt.thenErr != nil {
				require.ErrorIs(t, err, tt.thenErr)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.thenLen, set.Len())
		})
	}
}

func TestPendingSetCountByKind(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	set := model.NewPendingSet()

	require.NoError(t, set.Add(touch(t, dir, "a.json")))
	require.NoError(t, set.Add(touch(t, dir, "b.json")))
	require.NoError(t, set.Add(touch(t, dir, "c.xml")))

	require.Equal(t, 2, set.CountByKind(model.KindJSON))
	require.Equal(t, 1, set.CountByKind(model.KindXML))
	require.Equal(t, 0, set.CountByKind(model.KindUnsupported))
}

func TestPendingSetDrain(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	set := model.NewPendingSet()

	want := make(map[string]struct{})
	for _, name := range []string{"a.json", "b.json", "c.xml", "d.xml"} {
		path := touch(t, dir, name)
		want[path] = struct{}{}
		require.NoError(t, set.Add(path))
	}

	seen := make(map[string]struct{})
	for id := range set.Drain() {
		_, dup := seen[id.Path]
		require.False(t, dup, "identity yielded twice: %s", id.Path)
		require.True(t, id.Supported())
		seen[id.Path] = struct{}{}
	}

	require.Equal(t, want, seen)
	require.Equal(t, 0, set.Len())
}

func TestPendingSetDrainEarlyStop(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	set := model.NewPendingSet()
	require.NoError(t, set.Add(touch(t, dir, "a.json")))
	require.NoError(t, set.Add(touch(t, dir, "b.json")))

	for range set.Drain() {
		break
	}
	// the consumed identity is gone, the rest stays
	require.Equal(t, 1, set.Len())
}
