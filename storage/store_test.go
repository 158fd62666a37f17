package storage

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"todo-service/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestNewRequiresDir(t *testing.T) {
	_, err := New("")
	require.Error(t, err)
}

func TestLoadInitializesMissingCollection(t *testing.T) {
	s := newTestStore(t)

	records, err := Load[record](s, "items")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)

	// The backing file must exist after first access, holding an empty array.
	data, err := os.ReadFile(filepath.Join(s.Dir(), "items.json"))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestSaveLoadRoundtrip(t *testing.T) {
	s := newTestStore(t)

	in := []record{{ID: "1", Text: "first"}, {ID: "2", Text: "second"}}
	require.NoError(t, Save(s, "items", in))

	out, err := Load[record](s, "items")
	require.NoError(t, err)
	assert.Equal(t, in, out)

	// Collections are pretty-printed so the files stay human-readable.
	data, err := os.ReadFile(filepath.Join(s.Dir(), "items.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "  {\n")
}

func TestSaveOverwritesCollection(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, Save(s, "items", []record{{ID: "1"}, {ID: "2"}}))
	require.NoError(t, Save(s, "items", []record{{ID: "3"}}))

	out, err := Load[record](s, "items")
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: "3"}}, out)
}

func TestLoadCorruptCollection(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "items.json"), []byte("{not json"), 0o644))

	_, err := Load[record](s, "items")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrStorage))
}

func TestUpdateAbortsWithoutWriting(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, Save(s, "items", []record{{ID: "1"}}))

	boom := errors.New("boom")
	err := Update(s, "items", func(records []record) ([]record, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	out, err := Load[record](s, "items")
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: "1"}}, out)
}

func TestUpdateSerializesConcurrentWriters(t *testing.T) {
	s := newTestStore(t)

	const writers = 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := Update(s, "items", func(records []record) ([]record, error) {
				return append(records, record{ID: "x"}), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	out, err := Load[record](s, "items")
	require.NoError(t, err)
	assert.Len(t, out, writers)
}
