package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ReadMissingKeyKeepsFallback(t *testing.T) {
	store := New(NewMemoryKV())

	values := []string{"fallback"}
	store.Read("nope", &values)

	assert.Equal(t, []string{"fallback"}, values)
}

func TestStore_ReadCorruptValueKeepsFallback(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set("broken", []byte("{not json")))
	store := New(kv)

	values := []int{1, 2, 3}
	store.Read("broken", &values)

	assert.Equal(t, []int{1, 2, 3}, values)
}

func TestStore_WriteThenReadRoundtrip(t *testing.T) {
	store := New(NewMemoryKV())

	type rec struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	require.NoError(t, store.Write("recs", []rec{{Name: "a", Count: 2}}))

	out := []rec{}
	store.Read("recs", &out)
	assert.Equal(t, []rec{{Name: "a", Count: 2}}, out)
}

func TestStore_WriteReplacesWholeValue(t *testing.T) {
	store := New(NewMemoryKV())
	require.NoError(t, store.Write("k", []int{1, 2, 3}))
	require.NoError(t, store.Write("k", []int{9}))

	out := []int{}
	store.Read("k", &out)
	assert.Equal(t, []int{9}, out)
}

func TestFileKV_RoundtripAndMissing(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)

	_, ok, err := kv.Get("absent")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set("palteria_productos", []byte(`[{"id":1}]`)))
	raw, ok, err := kv.Get("palteria_productos")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":1}]`, string(raw))
}

func TestFileKV_SetReplaces(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, kv.Set("k", []byte(`"first"`)))
	require.NoError(t, kv.Set("k", []byte(`"second"`)))

	raw, ok, err := kv.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `"second"`, string(raw))
}
