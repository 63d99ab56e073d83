package vector

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// localEmbedding is a deterministic embedding function so tests never
// touch a real provider. Texts sharing character 3-grams land near each
// other, which is enough signal for nearest-neighbor assertions.
func localEmbedding(_ context.Context, text string) ([]float32, error) {
	const dims = 64
	vec := make([]float32, dims)
	for i := 0; i+3 <= len(text); i++ {
		h := 0
		for _, c := range text[i : i+3] {
			h = h*31 + int(c)
		}
		if h < 0 {
			h = -h
		}
		vec[h%dims]++
	}
	// Normalize; chromem expects unit vectors for cosine similarity.
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		vec[0] = 1
		norm = 1
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec, nil
}

func newTestStore(t *testing.T) *ChromemStore {
	t.Helper()
	store, err := NewChromemStore(Config{DataDir: t.TempDir()}, localEmbedding)
	require.NoError(t, err)
	return store
}

func TestChromemStore_RequiresDataDir(t *testing.T) {
	_, err := NewChromemStore(Config{}, localEmbedding)
	assert.Error(t, err)
}

func TestChromemStore_QueryEmptyStore(t *testing.T) {
	store := newTestStore(t)

	hits, err := store.Query(context.Background(), "anything", 1, nil)
	require.NoError(t, err)
	assert.Nil(t, hits)
}

func TestChromemStore_AddAndQuery(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Add(ctx, Document{
		ID:      "flights_output",
		Content: `{"type":"object","properties":{"status":{"type":"string"}}}`,
		Metadata: map[string]string{
			"api_name": "flights",
			"type":     "output_schema",
		},
	})
	require.NoError(t, err)

	hits, err := store.Query(ctx, `{"type":"object","properties":{"flight_status":{"type":"string"}}}`, 1, nil)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "flights_output", hits[0].ID)
	assert.Equal(t, "flights", hits[0].Metadata["api_name"])
	assert.InDelta(t, float64(1-hits[0].Similarity), float64(hits[0].Distance()), 0.0001)
}

func TestChromemStore_QueryMetadataFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, Document{
		ID:       "flights_desc",
		Content:  "flight status API",
		Metadata: map[string]string{"api_name": "flights", "type": "description"},
	}))
	require.NoError(t, store.Add(ctx, Document{
		ID:       "flights_output",
		Content:  `{"type":"object","properties":{"status":{"type":"string"}}}`,
		Metadata: map[string]string{"api_name": "flights", "type": "output_schema"},
	}))

	hits, err := store.Query(ctx, "flight status API", 5, map[string]string{"type": "output_schema"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "flights_output", hits[0].ID)
}

func TestChromemStore_QueryFilterMatchesNothing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, Document{
		ID:       "flights_desc",
		Content:  "flight status API",
		Metadata: map[string]string{"api_name": "flights", "type": "description"},
	}))

	hits, err := store.Query(ctx, "anything", 1, map[string]string{"type": "output_schema"})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestChromemStore_QueryNeverExceedsK(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, doc := range []Document{
		{ID: "a_output", Content: "alpha schema", Metadata: map[string]string{"api_name": "a", "type": "output_schema"}},
		{ID: "b_output", Content: "beta schema", Metadata: map[string]string{"api_name": "b", "type": "output_schema"}},
		{ID: "c_output", Content: "gamma schema", Metadata: map[string]string{"api_name": "c", "type": "output_schema"}},
	} {
		require.NoError(t, store.Add(ctx, doc))
	}

	hits, err := store.Query(ctx, "alpha schema", 2, map[string]string{"type": "output_schema"})
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	// Asking for more than exists returns what exists, never more.
	hits, err = store.Query(ctx, "alpha schema", 10, nil)
	require.NoError(t, err)
	assert.Len(t, hits, 3)
}

func TestChromemStore_AddOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, Document{
		ID:       "flights_desc",
		Content:  "old description",
		Metadata: map[string]string{"api_name": "flights", "type": "description"},
	}))
	require.NoError(t, store.Add(ctx, Document{
		ID:       "flights_desc",
		Content:  "new description",
		Metadata: map[string]string{"api_name": "flights", "type": "description"},
	}))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	doc, err := store.Get(ctx, "flights_desc")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "new description", doc.Content)
}

func TestChromemStore_Reset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, Document{
		ID:       "flights_desc",
		Content:  "flight status API",
		Metadata: map[string]string{"api_name": "flights", "type": "description"},
	}))

	require.NoError(t, store.Reset(ctx))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Store stays usable after a reset.
	require.NoError(t, store.Add(ctx, Document{
		ID:       "flights_desc",
		Content:  "flight status API",
		Metadata: map[string]string{"api_name": "flights", "type": "description"},
	}))
}
