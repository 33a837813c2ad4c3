package reports

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idRange(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("id-%02d", i)
	}
	return ids
}

func TestChunkIDs(t *testing.T) {
	chunks := chunkIDs(idRange(25), 10)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 10)
	assert.Len(t, chunks[1], 10)
	assert.Len(t, chunks[2], 5)

	assert.Len(t, chunkIDs(idRange(10), 10), 1)
	assert.Empty(t, chunkIDs(nil, 10))
}

func TestDistinctIDs(t *testing.T) {
	got := distinctIDs([]string{"b", "", "a", "b", "a", "c", ""})
	assert.Equal(t, []string{"b", "a", "c"}, got)
}

func TestJoinByIDChunksQueries(t *testing.T) {
	var (
		mu    sync.Mutex
		sizes []int
	)
	fetch := func(ctx context.Context, ids []string) (map[string]string, error) {
		mu.Lock()
		sizes = append(sizes, len(ids))
		mu.Unlock()
		out := make(map[string]string, len(ids))
		for _, id := range ids {
			out[id] = "title-" + id
		}
		return out, nil
	}

	got := JoinByID(context.Background(), idRange(25), ChunkSize, fetch)

	require.Len(t, got, 25)
	assert.Equal(t, "title-id-07", got["id-07"])

	total := 0
	for _, n := range sizes {
		require.LessOrEqual(t, n, ChunkSize)
		total += n
	}
	assert.Equal(t, 25, total)
	assert.Len(t, sizes, 3)
}

func TestJoinByIDDeduplicates(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, ids []string) (map[string]int, error) {
		calls++
		out := make(map[string]int, len(ids))
		for _, id := range ids {
			out[id] = len(id)
		}
		return out, nil
	}

	got := JoinByID(context.Background(), []string{"x", "x", "", "y", "x"}, ChunkSize, fetch)

	assert.Equal(t, 1, calls)
	assert.Equal(t, map[string]int{"x": 1, "y": 1}, got)
}

func TestJoinByIDPartialFailure(t *testing.T) {
	fetch := func(ctx context.Context, ids []string) (map[string]string, error) {
		for _, id := range ids {
			if id == "id-12" {
				return nil, errors.New("connection reset")
			}
		}
		out := make(map[string]string, len(ids))
		for _, id := range ids {
			out[id] = "ok"
		}
		return out, nil
	}

	got := JoinByID(context.Background(), idRange(25), ChunkSize, fetch)

	// The chunk holding id-12 (ids 10..19) is dropped; the other two land.
	require.Len(t, got, 15)
	assert.Equal(t, "ok", got["id-03"])
	assert.Equal(t, "ok", got["id-24"])
	_, hit := got["id-12"]
	assert.False(t, hit)
	_, hit = got["id-15"]
	assert.False(t, hit)
}

func TestJoinByIDEmptyInput(t *testing.T) {
	fetch := func(ctx context.Context, ids []string) (map[string]string, error) {
		t.Fatal("fetch should not run for empty input")
		return nil, nil
	}
	got := JoinByID(context.Background(), []string{"", ""}, ChunkSize, fetch)
	assert.Empty(t, got)
}
