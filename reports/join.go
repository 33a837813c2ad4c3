package reports

import (
	"context"
	"log"
	"sync"
)

// ChunkSize caps how many ids one enrichment query may carry. The reporting
// pipeline fixes this at 10 so per-query fan-in stays bounded regardless of
// the store backing it.
const ChunkSize = 10

// ChunkFetcher resolves one chunk of foreign ids to derived fields keyed by
// id. Implementations issue a single membership-filter query per call.
type ChunkFetcher[T any] func(ctx context.Context, ids []string) (map[string]T, error)

// JoinByID fetches the documents referenced by ids without one query per row:
// distinct non-empty ids are partitioned into chunks of at most size, one
// query per chunk, all chunks in flight concurrently. A failing chunk
// contributes nothing; the join is best effort, so callers keep their
// pre-enrichment defaults for ids that miss.
func JoinByID[T any](ctx context.Context, ids []string, size int, fetch ChunkFetcher[T]) map[string]T {
	distinct := distinctIDs(ids)
	merged := make(map[string]T, len(distinct))
	if len(distinct) == 0 {
		return merged
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, chunk := range chunkIDs(distinct, size) {
		wg.Add(1)
		go func(chunk []string) {
			defer wg.Done()
			part, err := fetch(ctx, chunk)
			if err != nil {
				log.Printf("enrichment chunk of %d ids failed: %v", len(chunk), err)
				return
			}
			mu.Lock()
			for id, v := range part {
				merged[id] = v
			}
			mu.Unlock()
		}(chunk)
	}
	wg.Wait()
	return merged
}

// distinctIDs drops empties and duplicates, preserving first-seen order.
func distinctIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func chunkIDs(ids []string, size int) [][]string {
	if size < 1 {
		size = 1
	}
	var chunks [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
