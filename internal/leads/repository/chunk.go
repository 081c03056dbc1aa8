package repository

import "github.com/google/uuid"

// MaxIDsPerBatch bounds the id-set membership predicate of a single query.
// It matches the backing store's limit on `IN`-style predicates; fan-out
// lookups larger than this are split and run in parallel.
const MaxIDsPerBatch = 30

// chunkIDs splits an id set into slices of at most size elements.
func chunkIDs(ids []uuid.UUID, size int) [][]uuid.UUID {
	if size < 1 || len(ids) == 0 {
		return nil
	}

	chunks := make([][]uuid.UUID, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
