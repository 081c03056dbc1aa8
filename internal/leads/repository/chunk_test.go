package repository

import (
	"testing"

	"github.com/google/uuid"
)

func makeIDs(n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	return ids
}

func TestChunkIDs(t *testing.T) {
	cases := []struct {
		count    int
		size     int
		wantLens []int
	}{
		{0, 30, nil},
		{1, 30, []int{1}},
		{30, 30, []int{30}},
		{31, 30, []int{30, 1}},
		{65, 30, []int{30, 30, 5}},
		{5, 0, nil},
	}

	for _, tc := range cases {
		chunks := chunkIDs(makeIDs(tc.count), tc.size)
		if len(chunks) != len(tc.wantLens) {
			t.Fatalf("chunkIDs(%d ids, size %d): expected %d chunks, got %d", tc.count, tc.size, len(tc.wantLens), len(chunks))
		}
		for i, want := range tc.wantLens {
			if len(chunks[i]) != want {
				t.Fatalf("chunkIDs(%d ids, size %d): chunk %d has %d ids, want %d", tc.count, tc.size, i, len(chunks[i]), want)
			}
		}
	}
}

func TestChunkIDs_PreservesOrder(t *testing.T) {
	ids := makeIDs(7)
	chunks := chunkIDs(ids, 3)

	var flat []uuid.UUID
	for _, chunk := range chunks {
		flat = append(flat, chunk...)
	}
	if len(flat) != len(ids) {
		t.Fatalf("expected %d ids, got %d", len(ids), len(flat))
	}
	for i := range ids {
		if flat[i] != ids[i] {
			t.Fatalf("id %d out of order", i)
		}
	}
}
