package repository

import (
	"strings"
	"testing"
)

func TestListQueryOrderIsStableAcrossSharedTimestamps(t *testing.T) {
	query := strings.ToLower(listEntriesQuery)

	if !strings.Contains(query, "order by created_at desc, id desc") {
		t.Fatalf("list query must tiebreak on id so batch entries keep a stable order, got %q", listEntriesQuery)
	}
	if !strings.Contains(query, "limit $1") {
		t.Fatalf("list query must bound the result set, got %q", listEntriesQuery)
	}
}

func TestInsertQueryTakesTheCallerTimestamp(t *testing.T) {
	query := strings.ToLower(insertEntryQuery)

	if strings.Contains(query, "now()") {
		t.Fatal("insert query must not stamp its own time; the batch shares one caller-supplied timestamp")
	}
	if !strings.Contains(query, "created_at") {
		t.Fatalf("insert query must persist the shared timestamp, got %q", insertEntryQuery)
	}
}
