package notification

import (
	"testing"

	leadsrepo "leadops_backend/internal/leads/repository"
)

func TestBuildDailySummary_CountsBySource(t *testing.T) {
	leads := []leadsrepo.Lead{
		{Name: "홍길동", PhoneRaw: "010-1234-5678", Source: "google", Region: "서울"},
		{Name: "김철수", PhoneRaw: "010-2222-3333", Source: "google", Region: "부산"},
		{Name: "이영희", PhoneRaw: "010-4444-5555", Source: "", Region: "대구"},
		{Name: "박민수", PhoneRaw: "010-6666-7777", Source: "tiktok", Region: "인천"},
	}

	data := buildDailySummary("2026-08-27", leads)

	if data.Date != "2026-08-27" {
		t.Fatalf("unexpected date: %q", data.Date)
	}
	if data.TotalLeads != 4 {
		t.Fatalf("expected 4 leads, got %d", data.TotalLeads)
	}

	if len(data.SourceCounts) != 3 {
		t.Fatalf("expected 3 sources, got %d", len(data.SourceCounts))
	}
	// Sorted: N/A, google, tiktok
	if data.SourceCounts[0].Source != "N/A" || data.SourceCounts[0].Count != 1 {
		t.Fatalf("unexpected first source: %+v", data.SourceCounts[0])
	}
	if data.SourceCounts[1].Source != "google" || data.SourceCounts[1].Count != 2 {
		t.Fatalf("unexpected second source: %+v", data.SourceCounts[1])
	}
	if data.SourceCounts[2].Source != "tiktok" || data.SourceCounts[2].Count != 1 {
		t.Fatalf("unexpected third source: %+v", data.SourceCounts[2])
	}

	if len(data.Leads) != 4 {
		t.Fatalf("expected 4 detail rows, got %d", len(data.Leads))
	}
	if data.Leads[2].Source != "N/A" {
		t.Fatalf("expected unattributed detail row, got %+v", data.Leads[2])
	}
}

func TestBuildDailySummary_Empty(t *testing.T) {
	data := buildDailySummary("2026-08-27", nil)

	if data.TotalLeads != 0 {
		t.Fatalf("expected 0 leads, got %d", data.TotalLeads)
	}
	if len(data.SourceCounts) != 0 || len(data.Leads) != 0 {
		t.Fatalf("expected empty summary, got %+v", data)
	}
}
