package email

import (
	"strings"
	"testing"
)

func TestRenderNewLeadTemplate(t *testing.T) {
	html, err := renderEmailTemplate("new_lead.html", NewLeadData{
		Name:     "홍길동",
		Phone:    "010-1234-5678",
		Region:   "서울",
		Source:   "google",
		Referrer: "https://example.com/landing",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, want := range []string{"홍길동", "010-1234-5678", "서울", "google", "https://example.com/landing"} {
		if !strings.Contains(html, want) {
			t.Fatalf("rendered mail missing %q", want)
		}
	}
}

func TestRenderNewLeadTemplate_EmptyReferrer(t *testing.T) {
	html, err := renderEmailTemplate("new_lead.html", NewLeadData{Name: "홍길동"})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(html, "직접 유입") {
		t.Fatalf("expected direct-entry placeholder for empty referrer")
	}
}

func TestRenderDailySummaryTemplate(t *testing.T) {
	html, err := renderEmailTemplate("daily_summary.html", DailySummaryData{
		Date:       "2026-08-27",
		TotalLeads: 2,
		SourceCounts: []SourceCount{
			{Source: "google", Count: 1},
			{Source: "tiktok", Count: 1},
		},
		Leads: []SummaryLead{
			{Name: "홍길동", Phone: "010-1234-5678", Source: "google", Region: "서울"},
			{Name: "김철수", Phone: "010-2222-3333", Source: "tiktok", Region: "부산"},
		},
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if !strings.Contains(html, "2026-08-27") || !strings.Contains(html, "2건") {
		t.Fatalf("rendered mail missing header fields")
	}
	if !strings.Contains(html, "google : 1건") {
		t.Fatalf("rendered mail missing source tally")
	}
	if !strings.Contains(html, "김철수 (010-2222-3333), tiktok, 부산") {
		t.Fatalf("rendered mail missing lead detail row")
	}
}
