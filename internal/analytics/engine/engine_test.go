package engine

import (
	"testing"
	"time"

	adspendrepo "leadops_backend/internal/adspend/repository"
	leadsrepo "leadops_backend/internal/leads/repository"
)

var seoul = mustLoadLocation("Asia/Seoul")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func leadAt(t time.Time, source string, defect bool) leadsrepo.Lead {
	return leadsrepo.Lead{CreatedAt: t, Source: source, Defect: defect}
}

func TestSummarizeDay_BucketsUnattributed(t *testing.T) {
	now := time.Now()
	leads := []leadsrepo.Lead{
		leadAt(now, "google", false),
		leadAt(now, "google", true),
		leadAt(now, "", false),
	}

	summary := SummarizeDay(leads)

	if summary.Total != 3 {
		t.Fatalf("expected total 3, got %d", summary.Total)
	}
	if summary.Defects != 1 {
		t.Fatalf("expected 1 defect, got %d", summary.Defects)
	}
	if summary.BySource["google"] != 2 {
		t.Fatalf("expected 2 google leads, got %d", summary.BySource["google"])
	}
	if summary.BySource[UnattributedSource] != 1 {
		t.Fatalf("expected 1 unattributed lead, got %d", summary.BySource[UnattributedSource])
	}
}

func TestLeadTrend_ZeroFillsEveryDayAndSource(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, seoul)
	leads := []leadsrepo.Lead{
		leadAt(start.Add(10*time.Hour), "google", false),
		leadAt(start.AddDate(0, 0, 2).Add(3*time.Hour), "tiktok", false),
	}

	rows, sources := LeadTrend(leads, start, 3, seoul)

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if len(sources) != 2 || sources[0] != "google" || sources[1] != "tiktok" {
		t.Fatalf("expected sorted sources [google tiktok], got %v", sources)
	}
	if rows[0].Date != "2026-08-01" || rows[2].Date != "2026-08-03" {
		t.Fatalf("expected ascending dates, got %s .. %s", rows[0].Date, rows[2].Date)
	}
	if rows[0].Counts["google"] != 1 || rows[0].Counts["tiktok"] != 0 {
		t.Fatalf("unexpected counts for first day: %v", rows[0].Counts)
	}
	if rows[1].Counts["google"] != 0 || rows[1].Counts["tiktok"] != 0 {
		t.Fatalf("expected zero-filled middle day, got %v", rows[1].Counts)
	}
	if rows[2].Counts["tiktok"] != 1 {
		t.Fatalf("unexpected counts for last day: %v", rows[2].Counts)
	}
}

func TestLeadTrend_IgnoresLeadsOutsideWindow(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, seoul)
	leads := []leadsrepo.Lead{
		leadAt(start.AddDate(0, 0, -1), "google", false),
		leadAt(start.AddDate(0, 0, 5), "google", false),
	}

	rows, sources := LeadTrend(leads, start, 3, seoul)

	if len(sources) != 0 {
		t.Fatalf("expected no sources, got %v", sources)
	}
	for _, row := range rows {
		if len(row.Counts) != 0 {
			t.Fatalf("expected empty counts for %s, got %v", row.Date, row.Counts)
		}
	}
}

func TestROASTable_ComputesRatioPerCell(t *testing.T) {
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, seoul)
	leads := []leadsrepo.Lead{
		leadAt(day.Add(9*time.Hour), "google", false),
		leadAt(day.Add(11*time.Hour), "google", false),
	}
	costs := []adspendrepo.Entry{
		{Day: "2026-08-01", Source: "google", Cost: 50000},
	}
	unitCosts := map[string]float64{"2026": 30000}

	rows := ROASTable(leads, costs, unitCosts, day, day, seoul)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Leads != 2 {
		t.Fatalf("expected 2 leads, got %d", row.Leads)
	}
	if row.Revenue != 60000 {
		t.Fatalf("expected revenue 60000, got %f", row.Revenue)
	}
	if row.ROAS != 120 {
		t.Fatalf("expected ROAS 120, got %f", row.ROAS)
	}
}

func TestROASTable_ZeroCostYieldsZeroROAS(t *testing.T) {
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, seoul)
	leads := []leadsrepo.Lead{leadAt(day.Add(time.Hour), "google", false)}
	unitCosts := map[string]float64{"2026": 30000}

	rows := ROASTable(leads, nil, unitCosts, day, day, seoul)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].ROAS != 0 {
		t.Fatalf("expected ROAS 0 with no spend, got %f", rows[0].ROAS)
	}
	if rows[0].Revenue != 30000 {
		t.Fatalf("expected revenue 30000, got %f", rows[0].Revenue)
	}
}

func TestROASTable_FillsEveryDaySourceCombination(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, seoul)
	end := start.AddDate(0, 0, 1)
	leads := []leadsrepo.Lead{leadAt(start.Add(time.Hour), "google", false)}
	costs := []adspendrepo.Entry{
		{Day: "2026-08-02", Source: "tiktok", Cost: 1000},
	}

	rows := ROASTable(leads, costs, nil, start, end, seoul)

	// 2 days x 2 sources
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Date == "2026-08-01" && row.Source == "tiktok" {
			if row.Cost != 0 || row.Leads != 0 {
				t.Fatalf("expected zero-filled cell, got %+v", row)
			}
		}
	}
}

func TestROASTable_EmptyInputsStillShowUnattributed(t *testing.T) {
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, seoul)

	rows := ROASTable(nil, nil, nil, day, day, seoul)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Source != UnattributedSource {
		t.Fatalf("expected source %q, got %q", UnattributedSource, rows[0].Source)
	}
}

func TestSpendTrend_SumsAcrossSourcesPerDay(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, seoul)
	costs := []adspendrepo.Entry{
		{Day: "2026-08-01", Source: "google", Cost: 100},
		{Day: "2026-08-01", Source: "tiktok", Cost: 50},
		{Day: "2026-08-03", Source: "google", Cost: 25},
	}

	points := SpendTrend(costs, start, 3, seoul)

	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	if points[0].Cost != 150 {
		t.Fatalf("expected day 1 cost 150, got %f", points[0].Cost)
	}
	if points[1].Cost != 0 {
		t.Fatalf("expected day 2 cost 0, got %f", points[1].Cost)
	}
	if points[2].Cost != 25 {
		t.Fatalf("expected day 3 cost 25, got %f", points[2].Cost)
	}
}

func TestCostPerLead(t *testing.T) {
	if got := CostPerLead(1000, 4); got != 250 {
		t.Fatalf("expected 250, got %f", got)
	}
	if got := CostPerLead(1000, 0); got != 0 {
		t.Fatalf("expected 0 with no leads, got %f", got)
	}
}
