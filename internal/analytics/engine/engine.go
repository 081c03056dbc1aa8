// Package engine holds the pure aggregation logic behind the reporting
// endpoints. Everything here is deterministic over its inputs; data access
// stays in the service layer.
package engine

import (
	"sort"
	"strconv"
	"time"

	adspendrepo "leadops_backend/internal/adspend/repository"
	leadsrepo "leadops_backend/internal/leads/repository"
)

// UnattributedSource buckets leads that arrived without a source tag.
const UnattributedSource = "N/A"

// DayFormat is the calendar-day key used by every aggregate.
const DayFormat = "2006-01-02"

// Source maps a raw attribution tag to its reporting bucket.
func Source(raw string) string {
	if raw == "" {
		return UnattributedSource
	}
	return raw
}

// DaySummary is the per-day funnel slice of the dashboard.
type DaySummary struct {
	Total    int            `json:"total"`
	Defects  int            `json:"defects"`
	BySource map[string]int `json:"bySource"`
}

// SummarizeDay folds one day of leads into totals and a per-source split.
func SummarizeDay(leads []leadsrepo.Lead) DaySummary {
	summary := DaySummary{BySource: make(map[string]int)}
	for _, lead := range leads {
		summary.Total++
		if lead.Defect {
			summary.Defects++
		}
		summary.BySource[Source(lead.Source)]++
	}
	return summary
}

// CountBySource folds leads into a per-source count.
func CountBySource(leads []leadsrepo.Lead) map[string]int {
	counts := make(map[string]int)
	for _, lead := range leads {
		counts[Source(lead.Source)]++
	}
	return counts
}

// TrendRow is one day of the lead trend matrix. Counts carries an entry for
// every source seen in the window, zero-filled.
type TrendRow struct {
	Date   string         `json:"date"`
	Counts map[string]int `json:"counts"`
}

// LeadTrend builds a zero-filled day-by-source matrix covering the window of
// consecutive days starting at startDay. Day boundaries follow loc.
// The returned source list is sorted.
func LeadTrend(leads []leadsrepo.Lead, startDay time.Time, days int, loc *time.Location) ([]TrendRow, []string) {
	counts := make(map[string]map[string]int, days)
	order := make([]string, 0, days)
	for i := 0; i < days; i++ {
		day := startDay.AddDate(0, 0, i).In(loc).Format(DayFormat)
		counts[day] = make(map[string]int)
		order = append(order, day)
	}

	sourceSet := make(map[string]struct{})
	for _, lead := range leads {
		day := lead.CreatedAt.In(loc).Format(DayFormat)
		row, ok := counts[day]
		if !ok {
			continue
		}
		source := Source(lead.Source)
		sourceSet[source] = struct{}{}
		row[source]++
	}

	sources := make([]string, 0, len(sourceSet))
	for source := range sourceSet {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	rows := make([]TrendRow, 0, len(order))
	for _, day := range order {
		row := TrendRow{Date: day, Counts: make(map[string]int, len(sources))}
		for _, source := range sources {
			row.Counts[source] = counts[day][source]
		}
		rows = append(rows, row)
	}
	return rows, sources
}

// ROASRow is one (day, source) cell of the return-on-ad-spend table.
type ROASRow struct {
	Date    string  `json:"date"`
	Source  string  `json:"source"`
	Cost    float64 `json:"cost"`
	Leads   int     `json:"leads"`
	Revenue float64 `json:"revenue"`
	ROAS    float64 `json:"roas"`
}

// ROASTable joins leads against the spend ledger per (day, source) and
// values each lead at the unit cost configured for its creation year. Every
// combination of day in [startDay, endDay] and observed source appears,
// zero-filled; with no sources at all the unattributed bucket still shows.
func ROASTable(leads []leadsrepo.Lead, costs []adspendrepo.Entry, unitCostByYear map[string]float64, startDay, endDay time.Time, loc *time.Location) []ROASRow {
	type cell struct {
		leads   int
		revenue float64
		cost    float64
	}
	cells := make(map[string]map[string]*cell)
	sourceSet := make(map[string]struct{})

	at := func(day, source string) *cell {
		row, ok := cells[day]
		if !ok {
			row = make(map[string]*cell)
			cells[day] = row
		}
		c, ok := row[source]
		if !ok {
			c = &cell{}
			row[source] = c
		}
		return c
	}

	for _, lead := range leads {
		created := lead.CreatedAt.In(loc)
		source := Source(lead.Source)
		sourceSet[source] = struct{}{}

		c := at(created.Format(DayFormat), source)
		c.leads++
		c.revenue += unitCostByYear[strconv.Itoa(created.Year())]
	}

	for _, entry := range costs {
		sourceSet[entry.Source] = struct{}{}
		at(entry.Day, entry.Source).cost += entry.Cost
	}

	if len(sourceSet) == 0 {
		sourceSet[UnattributedSource] = struct{}{}
	}
	sources := make([]string, 0, len(sourceSet))
	for source := range sourceSet {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	var rows []ROASRow
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		dayStr := day.In(loc).Format(DayFormat)
		for _, source := range sources {
			c := cell{}
			if stored, ok := cells[dayStr][source]; ok {
				c = *stored
			}
			rows = append(rows, ROASRow{
				Date:    dayStr,
				Source:  source,
				Cost:    c.cost,
				Leads:   c.leads,
				Revenue: c.revenue,
				ROAS:    roas(c.revenue, c.cost),
			})
		}
	}
	return rows
}

func roas(revenue, cost float64) float64 {
	if cost > 0 {
		return revenue / cost * 100
	}
	return 0
}

// SpendPoint is one day of the spend trend line.
type SpendPoint struct {
	Date string  `json:"date"`
	Cost float64 `json:"cost"`
}

// SpendTrend sums ledger cells across sources per day, zero-filling the
// window of consecutive days starting at startDay.
func SpendTrend(costs []adspendrepo.Entry, startDay time.Time, days int, loc *time.Location) []SpendPoint {
	totals := make(map[string]float64, days)
	for _, entry := range costs {
		totals[entry.Day] += entry.Cost
	}

	points := make([]SpendPoint, 0, days)
	for i := 0; i < days; i++ {
		day := startDay.AddDate(0, 0, i).In(loc).Format(DayFormat)
		points = append(points, SpendPoint{Date: day, Cost: totals[day]})
	}
	return points
}

// CostPerLead divides spend by lead count, yielding 0 when there are no
// leads.
func CostPerLead(cost float64, leads int64) float64 {
	if leads <= 0 {
		return 0
	}
	return cost / float64(leads)
}
