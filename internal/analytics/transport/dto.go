// Package transport defines response DTOs for the analytics module.
package transport

import "leadops_backend/internal/analytics/engine"

// DashboardStats is the operational dashboard payload.
type DashboardStats struct {
	Today              engine.DaySummary `json:"today"`
	Yesterday          engine.DaySummary `json:"yesterday"`
	Trend              []engine.TrendRow `json:"trend"`
	Sources            []string          `json:"sources"`
	CumulativeTotal    int64             `json:"cumulativeTotal"`
	CumulativeBySource map[string]int    `json:"cumulativeBySource"`
}

// CoreMetrics carries the headline cost-efficiency numbers.
type CoreMetrics struct {
	ThisWeekCostPerLead  float64 `json:"thisWeekCostPerLead"`
	ThisMonthCostPerLead float64 `json:"thisMonthCostPerLead"`
}

// ROASReport is the return-on-ad-spend analysis payload.
type ROASReport struct {
	Rows        []engine.ROASRow    `json:"roasData"`
	SpendTrend  []engine.SpendPoint `json:"trendData"`
	CoreMetrics CoreMetrics         `json:"coreMetrics"`
}
