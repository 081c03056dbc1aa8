// Package transport defines request/response DTOs for the settlement module.
package transport

// DailyRow is one download day of a settlement statement.
type DailyRow struct {
	Date      string `json:"date"`
	Downloads int    `json:"downloads"`
	Defects   int    `json:"defects"`
}

// Statement is the settlement calculation for a day range. UnitCost is the
// per-lead price configured for the year the range starts in.
type Statement struct {
	Daily    []DailyRow `json:"dailyData"`
	UnitCost float64    `json:"costPerLead"`
}

// Config is the per-year unit cost configuration.
type Config struct {
	Costs map[string]float64 `json:"costs"`
}

// SetCostRequest sets the per-lead unit cost for one year.
type SetCostRequest struct {
	Year string   `json:"year" validate:"required,len=4,numeric"`
	Cost *float64 `json:"cost" validate:"required"`
}

// Ack is a minimal success acknowledgment.
type Ack struct {
	OK bool `json:"ok"`
}
