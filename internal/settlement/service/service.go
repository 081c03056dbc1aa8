// Package service implements settlement statement calculation and the
// per-year unit cost configuration.
package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	leadsrepo "leadops_backend/internal/leads/repository"
	"leadops_backend/internal/settlement/repository"
	"leadops_backend/internal/settlement/transport"
	"leadops_backend/platform/apperr"
	"leadops_backend/platform/logger"
)

const dayFormat = "2006-01-02"

// Service provides business logic for settlement.
type Service struct {
	repo  repository.Repository
	leads leadsrepo.Repository
	loc   *time.Location
	log   *logger.Logger
}

// New creates a new settlement service. loc fixes the statement's day
// boundaries.
func New(repo repository.Repository, leads leadsrepo.Repository, loc *time.Location, log *logger.Logger) *Service {
	return &Service{repo: repo, leads: leads, loc: loc, log: log}
}

// Calculate groups downloaded leads by download day over [startDate,
// endDate] and prices them at the unit cost of the year the range starts
// in. Leads never downloaded are not billed.
func (s *Service) Calculate(ctx context.Context, startDate, endDate string) (transport.Statement, error) {
	startDay, err := time.ParseInLocation(dayFormat, startDate, s.loc)
	if err != nil {
		return transport.Statement{}, apperr.InvalidArgument("startDate must be formatted YYYY-MM-DD")
	}
	endDay, err := time.ParseInLocation(dayFormat, endDate, s.loc)
	if err != nil {
		return transport.Statement{}, apperr.InvalidArgument("endDate must be formatted YYYY-MM-DD")
	}
	if endDay.Before(startDay) {
		return transport.Statement{}, apperr.InvalidArgument("endDate must not precede startDate")
	}

	leads, err := s.leads.DownloadedBetween(ctx, startDay, endDay.AddDate(0, 0, 1))
	if err != nil {
		return transport.Statement{}, apperr.Wrap(apperr.KindInternal, "failed to load downloaded leads", err)
	}
	costs, err := s.repo.UnitCosts(ctx)
	if err != nil {
		return transport.Statement{}, apperr.Wrap(apperr.KindInternal, "failed to load settlement config", err)
	}

	byDay := make(map[string]*transport.DailyRow)
	for _, lead := range leads {
		if lead.DownloadedAt == nil {
			continue
		}
		day := lead.DownloadedAt.In(s.loc).Format(dayFormat)
		row, ok := byDay[day]
		if !ok {
			row = &transport.DailyRow{Date: day}
			byDay[day] = row
		}
		row.Downloads++
		if lead.Defect {
			row.Defects++
		}
	}

	daily := make([]transport.DailyRow, 0, len(byDay))
	for _, row := range byDay {
		daily = append(daily, *row)
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })

	return transport.Statement{
		Daily:    daily,
		UnitCost: costs[strconv.Itoa(startDay.Year())],
	}, nil
}

// GetConfig returns the per-year unit cost configuration.
func (s *Service) GetConfig(ctx context.Context) (transport.Config, error) {
	costs, err := s.repo.UnitCosts(ctx)
	if err != nil {
		return transport.Config{}, apperr.Wrap(apperr.KindInternal, "failed to load settlement config", err)
	}
	return transport.Config{Costs: costs}, nil
}

// SetCost sets the per-lead unit cost for one year.
func (s *Service) SetCost(ctx context.Context, year string, cost float64) error {
	if _, err := strconv.Atoi(year); err != nil || len(year) != 4 {
		return apperr.InvalidArgument("year must be a four-digit year")
	}
	if cost < 0 {
		return apperr.InvalidArgument("cost must not be negative")
	}

	if err := s.repo.SetUnitCost(ctx, year, cost); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to set settlement cost", err)
	}
	return nil
}
