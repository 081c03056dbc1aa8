// Package service implements ad-spend ledger writes and provider pulls.
package service

import (
	"context"
	"strings"
	"time"

	"leadops_backend/internal/adspend/provider"
	"leadops_backend/internal/adspend/repository"
	"leadops_backend/internal/adspend/transport"
	"leadops_backend/platform/apperr"
	"leadops_backend/platform/logger"
)

// DayFormat is the calendar-day key used throughout the ledger.
const DayFormat = "2006-01-02"

// Service provides business logic for the ad-spend ledger.
type Service struct {
	repo      repository.Repository
	vault     *CredentialsVault
	providers []provider.Provider
	log       *logger.Logger
}

// New creates a new ad-spend service.
func New(repo repository.Repository, vault *CredentialsVault, providers []provider.Provider, log *logger.Logger) *Service {
	return &Service{repo: repo, vault: vault, providers: providers, log: log}
}

// SetAdCost merges a manual spend correction into one (day, source) cell.
// Only the fields present in the request overwrite stored values.
func (s *Service) SetAdCost(ctx context.Context, req transport.SetAdCostRequest) error {
	if _, err := time.Parse(DayFormat, req.Day); err != nil {
		return apperr.InvalidArgument("day must be formatted YYYY-MM-DD")
	}
	source := strings.TrimSpace(req.Source)
	if source == "" {
		return apperr.InvalidArgument("source is required")
	}
	if req.Cost == nil && req.Impressions == nil && req.Clicks == nil {
		return apperr.InvalidArgument("at least one of cost, impressions, clicks is required")
	}
	if req.Cost != nil && *req.Cost < 0 {
		return apperr.InvalidArgument("cost must not be negative")
	}
	if req.Impressions != nil && *req.Impressions < 0 {
		return apperr.InvalidArgument("impressions must not be negative")
	}
	if req.Clicks != nil && *req.Clicks < 0 {
		return apperr.InvalidArgument("clicks must not be negative")
	}

	err := s.repo.Upsert(ctx, repository.UpsertParams{
		Day:         req.Day,
		Source:      source,
		Cost:        req.Cost,
		Impressions: req.Impressions,
		Clicks:      req.Clicks,
	})
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to record ad cost", err)
	}
	return nil
}

// ListCosts returns ledger cells for days in [startDay, endDay].
func (s *Service) ListCosts(ctx context.Context, startDay, endDay string) ([]transport.CostEntry, error) {
	if _, err := time.Parse(DayFormat, startDay); err != nil {
		return nil, apperr.InvalidArgument("startDate must be formatted YYYY-MM-DD")
	}
	if _, err := time.Parse(DayFormat, endDay); err != nil {
		return nil, apperr.InvalidArgument("endDate must be formatted YYYY-MM-DD")
	}

	entries, err := s.repo.ListBetween(ctx, startDay, endDay)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list ad costs", err)
	}

	result := make([]transport.CostEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, transport.CostEntry{
			Day:         e.Day,
			Source:      e.Source,
			Cost:        e.Cost,
			Impressions: e.Impressions,
			Clicks:      e.Clicks,
		})
	}
	return result, nil
}

// SetCredentials encrypts and stores API credentials for a provider.
func (s *Service) SetCredentials(ctx context.Context, providerName string, values map[string]string) error {
	providerName = strings.TrimSpace(strings.ToLower(providerName))
	if !s.knownProvider(providerName) {
		return apperr.InvalidArgument("unknown provider: " + providerName)
	}
	if len(values) == 0 {
		return apperr.InvalidArgument("credentials must not be empty")
	}

	if err := s.vault.Store(ctx, providerName, values); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to store credentials", err)
	}
	return nil
}

// ClearCredentials removes stored API credentials for a provider.
func (s *Service) ClearCredentials(ctx context.Context, providerName string) error {
	providerName = strings.TrimSpace(strings.ToLower(providerName))
	if !s.knownProvider(providerName) {
		return apperr.InvalidArgument("unknown provider: " + providerName)
	}
	if err := s.vault.Clear(ctx, providerName); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to clear credentials", err)
	}
	return nil
}

// PullDailySpend asks every provider for the given day's spend and merges
// the results into the ledger. A failing provider is logged and skipped so
// the others still land.
func (s *Service) PullDailySpend(ctx context.Context, day string) error {
	if _, err := time.Parse(DayFormat, day); err != nil {
		return apperr.InvalidArgument("day must be formatted YYYY-MM-DD")
	}

	for _, p := range s.providers {
		report, err := p.DailySpend(ctx, day)
		s.log.SpendPull(p.Name(), day, report.Cost, err)
		if err != nil {
			continue
		}

		err = s.repo.Upsert(ctx, repository.UpsertParams{
			Day:         day,
			Source:      p.Name(),
			Cost:        &report.Cost,
			Impressions: &report.Impressions,
			Clicks:      &report.Clicks,
		})
		if err != nil {
			s.log.DatabaseError("upsert ad cost", err)
		}
	}
	return nil
}

func (s *Service) knownProvider(name string) bool {
	for _, p := range s.providers {
		if p.Name() == name {
			return true
		}
	}
	return false
}
