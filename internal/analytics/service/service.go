// Package service assembles the reporting aggregates from the lead
// collection, the ad-spend ledger, and the settlement configuration.
package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	adspendrepo "leadops_backend/internal/adspend/repository"
	"leadops_backend/internal/analytics/engine"
	"leadops_backend/internal/analytics/transport"
	leadsrepo "leadops_backend/internal/leads/repository"
	settlementrepo "leadops_backend/internal/settlement/repository"
	"leadops_backend/platform/apperr"
	"leadops_backend/platform/logger"
)

// Service provides the reporting queries.
type Service struct {
	leads      leadsrepo.Repository
	spend      adspendrepo.Repository
	settlement settlementrepo.Repository
	loc        *time.Location
	trendDays  int
	log        *logger.Logger
}

// New creates a new analytics service. loc fixes the reporting day
// boundaries; trendDays is the length of the trend windows.
func New(leads leadsrepo.Repository, spend adspendrepo.Repository, settlement settlementrepo.Repository, loc *time.Location, trendDays int, log *logger.Logger) *Service {
	return &Service{
		leads:      leads,
		spend:      spend,
		settlement: settlement,
		loc:        loc,
		trendDays:  trendDays,
		log:        log,
	}
}

func (s *Service) startOfDay(t time.Time) time.Time {
	t = t.In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

// DashboardStats builds the operational dashboard: today and yesterday
// funnels, the lead trend matrix, and cumulative totals. The four reads run
// in parallel.
func (s *Service) DashboardStats(ctx context.Context) (transport.DashboardStats, error) {
	startOfToday := s.startOfDay(time.Now())
	endOfToday := startOfToday.AddDate(0, 0, 1)
	startOfYesterday := startOfToday.AddDate(0, 0, -1)
	trendStart := startOfToday.AddDate(0, 0, -(s.trendDays - 1))

	var (
		todayLeads     []leadsrepo.Lead
		yesterdayLeads []leadsrepo.Lead
		trendLeads     []leadsrepo.Lead
		total          int64
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		todayLeads, err = s.leads.CreatedBetween(groupCtx, startOfToday, endOfToday)
		return err
	})
	group.Go(func() (err error) {
		yesterdayLeads, err = s.leads.CreatedBetween(groupCtx, startOfYesterday, startOfToday)
		return err
	})
	group.Go(func() (err error) {
		trendLeads, err = s.leads.CreatedBetween(groupCtx, trendStart, endOfToday)
		return err
	})
	group.Go(func() (err error) {
		total, err = s.leads.CountAll(groupCtx)
		return err
	})
	if err := group.Wait(); err != nil {
		return transport.DashboardStats{}, apperr.Wrap(apperr.KindInternal, "failed to load dashboard stats", err)
	}

	trend, sources := engine.LeadTrend(trendLeads, trendStart, s.trendDays, s.loc)

	return transport.DashboardStats{
		Today:              engine.SummarizeDay(todayLeads),
		Yesterday:          engine.SummarizeDay(yesterdayLeads),
		Trend:              trend,
		Sources:            sources,
		CumulativeTotal:    total,
		CumulativeBySource: engine.CountBySource(trendLeads),
	}, nil
}

// ROASReport joins leads against ad spend for [startDate, endDate] and adds
// the headline cost-per-lead metrics and the recent spend trend.
func (s *Service) ROASReport(ctx context.Context, startDate, endDate string) (transport.ROASReport, error) {
	startDay, err := time.ParseInLocation(engine.DayFormat, startDate, s.loc)
	if err != nil {
		return transport.ROASReport{}, apperr.InvalidArgument("startDate must be formatted YYYY-MM-DD")
	}
	endDay, err := time.ParseInLocation(engine.DayFormat, endDate, s.loc)
	if err != nil {
		return transport.ROASReport{}, apperr.InvalidArgument("endDate must be formatted YYYY-MM-DD")
	}
	if endDay.Before(startDay) {
		return transport.ROASReport{}, apperr.InvalidArgument("endDate must not precede startDate")
	}

	startOfToday := s.startOfDay(time.Now())
	today := startOfToday.Format(engine.DayFormat)
	weekStart := startOfToday.AddDate(0, 0, -int(startOfToday.Weekday()))
	monthStart := time.Date(startOfToday.Year(), startOfToday.Month(), 1, 0, 0, 0, 0, s.loc)
	spendTrendStart := startOfToday.AddDate(0, 0, -(s.trendDays - 1))

	var (
		rangeLeads []leadsrepo.Lead
		rangeCosts []adspendrepo.Entry
		unitCosts  map[string]float64
		trendCosts []adspendrepo.Entry
		weekLeads  int64
		monthLeads int64
		weekSpend  float64
		monthSpend float64
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		rangeLeads, err = s.leads.CreatedBetween(groupCtx, startDay, endDay.AddDate(0, 0, 1))
		return err
	})
	group.Go(func() (err error) {
		rangeCosts, err = s.spend.ListBetween(groupCtx, startDate, endDate)
		return err
	})
	group.Go(func() (err error) {
		unitCosts, err = s.settlement.UnitCosts(groupCtx)
		return err
	})
	group.Go(func() (err error) {
		trendCosts, err = s.spend.ListBetween(groupCtx, spendTrendStart.Format(engine.DayFormat), today)
		return err
	})
	group.Go(func() (err error) {
		weekLeads, err = s.leads.CountCreatedSince(groupCtx, weekStart)
		return err
	})
	group.Go(func() (err error) {
		monthLeads, err = s.leads.CountCreatedSince(groupCtx, monthStart)
		return err
	})
	group.Go(func() (err error) {
		weekSpend, err = s.spend.SumCostBetween(groupCtx, weekStart.Format(engine.DayFormat), today)
		return err
	})
	group.Go(func() (err error) {
		monthSpend, err = s.spend.SumCostBetween(groupCtx, monthStart.Format(engine.DayFormat), today)
		return err
	})
	if err := group.Wait(); err != nil {
		return transport.ROASReport{}, apperr.Wrap(apperr.KindInternal, "failed to load roas report", err)
	}

	return transport.ROASReport{
		Rows:       engine.ROASTable(rangeLeads, rangeCosts, unitCosts, startDay, endDay, s.loc),
		SpendTrend: engine.SpendTrend(trendCosts, spendTrendStart, s.trendDays, s.loc),
		CoreMetrics: transport.CoreMetrics{
			ThisWeekCostPerLead:  engine.CostPerLead(weekSpend, weekLeads),
			ThisMonthCostPerLead: engine.CostPerLead(monthSpend, monthLeads),
		},
	}, nil
}
