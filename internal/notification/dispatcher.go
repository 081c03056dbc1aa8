// Package notification fans operational mail out to directory members.
// Everything here is best-effort: a failed dispatch is logged and dropped,
// never surfaced to the operation that triggered it.
package notification

import (
	"context"
	"sort"

	directoryservice "leadops_backend/internal/directory/service"
	"leadops_backend/internal/email"
	"leadops_backend/internal/events"
	leadsrepo "leadops_backend/internal/leads/repository"
	"leadops_backend/platform/logger"
)

// Dispatcher routes notification mail to directory members whose
// notification flags allow it.
type Dispatcher struct {
	directory *directoryservice.Service
	sender    email.Sender
	log       *logger.Logger
}

// NewDispatcher creates a notification dispatcher.
func NewDispatcher(directory *directoryservice.Service, sender email.Sender, log *logger.Logger) *Dispatcher {
	return &Dispatcher{directory: directory, sender: sender, log: log}
}

// SubscribeToBus registers the dispatcher's event handlers.
func (d *Dispatcher) SubscribeToBus(bus events.Bus) {
	bus.Subscribe(events.LeadCreated{}.EventName(), events.HandlerFunc(d.onLeadCreated))
}

func (d *Dispatcher) onLeadCreated(ctx context.Context, event events.Event) error {
	created, ok := event.(events.LeadCreated)
	if !ok {
		return nil
	}

	recipients, err := d.directory.Recipients(ctx, directoryservice.PrefOnNewLead)
	if err != nil {
		d.log.NotifyFailure("new_lead", 0, err)
		return nil
	}
	if len(recipients) == 0 {
		return nil
	}

	err = d.sender.SendNewLeadEmail(ctx, recipients, email.NewLeadData{
		Name:     created.Name,
		Phone:    created.Phone,
		Region:   created.Region,
		Source:   created.Source,
		Referrer: created.Referrer,
	})
	if err != nil {
		d.log.NotifyFailure("new_lead", len(recipients), err)
	}
	return nil
}

// SendDailySummary mails the previous day's intake digest to every member
// whose daily-summary flag is enabled. date is the summarized day
// (YYYY-MM-DD); leads are that day's submissions.
func (d *Dispatcher) SendDailySummary(ctx context.Context, date string, leads []leadsrepo.Lead) error {
	recipients, err := d.directory.Recipients(ctx, directoryservice.PrefOnDailySummary)
	if err != nil {
		d.log.NotifyFailure("daily_summary", 0, err)
		return err
	}
	if len(recipients) == 0 {
		return nil
	}

	err = d.sender.SendDailySummaryEmail(ctx, recipients, buildDailySummary(date, leads))
	if err != nil {
		d.log.NotifyFailure("daily_summary", len(recipients), err)
		return err
	}
	return nil
}

func buildDailySummary(date string, leads []leadsrepo.Lead) email.DailySummaryData {
	counts := make(map[string]int)
	rows := make([]email.SummaryLead, 0, len(leads))
	for _, lead := range leads {
		source := lead.Source
		if source == "" {
			source = "N/A"
		}
		counts[source]++
		rows = append(rows, email.SummaryLead{
			Name:   lead.Name,
			Phone:  lead.PhoneRaw,
			Source: source,
			Region: lead.Region,
		})
	}

	sources := make([]string, 0, len(counts))
	for source := range counts {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	sourceCounts := make([]email.SourceCount, 0, len(sources))
	for _, source := range sources {
		sourceCounts = append(sourceCounts, email.SourceCount{Source: source, Count: counts[source]})
	}

	return email.DailySummaryData{
		Date:         date,
		TotalLeads:   len(leads),
		SourceCounts: sourceCounts,
		Leads:        rows,
	}
}
