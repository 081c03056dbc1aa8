package enrichment

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

// GA4 export sharded table suffix, e.g. dataset.events_20260828.
const ga4EventsTable = "events_*"

// BigQuerySource resolves first-touch campaigns from a GA4 BigQuery export
// dataset.
type BigQuerySource struct {
	client  *bigquery.Client
	project string
	dataset string
}

// NewBigQuerySource connects to the GA4 export dataset. Credentials come
// from the ambient service account.
func NewBigQuerySource(ctx context.Context, project, dataset string) (*BigQuerySource, error) {
	client, err := bigquery.NewClient(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("bigquery client: %w", err)
	}
	return &BigQuerySource{client: client, project: project, dataset: dataset}, nil
}

// Close releases the underlying client.
func (s *BigQuerySource) Close() error {
	return s.client.Close()
}

var _ CampaignSource = (*BigQuerySource)(nil)

// FirstTouch returns the traffic source of the visitor's most recent
// session_start event. GA4 keys visitors by user_pseudo_id, the first two
// segments of the _ga cookie client id.
func (s *BigQuerySource) FirstTouch(ctx context.Context, clientID string) (Campaign, bool, error) {
	pseudoID, ok := userPseudoID(clientID)
	if !ok {
		return Campaign{}, false, nil
	}

	query := s.client.Query(fmt.Sprintf(`
		SELECT
			traffic_source.source AS source,
			traffic_source.medium AS medium,
			traffic_source.name AS campaign
		FROM `+"`%s.%s.%s`"+`
		WHERE user_pseudo_id = @userPseudoId
			AND event_name = 'session_start'
		ORDER BY event_timestamp DESC
		LIMIT 1`, s.project, s.dataset, ga4EventsTable))
	query.Parameters = []bigquery.QueryParameter{
		{Name: "userPseudoId", Value: pseudoID},
	}

	it, err := query.Read(ctx)
	if err != nil {
		return Campaign{}, false, fmt.Errorf("first touch query: %w", err)
	}

	var row struct {
		Source   bigquery.NullString `bigquery:"source"`
		Medium   bigquery.NullString `bigquery:"medium"`
		Campaign bigquery.NullString `bigquery:"campaign"`
	}
	if err := it.Next(&row); err != nil {
		if err == iterator.Done {
			return Campaign{}, false, nil
		}
		return Campaign{}, false, fmt.Errorf("first touch query: %w", err)
	}

	return Campaign{
		Source:   row.Source.StringVal,
		Medium:   row.Medium.StringVal,
		Campaign: row.Campaign.StringVal,
	}, true, nil
}

func userPseudoID(clientID string) (string, bool) {
	parts := strings.Split(clientID, ".")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", false
	}
	return parts[0] + "." + parts[1], true
}
