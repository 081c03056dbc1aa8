package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	googleTokenURL     = "https://oauth2.googleapis.com/token"
	googleAdsSearchURL = "https://googleads.googleapis.com/v18/customers/%s/googleAds:searchStream"

	microsPerUnit = 1_000_000
)

// GoogleAds pulls daily spend from the Google Ads reporting API.
// Required credentials: client_id, client_secret, refresh_token,
// developer_token, customer_id.
type GoogleAds struct {
	creds  Source
	client *http.Client
}

// NewGoogleAds creates a Google Ads spend provider.
func NewGoogleAds(creds Source) *GoogleAds {
	return &GoogleAds{creds: creds, client: newHTTPClient()}
}

var _ Provider = (*GoogleAds)(nil)

func (p *GoogleAds) Name() string {
	return "google"
}

func (p *GoogleAds) DailySpend(ctx context.Context, day string) (SpendReport, error) {
	creds, ok, err := p.creds.Credentials(ctx, p.Name())
	if err != nil {
		return SpendReport{}, err
	}
	if !ok {
		return SpendReport{}, nil
	}

	accessToken, err := p.refreshAccessToken(ctx, creds)
	if err != nil {
		return SpendReport{}, err
	}

	query := fmt.Sprintf(
		`SELECT metrics.cost_micros, metrics.impressions, metrics.clicks FROM customer WHERE segments.date = '%s'`, day)
	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return SpendReport{}, fmt.Errorf("google ads query: %w", err)
	}

	customerID := strings.ReplaceAll(creds["customer_id"], "-", "")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf(googleAdsSearchURL, customerID), bytes.NewReader(payload))
	if err != nil {
		return SpendReport{}, fmt.Errorf("google ads request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("developer-token", creds["developer_token"])

	resp, err := p.client.Do(req)
	if err != nil {
		return SpendReport{}, fmt.Errorf("google ads request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return SpendReport{}, fmt.Errorf("google ads request: unexpected status %d", resp.StatusCode)
	}

	var batches []struct {
		Results []struct {
			Metrics struct {
				CostMicros  int64 `json:"costMicros,string"`
				Impressions int64 `json:"impressions,string"`
				Clicks      int64 `json:"clicks,string"`
			} `json:"metrics"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&batches); err != nil {
		return SpendReport{}, fmt.Errorf("google ads response: %w", err)
	}

	var report SpendReport
	for _, batch := range batches {
		for _, row := range batch.Results {
			report.Cost += float64(row.Metrics.CostMicros) / microsPerUnit
			report.Impressions += row.Metrics.Impressions
			report.Clicks += row.Metrics.Clicks
		}
	}
	return report, nil
}

func (p *GoogleAds) refreshAccessToken(ctx context.Context, creds Credentials) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", creds["client_id"])
	form.Set("client_secret", creds["client_secret"])
	form.Set("refresh_token", creds["refresh_token"])

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleTokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("google token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("google token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google token request: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("google token response: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("google token response: empty access token")
	}
	return body.AccessToken, nil
}
