package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const tiktokReportURL = "https://business-api.tiktok.com/open_api/v1.3/report/integrated/get/"

// TikTok pulls daily spend from the TikTok Business reporting API.
// Required credentials: access_token, advertiser_id.
type TikTok struct {
	creds  Source
	client *http.Client
}

// NewTikTok creates a TikTok spend provider.
func NewTikTok(creds Source) *TikTok {
	return &TikTok{creds: creds, client: newHTTPClient()}
}

var _ Provider = (*TikTok)(nil)

func (p *TikTok) Name() string {
	return "tiktok"
}

func (p *TikTok) DailySpend(ctx context.Context, day string) (SpendReport, error) {
	creds, ok, err := p.creds.Credentials(ctx, p.Name())
	if err != nil {
		return SpendReport{}, err
	}
	if !ok {
		return SpendReport{}, nil
	}

	params := url.Values{}
	params.Set("advertiser_id", creds["advertiser_id"])
	params.Set("report_type", "BASIC")
	params.Set("data_level", "AUCTION_ADVERTISER")
	params.Set("dimensions", `["advertiser_id"]`)
	params.Set("metrics", `["spend","impressions","clicks"]`)
	params.Set("start_date", day)
	params.Set("end_date", day)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tiktokReportURL+"?"+params.Encode(), nil)
	if err != nil {
		return SpendReport{}, fmt.Errorf("tiktok spend request: %w", err)
	}
	req.Header.Set("Access-Token", creds["access_token"])

	resp, err := p.client.Do(req)
	if err != nil {
		return SpendReport{}, fmt.Errorf("tiktok spend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return SpendReport{}, fmt.Errorf("tiktok spend request: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Data    struct {
			List []struct {
				Metrics struct {
					Spend       string `json:"spend"`
					Impressions string `json:"impressions"`
					Clicks      string `json:"clicks"`
				} `json:"metrics"`
			} `json:"list"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return SpendReport{}, fmt.Errorf("tiktok spend response: %w", err)
	}
	if body.Code != 0 {
		return SpendReport{}, fmt.Errorf("tiktok spend response: code %d: %s", body.Code, body.Message)
	}

	var report SpendReport
	for _, row := range body.Data.List {
		spend, _ := strconv.ParseFloat(row.Metrics.Spend, 64)
		impressions, _ := strconv.ParseInt(row.Metrics.Impressions, 10, 64)
		clicks, _ := strconv.ParseInt(row.Metrics.Clicks, 10, 64)
		report.Cost += spend
		report.Impressions += impressions
		report.Clicks += clicks
	}
	return report, nil
}
