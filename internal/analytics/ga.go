package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// DefaultEndpoint is the Google Analytics Data API base URL.
const DefaultEndpoint = "https://analyticsdata.googleapis.com/v1beta"

// DefaultStartDate is the first day counted in page view totals.
const DefaultStartDate = "2025-03-01"

// GAClient reads page view totals from a GA4 property.
type GAClient struct {
	Endpoint    string
	PropertyID  string
	AccessToken string
	StartDate   string
	client      *http.Client
	logger      *slog.Logger
}

// NewGAClient creates a GA4 Data API client. Empty endpoint and start date
// fall back to the defaults.
func NewGAClient(endpoint, propertyID, accessToken, startDate string) *GAClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if startDate == "" {
		startDate = DefaultStartDate
	}
	return &GAClient{
		Endpoint:    strings.TrimRight(endpoint, "/"),
		PropertyID:  propertyID,
		AccessToken: accessToken,
		StartDate:   startDate,
		client:      http.DefaultClient,
		logger:      slog.Default(),
	}
}

// Configured reports whether the client has a property and credentials.
func (c *GAClient) Configured() bool {
	return c.PropertyID != "" && c.AccessToken != ""
}

type dateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type named struct {
	Name string `json:"name"`
}

type stringFilter struct {
	MatchType string `json:"matchType"`
	Value     string `json:"value"`
}

type filter struct {
	FieldName    string       `json:"fieldName"`
	StringFilter stringFilter `json:"stringFilter"`
}

type filterExpression struct {
	Filter filter `json:"filter"`
}

// ReportRequest is the runReport request body.
type ReportRequest struct {
	DateRanges      []dateRange      `json:"dateRanges"`
	Dimensions      []named          `json:"dimensions"`
	Metrics         []named          `json:"metrics"`
	DimensionFilter filterExpression `json:"dimensionFilter"`
}

type value struct {
	Value string `json:"value"`
}

// ReportRow is one row of a runReport response.
type ReportRow struct {
	DimensionValues []value `json:"dimensionValues"`
	MetricValues    []value `json:"metricValues"`
}

// ReportResponse is the runReport response body.
type ReportResponse struct {
	Rows []ReportRow `json:"rows"`
}

// PageViews returns the screenPageViews total for the exact pagePath since
// StartDate. An unconfigured client logs and returns 0.
func (c *GAClient) PageViews(ctx context.Context, pagePath string) (int64, error) {
	if !c.Configured() {
		c.logger.WarnContext(ctx, "analytics not configured, reporting zero views", "page_path", pagePath)
		return 0, nil
	}

	url := fmt.Sprintf("%s/properties/%s:runReport", c.Endpoint, c.PropertyID)
	payload := ReportRequest{
		DateRanges: []dateRange{{StartDate: c.StartDate, EndDate: "today"}},
		Dimensions: []named{{Name: "pagePath"}},
		Metrics:    []named{{Name: "screenPageViews"}},
		DimensionFilter: filterExpression{Filter: filter{
			FieldName:    "pagePath",
			StringFilter: stringFilter{MatchType: "EXACT", Value: pagePath},
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.AccessToken))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var report ReportResponse
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(report.Rows) == 0 || len(report.Rows[0].MetricValues) == 0 {
		return 0, nil
	}
	views, err := strconv.ParseInt(report.Rows[0].MetricValues[0].Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid metric value %q: %w", report.Rows[0].MetricValues[0].Value, err)
	}
	return views, nil
}
