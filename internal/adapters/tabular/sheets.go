package tabular

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	// SheetsEndpoint is the Sheets API v4 base URL.
	SheetsEndpoint = "https://sheets.googleapis.com/v4/spreadsheets"
	sheetsScope    = "https://www.googleapis.com/auth/spreadsheets.readonly"
)

// SheetsSource reads tabs through the Sheets API values endpoint.
type SheetsSource struct {
	client        *http.Client
	endpoint      string
	spreadsheetID string
}

// SheetsOption configures a SheetsSource.
type SheetsOption func(*SheetsSource)

// WithSheetsEndpoint overrides the API base URL.
func WithSheetsEndpoint(endpoint string) SheetsOption {
	return func(s *SheetsSource) {
		if endpoint != "" {
			s.endpoint = endpoint
		}
	}
}

// WithSheetsClient sets the HTTP client; it should already carry credentials.
func WithSheetsClient(c *http.Client) SheetsOption {
	return func(s *SheetsSource) {
		if c != nil {
			s.client = c
		}
	}
}

// NewSheetsSource creates a source for one spreadsheet.
func NewSheetsSource(spreadsheetID string, opts ...SheetsOption) *SheetsSource {
	s := &SheetsSource{
		client:        &http.Client{Timeout: DefaultHTTPTimeout},
		endpoint:      SheetsEndpoint,
		spreadsheetID: spreadsheetID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ServiceAccountClient builds an authorised client from a service-account key file.
func ServiceAccountClient(ctx context.Context, credentialsFile string) (*http.Client, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, sheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}
	c := oauth2.NewClient(ctx, creds.TokenSource)
	c.Timeout = DefaultHTTPTimeout
	return c, nil
}

type valueRange struct {
	Range  string  `json:"range"`
	Values [][]any `json:"values"`
}

// Table implements Source.
func (s *SheetsSource) Table(ctx context.Context, name string) ([][]string, error) {
	endpoint := fmt.Sprintf("%s/%s/values/%s", s.endpoint, url.PathEscape(s.spreadsheetID), url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %w", ErrSourceUnavailable, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %q: %w", ErrSourceUnavailable, name, err)
	}
	defer resp.Body.Close()

	switch {
	// The API answers 400 "Unable to parse range" for a missing tab.
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %q (status %d)", ErrTableNotFound, name, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: unexpected status code: %d", ErrSourceUnavailable, resp.StatusCode)
	}

	var vr valueRange
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, fmt.Errorf("%w: decoding %q: %w", ErrSourceUnavailable, name, err)
	}
	rows := make([][]string, len(vr.Values))
	for i, raw := range vr.Values {
		row := make([]string, len(raw))
		for j, v := range raw {
			if v != nil {
				row[j] = fmt.Sprint(v)
			}
		}
		rows[i] = row
	}
	return rows, nil
}
