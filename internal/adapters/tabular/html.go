package tabular

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// UserAgent identifies fetches made by this service.
	UserAgent = "tourboard/1.0"
	// DefaultHTTPTimeout bounds a single HTTP fetch when the caller sets no deadline.
	DefaultHTTPTimeout = 30 * time.Second
)

// HTMLSource reads a published spreadsheet through its HTML table export,
// e.g. https://docs.google.com/spreadsheets/d/<id>/gviz/tq. The first
// <table> of the response is the sheet.
type HTMLSource struct {
	client  *http.Client
	baseURL string
}

// HTTPOption configures HTTP backed sources.
type HTTPOption func(*http.Client)

// WithHTTPClient replaces the client wholesale.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(dst *http.Client) {
		if c != nil {
			*dst = *c
		}
	}
}

// NewHTMLSource creates a source for the export endpoint at baseURL.
func NewHTMLSource(baseURL string, opts ...HTTPOption) *HTMLSource {
	c := &http.Client{Timeout: DefaultHTTPTimeout}
	for _, opt := range opts {
		opt(c)
	}
	return &HTMLSource{client: c, baseURL: baseURL}
}

// Table implements Source.
func (h *HTMLSource) Table(ctx context.Context, name string) ([][]string, error) {
	q := url.Values{}
	q.Set("tqx", "out:html")
	q.Set("sheet", name)
	endpoint := h.baseURL + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %w", ErrSourceUnavailable, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %q: %w", ErrSourceUnavailable, name, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %q (status %d)", ErrTableNotFound, name, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: unexpected status code: %d", ErrSourceUnavailable, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing HTML: %w", ErrSourceUnavailable, err)
	}
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: no table for %q", ErrTableNotFound, name)
	}

	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, strings.TrimSpace(strings.ReplaceAll(cell.Text(), "\u00a0", " ")))
		})
		rows = append(rows, row)
	})
	return rows, nil
}
