package bar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ziadkadry99/efp-view/internal/species"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "efpview/1.0 (+https://bar.utoronto.ca)"

	// Study lists are a few hundred bytes; anything near this is not one.
	maxStudiesBody = 1 << 20
)

// Client fetches study lists and probes images on BAR.
type Client struct {
	urls    URLs
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a BAR client. A non-positive rps disables rate
// limiting; a non-positive timeout uses 30s.
func NewClient(baseURL string, timeout time.Duration, rps float64) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &Client{
		urls:    URLs{Base: baseURL},
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, 5),
	}
}

// URLs returns the URL builder for this client's host.
func (c *Client) URLs() URLs { return c.urls }

type studiesResponse struct {
	WasSuccessful bool     `json:"wasSuccessful"`
	Data          []string `json:"data"`
}

// Studies fetches the data sources available for a genome, sorted by
// value and labelled. Failures wrap ErrStudiesUnavailable.
func (c *Client) Studies(ctx context.Context, genome string) ([]species.Study, error) {
	body, err := c.get(ctx, c.urls.Studies(genome), "application/json", maxStudiesBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStudiesUnavailable, genome, err)
	}

	var resp studiesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %s: decoding response: %v", ErrStudiesUnavailable, genome, err)
	}
	if !resp.WasSuccessful {
		return nil, fmt.Errorf("%w: %s: BAR reported failure", ErrStudiesUnavailable, genome)
	}

	values := slices.Clone(resp.Data)
	slices.Sort(values)
	studies := make([]species.Study, len(values))
	for i, v := range values {
		studies[i] = species.NewStudy(v)
	}
	return studies, nil
}

// ProbeImage retrieves an image URL and checks that BAR returned an
// image. Failures wrap ErrImageUnavailable.
func (c *Client) ProbeImage(ctx context.Context, imageURL string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrImageUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrImageUnavailable, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "image/*")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrImageUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: HTTP %d", ErrImageUnavailable, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("%w: unexpected content type %q", ErrImageUnavailable, ct)
	}
	return nil
}

func (c *Client) get(ctx context.Context, rawURL, accept string, limit int64) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}
