// Package scryfall provides a minimal client for the Scryfall card catalog
// API, covering exact, fuzzy and bulk lookups plus image fetching. All calls
// share a rate limiter so successive requests keep the minimum spacing the
// API asks for.
package scryfall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public Scryfall API endpoint.
const DefaultBaseURL = "https://api.scryfall.com"

// DefaultRequestDelay is the minimum spacing between successive API calls,
// per Scryfall's published rate-limit guidance.
const DefaultRequestDelay = 100 * time.Millisecond

var (
	// ErrNotFound means the catalog has no card matching the query.
	ErrNotFound = errors.New("scryfall: no matching card")
	// ErrAmbiguous means a fuzzy name matched several cards and the catalog
	// could not pick a canonical one.
	ErrAmbiguous = errors.New("scryfall: name matches multiple cards")
)

// Client provides access to the Scryfall API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRequestDelay overrides the minimum delay between API calls. A zero or
// negative delay disables pacing, which tests rely on.
func WithRequestDelay(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// New creates a Scryfall client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("scryfall: base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(DefaultRequestDelay), 1),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// BaseURL returns the API endpoint this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// BySetAndNumber fetches the exact printing identified by set code and
// collector number. A miss is ErrNotFound; there is no fuzzy fallback.
func (c *Client) BySetAndNumber(ctx context.Context, setCode, number string) (*Card, error) {
	setCode = strings.ToLower(strings.TrimSpace(setCode))
	number = strings.TrimSpace(number)
	if setCode == "" || number == "" {
		return nil, errors.New("scryfall: set code and collector number required")
	}
	return c.getCard(ctx, fmt.Sprintf("%s/cards/%s/%s", c.baseURL, url.PathEscape(setCode), url.PathEscape(number)))
}

// ByName resolves a card by fuzzy name match. The catalog picks the default
// printing; multiple equally-valid matches surface as ErrAmbiguous.
func (c *Client) ByName(ctx context.Context, name string) (*Card, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("scryfall: name must not be empty")
	}
	params := url.Values{}
	params.Set("fuzzy", name)
	return c.getCard(ctx, c.baseURL+"/cards/named?"+params.Encode())
}

// ByID fetches a card by its catalog ID.
func (c *Client) ByID(ctx context.Context, id string) (*Card, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("scryfall: card id must not be empty")
	}
	return c.getCard(ctx, fmt.Sprintf("%s/cards/%s", c.baseURL, url.PathEscape(id)))
}

// ListSet returns every card of a set in catalog order, following search
// pagination. An empty set is ErrNotFound.
func (c *Client) ListSet(ctx context.Context, setCode string) ([]Card, error) {
	setCode = strings.ToLower(strings.TrimSpace(setCode))
	if setCode == "" {
		return nil, errors.New("scryfall: set code must not be empty")
	}
	params := url.Values{}
	params.Set("q", "set:"+setCode)
	params.Set("unique", "cards")
	next := c.baseURL + "/cards/search?" + params.Encode()

	var cards []Card
	for next != "" {
		resp, err := c.do(ctx, next)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			err := c.statusError(resp)
			resp.Body.Close()
			return nil, err
		}
		var page listResponse
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decode search response: %w", err)
		}
		cards = append(cards, page.Data...)
		next = ""
		if page.HasMore {
			next = page.NextPage
		}
	}
	if len(cards) == 0 {
		return nil, ErrNotFound
	}
	return cards, nil
}

// FetchImage downloads raw image bytes from an image URI the catalog handed
// out. The same pacing applies as for API calls.
func (c *Client) FetchImage(ctx context.Context, uri string) ([]byte, error) {
	resp, err := c.do(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scryfall: image fetch returned %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read image body: %w", err)
	}
	return data, nil
}

func (c *Client) getCard(ctx context.Context, rawURL string) (*Card, error) {
	resp, err := c.do(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp)
	}
	var card Card
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		return nil, fmt.Errorf("decode card response: %w", err)
	}
	return &card, nil
}

func (c *Client) do(ctx context.Context, rawURL string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limit: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

// statusError maps a non-200 response to the error taxonomy. Scryfall wraps
// failures in a JSON error object whose type tells ambiguity apart from a
// plain miss.
func (c *Client) statusError(resp *http.Response) error {
	var payload apiError
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Object == "error" {
		if payload.Type == "ambiguous" {
			return ErrAmbiguous
		}
		if resp.StatusCode == http.StatusNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("scryfall: %s (status %d)", payload.Details, resp.StatusCode)
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return fmt.Errorf("scryfall: request returned %d", resp.StatusCode)
}
