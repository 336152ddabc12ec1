/**
 * @description
 * HTTP Client for The Odds API (the-odds-api.com).
 * Fetches NBA event listings and per-event player prop odds from
 * US sportsbooks.
 *
 * @dependencies
 * - net/http
 * - encoding/json
 * - backend/internal/config
 *
 * @notes
 * - Each market in a per-event odds request consumes API quota, so
 *   callers should batch markets into a single request.
 */

package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/courtedge-project/backend/internal/config"
)

const (
	DefaultTimeout = 20 * time.Second

	sportKey = "basketball_nba"
)

// DefaultBookmakers are the books whose lines get persisted on props.
var DefaultBookmakers = []string{"draftkings", "fanduel"}

type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		BaseURL: cfg.Feeds.OddsAPIURL,
		APIKey:  cfg.Feeds.OddsAPIKey,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// GetEvents fetches the list of upcoming NBA events.
func (c *Client) GetEvents(ctx context.Context) ([]Event, error) {
	u, err := url.Parse(fmt.Sprintf("%s/sports/%s/events", c.BaseURL, sportKey))
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("apiKey", c.APIKey)
	u.RawQuery = q.Encode()

	var events []Event
	if err := c.getJSON(ctx, u.String(), &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEventOdds fetches player prop odds for a single event, limited to
// the given market keys and the default bookmakers.
func (c *Client) GetEventOdds(ctx context.Context, eventID string, markets []string) (*EventOdds, error) {
	u, err := url.Parse(fmt.Sprintf("%s/sports/%s/events/%s/odds", c.BaseURL, sportKey, eventID))
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("apiKey", c.APIKey)
	q.Set("regions", "us")
	q.Set("oddsFormat", "american")
	q.Set("markets", strings.Join(markets, ","))
	q.Set("bookmakers", strings.Join(DefaultBookmakers, ","))
	u.RawQuery = q.Encode()

	var odds EventOdds
	if err := c.getJSON(ctx, u.String(), &odds); err != nil {
		return nil, err
	}
	return &odds, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("odds api error: status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
