/**
 * @description
 * HTTP Client for the PrizePicks projections feed.
 * Fetches the current prop board for a league.
 *
 * @dependencies
 * - net/http
 * - encoding/json
 * - backend/internal/config
 *
 * @notes
 * - The feed requires browser-like headers or it rejects the request.
 */

package prizepicks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/courtedge-project/backend/internal/config"
)

const (
	DefaultTimeout = 15 * time.Second
	defaultPerPage = 250
)

type Client struct {
	BaseURL    string
	LeagueID   int
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		BaseURL:  cfg.Feeds.PrizePicksURL,
		LeagueID: cfg.Feeds.PrizePicksLeague,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// GetProjections fetches the current single-stat projection board.
func (c *Client) GetProjections(ctx context.Context) (*ProjectionsResponse, error) {
	u, err := url.Parse(fmt.Sprintf("%s/projections", c.BaseURL))
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("league_id", strconv.Itoa(c.LeagueID))
	q.Set("per_page", strconv.Itoa(defaultPerPage))
	q.Set("single_stat", "true")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Origin", "https://app.prizepicks.com")
	req.Header.Set("Referer", "https://app.prizepicks.com/")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("prizepicks api error: status %d", resp.StatusCode)
	}

	var payload ProjectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	return &payload, nil
}
