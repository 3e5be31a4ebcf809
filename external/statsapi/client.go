package statsapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"

	"github.com/mlb-tools/roster-watch/internal/domain/roster"
	"github.com/mlb-tools/roster-watch/internal/domain/transaction"
	"github.com/mlb-tools/roster-watch/internal/platform/logging"
	"github.com/mlb-tools/roster-watch/internal/platform/resilience"
)

const (
	defaultBaseURL = "https://statsapi.mlb.com/api/v1"
	defaultTeamID  = int64(116)

	maxResponseBytes = 6 << 20
)

var errTransient = crerr.New("stats provider transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	TeamID         int64
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the MLB Stats API for one club. All reads go through a
// circuit breaker with linear-backoff retries, and identical in-flight
// requests are collapsed.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	teamID         int64
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         singleflight.Group
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	teamID := cfg.TeamID
	if teamID <= 0 {
		teamID = defaultTeamID
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		teamID:         teamID,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) TeamID() int64 { return c.teamID }

// RosterForDate fetches the club's active roster as of the given civil
// date. Roster reads are load-bearing, so failures surface to the caller.
func (c *Client) RosterForDate(ctx context.Context, date time.Time) (roster.Snapshot, error) {
	day := roster.FormatDate(date)

	var envelope rosterEnvelope
	path := fmt.Sprintf("/teams/%d/roster", c.teamID)
	err := c.getJSON(ctx, path, url.Values{
		"rosterType": []string{"active"},
		"date":       []string{day},
	}, &envelope)
	if err != nil {
		return roster.Snapshot{}, fmt.Errorf("fetch roster date=%s: %w", day, err)
	}

	entries := make([]roster.Entry, 0, len(envelope.Roster))
	for _, item := range envelope.Roster {
		entry := mapRosterEntry(item)
		if err := entry.Validate(); err != nil {
			c.logger.WarnContext(ctx, "dropping malformed roster entry", "date", day, "error", err)
			continue
		}
		entries = append(entries, entry)
	}

	return roster.Snapshot{Date: date, Entries: entries}, nil
}

// TeamTransactions fetches the club's transactions inside the inclusive
// window, newest first. Failures surface to the caller, who decides whether
// to degrade; downgrading here would let an outage masquerade as a real
// empty list and get cached as one.
func (c *Client) TeamTransactions(ctx context.Context, start, end time.Time) ([]transaction.Detail, error) {
	values := url.Values{
		"teamId":    []string{strconv.FormatInt(c.teamID, 10)},
		"startDate": []string{roster.FormatDate(start)},
		"endDate":   []string{roster.FormatDate(end)},
	}

	var envelope transactionsEnvelope
	if err := c.getJSON(ctx, "/transactions", values, &envelope); err != nil {
		return nil, fmt.Errorf("fetch transactions start=%s end=%s: %w",
			roster.FormatDate(start), roster.FormatDate(end), err)
	}

	return c.cleanTransactions(ctx, envelope.Transactions), nil
}

// PlayerTransactions fetches one player's transactions inside the window.
// Same error contract as TeamTransactions.
func (c *Client) PlayerTransactions(ctx context.Context, playerID int64, start, end time.Time) ([]transaction.Detail, error) {
	values := url.Values{
		"playerId":  []string{strconv.FormatInt(playerID, 10)},
		"startDate": []string{roster.FormatDate(start)},
		"endDate":   []string{roster.FormatDate(end)},
	}

	var envelope transactionsEnvelope
	if err := c.getJSON(ctx, "/transactions", values, &envelope); err != nil {
		return nil, fmt.Errorf("fetch transactions player_id=%d: %w", playerID, err)
	}

	return c.cleanTransactions(ctx, envelope.Transactions), nil
}

// PlayerDetails fetches one player's biographical record.
func (c *Client) PlayerDetails(ctx context.Context, playerID int64) (roster.PlayerDetails, error) {
	if playerID <= 0 {
		return roster.PlayerDetails{}, fmt.Errorf("player id must be greater than zero")
	}

	var envelope peopleEnvelope
	path := fmt.Sprintf("/people/%d", playerID)
	if err := c.getJSON(ctx, path, nil, &envelope); err != nil {
		return roster.PlayerDetails{}, fmt.Errorf("fetch player player_id=%d: %w", playerID, err)
	}
	if len(envelope.People) == 0 {
		return roster.PlayerDetails{}, fmt.Errorf("player player_id=%d not found in provider response", playerID)
	}

	return mapPlayerDetails(envelope.People[0]), nil
}

// cleanTransactions drops malformed records and jersey-number changes, then
// orders newest first with ID as the tie-breaker.
func (c *Client) cleanTransactions(ctx context.Context, items []transactionItem) []transaction.Detail {
	out := make([]transaction.Detail, 0, len(items))
	for _, item := range items {
		detail := mapTransaction(item)
		if detail.TypeCode == transaction.TypeNumberChange {
			continue
		}
		if !detail.Valid() {
			c.logger.DebugContext(ctx, "dropping malformed transaction", "transaction_id", item.ID)
			continue
		}
		out = append(out, detail)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})

	return out
}

func (c *Client) getJSON(ctx context.Context, path string, values url.Values, target any) error {
	fullURL := c.baseURL + path
	if len(values) > 0 {
		fullURL += "?" + values.Encode()
	}

	raw, err, _ := c.flight.Do(fullURL, func() (any, error) {
		body, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return body, reqErr
	})
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(raw.([]byte), target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			return nil, fmt.Errorf("%w: %w", errTransient, err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * time.Second)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "stats provider request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}
