// SPDX-License-Identifier: MIT

// Package archive is a client for the NASA Exoplanet Archive TAP service.
package archive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// planetQuery selects the column set the catalog is built from. The TAP sync
// endpoint does not paginate, so the whole ps table is fetched in one shot.
const planetQuery = `SELECT pl_name, hostname, discoverymethod, disc_year, disc_facility, ` +
	`pl_orbper, pl_orbsmax, pl_rade, pl_radj, pl_masse, pl_massj, ` +
	`pl_bmasse, pl_bmassj, pl_bmassprov, pl_eqt, pl_insol, pl_dens, ` +
	`st_teff, st_rad, st_mass, st_met, st_logg, st_age, ` +
	`sy_snum, sy_pnum, sy_dist, sy_gaiamag, ra, dec, glat, glon FROM ps`

// maxErrorBody caps how much of an upstream error payload is kept for logs.
const maxErrorBody = 512

type Client struct {
	base    string
	http    *http.Client
	limiter *rate.Limiter
}

// Option adjusts client construction.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithRateLimit caps outgoing requests per second. The archive is a shared
// public service; the client never hammers it even when syncs are scripted.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

func New(base string, opts ...Option) *Client {
	c := &Client{
		base:    strings.TrimRight(base, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(0.5), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConfirmedPlanets fetches the full planetary systems table. It returns the
// decoded rows plus the raw response body so callers can snapshot it.
func (c *Client) ConfirmedPlanets(ctx context.Context) ([]Record, []byte, error) {
	return c.query(ctx, planetQuery)
}

func (c *Client) query(ctx context.Context, adql string) ([]Record, []byte, error) {
	const op = "query"

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, nil, &Error{Sentinel: ErrTimeout, Operation: op, Err: err}
		}
	}

	params := url.Values{}
	params.Set("query", adql)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, nil, &Error{Sentinel: ErrBadQuery, Operation: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		sentinel := ErrUnavailable
		if isTimeout(err) {
			sentinel = ErrTimeout
		}
		return nil, nil, &Error{Sentinel: sentinel, Operation: op, Err: err}
	}
	defer res.Body.Close() //nolint:errcheck

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return nil, nil, &Error{
			Sentinel:  classifyStatus(res.StatusCode),
			Operation: op,
			Status:    res.StatusCode,
			Body:      strings.TrimSpace(string(body)),
		}
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, nil, &Error{Sentinel: ErrBadResponse, Operation: op, Err: err}
	}

	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, nil, &Error{Sentinel: ErrBadResponse, Operation: op, Err: err}
	}
	return records, raw, nil
}

func classifyStatus(status int) error {
	switch {
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= 400 && status < 500:
		return ErrBadQuery
	case status >= 500:
		return ErrServerError
	default:
		return ErrBadResponse
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
