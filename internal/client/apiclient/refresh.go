package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
)

type refreshResult struct {
	token string
	err   error
}

// refresher is the refresh state of one Client: idle while refreshing is
// false, and the FIFO queue of requests waiting on the running exchange.
type refresher struct {
	mu         sync.Mutex
	refreshing bool
	waiters    []chan refreshResult
}

// Refreshing reports whether a refresh exchange is in flight.
func (c *Client) Refreshing() bool {
	c.refresh.mu.Lock()
	defer c.refresh.mu.Unlock()
	return c.refresh.refreshing
}

// awaitToken returns the access token a 401'd request should be replayed
// with. The first caller while idle starts the exchange; everyone, the
// starter included, then waits on the same cycle in arrival order.
func (c *Client) awaitToken(ctx context.Context, cause error) (string, error) {
	ch := make(chan refreshResult, 1)

	c.refresh.mu.Lock()
	if !c.refresh.refreshing {
		refreshToken, err := c.store.RefreshToken(ctx)
		if err != nil {
			c.refresh.mu.Unlock()
			return "", fmt.Errorf("read refresh token: %w", err)
		}
		c.refresh.refreshing = true
		c.refresh.waiters = append(c.refresh.waiters, ch)
		c.refresh.mu.Unlock()

		go c.runRefresh(refreshToken, cause)
	} else {
		c.refresh.waiters = append(c.refresh.waiters, ch)
		n := len(c.refresh.waiters)
		c.refresh.mu.Unlock()
		c.log.Debug(ctx, "queued behind running refresh", "position", n)
	}

	select {
	case res := <-ch:
		return res.token, res.err
	case <-ctx.Done():
		// ch is buffered, the cycle will not block on us
		return "", ctx.Err()
	}
}

// runRefresh performs one exchange and settles every waiter. Credentials
// are persisted or wiped before the state returns to idle, so a 401 that
// arrives afterwards starts from the outcome of this cycle. Without a
// refresh token there is nothing to exchange and the cycle fails with cause.
func (c *Client) runRefresh(refreshToken string, cause error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.refreshTimeout)
	defer cancel()

	var (
		access string
		err    error
	)
	if refreshToken == "" {
		c.log.Info(ctx, "no refresh token, session expired")
		err = cause
		if err == nil {
			err = ErrSessionExpired
		}
	} else {
		c.log.Info(ctx, "refreshing access token")
		access, err = c.exchange(ctx, refreshToken)
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s: %w", ErrRefreshTimeout, c.refreshTimeout, err)
		}
		if err != nil {
			c.log.Warn(ctx, "token refresh failed", "error", err)
		}
	}

	var serr error
	if err != nil {
		serr = c.wipe(context.WithoutCancel(ctx), err)
	}

	c.refresh.mu.Lock()
	waiters := c.refresh.waiters
	c.refresh.waiters = nil
	c.refresh.refreshing = false
	c.refresh.mu.Unlock()

	// the host hears about the expiry before any caller sees the error
	if serr != nil {
		c.notifyExpired(serr)
	}
	for _, w := range waiters {
		w <- refreshResult{token: access, err: serr}
	}
	if serr != nil {
		return
	}

	args := []any{"waiters", len(waiters)}
	if exp, err := TokenExpiry(access); err == nil {
		args = append(args, "expires_at", exp)
	}
	c.log.Info(ctx, "access token refreshed", args...)
}

type refreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// exchange trades the refresh token for a new access token and persists
// it, together with a rotated refresh token when the server issues one.
func (c *Client) exchange(ctx context.Context, refreshToken string) (string, error) {
	body, err := json.Marshal(map[string]string{"refresh": refreshToken})
	if err != nil {
		return "", err
	}

	resp, err := c.roundTrip(ctx, &Request{Method: http.MethodPost, Path: c.refreshPath, Body: body}, nil)
	if err != nil {
		return "", err
	}

	var out refreshResponse
	if err := resp.Decode(&out); err != nil {
		return "", err
	}
	if out.Access == "" {
		return "", ErrEmptyAccess
	}

	if err := c.store.SetTokens(ctx, out.Access, out.Refresh); err != nil {
		return "", fmt.Errorf("persist tokens: %w", err)
	}
	c.SetDefaultAuthorization(out.Access)
	return out.Access, nil
}
