package apiclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/practicum/internal/client/tokenstore"
	"github.com/dmitrijs2005/practicum/internal/common"
	"github.com/dmitrijs2005/practicum/internal/logging"
	"github.com/google/uuid"
)

const (
	DefaultRefreshPath    = "/accounts/token/refresh/"
	DefaultRefreshTimeout = 15 * time.Second
	DefaultRequestTimeout = 30 * time.Second
)

// Client is the authenticated HTTP client. It is safe for concurrent use;
// the refresh state belongs to the instance, so two clients never share a
// cycle.
type Client struct {
	baseURL        string
	http           *http.Client
	store          tokenstore.Store
	log            logging.Logger
	refreshPath    string
	refreshTimeout time.Duration
	onExpired      func(error)

	refresh *refresher

	authMu      sync.RWMutex
	defaultAuth string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithRefreshTimeout bounds the refresh exchange. Every request queued on a
// cycle that runs out of time fails with ErrRefreshTimeout.
// A non-positive d keeps DefaultRefreshTimeout.
func WithRefreshTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.refreshTimeout = d
		}
	}
}

func WithRefreshPath(p string) Option {
	return func(c *Client) { c.refreshPath = p }
}

// OnSessionExpired registers fn to be called after credentials were wiped
// because the session could not be recovered. The host decides what to do
// (show the login prompt, exit, ...). fn must not block.
func OnSessionExpired(fn func(error)) Option {
	return func(c *Client) { c.onExpired = fn }
}

func New(baseURL string, store tokenstore.Store, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if store == nil {
		return nil, errors.New("nil token store")
	}

	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		http:           &http.Client{Timeout: DefaultRequestTimeout},
		store:          store,
		log:            logging.Nop(),
		refreshPath:    DefaultRefreshPath,
		refreshTimeout: DefaultRefreshTimeout,
		refresh:        &refresher{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Do sends req. A 401 on a request that was not replayed yet goes through
// the refresh cycle; every other failure is returned unchanged.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	r := *req

	resp, err := c.send(ctx, &r, "")
	if err == nil {
		return resp, nil
	}
	if !IsUnauthorized(err) || r.Retried {
		return nil, err
	}

	r.Retried = true
	token, err := c.awaitToken(ctx, err)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, &r, token)
}

// SetDefaultAuthorization sets the bearer token used when the store cannot
// be read. Login and every successful refresh call it.
func (c *Client) SetDefaultAuthorization(token string) {
	c.authMu.Lock()
	defer c.authMu.Unlock()
	if token == "" {
		c.defaultAuth = ""
		return
	}
	c.defaultAuth = common.BearerScheme + " " + token
}

func (c *Client) defaultAuthorization() string {
	c.authMu.RLock()
	defer c.authMu.RUnlock()
	return c.defaultAuth
}

// authorize attaches the bearer credential. A missing token is not an
// error; the request just goes out unauthenticated.
func (c *Client) authorize(ctx context.Context, hr *http.Request, token string) {
	if token == "" {
		t, err := c.store.AccessToken(ctx)
		if err != nil {
			c.log.Warn(ctx, "read access token", "error", err)
			if def := c.defaultAuthorization(); def != "" {
				hr.Header.Set(common.AuthorizationHeader, def)
			}
			return
		}
		token = t
	}
	if token != "" {
		hr.Header.Set(common.AuthorizationHeader, common.BearerScheme+" "+token)
	}
}

// send performs a single round trip. token overrides the stored access
// token; it is how replays carry the freshly issued one.
func (c *Client) send(ctx context.Context, req *Request, token string) (*Response, error) {
	return c.roundTrip(ctx, req, func(hr *http.Request) { c.authorize(ctx, hr, token) })
}

func (c *Client) roundTrip(ctx context.Context, req *Request, decorate func(*http.Request)) (*Response, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	hr, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			hr.Header.Add(k, v)
		}
	}
	if req.Body != nil && hr.Header.Get("Content-Type") == "" {
		hr.Header.Set("Content-Type", "application/json")
	}
	if hr.Header.Get("Accept") == "" {
		hr.Header.Set("Accept", "application/json")
	}
	rid := uuid.NewString()
	hr.Header.Set(common.RequestIDHeader, rid)
	if decorate != nil {
		decorate(hr)
	}

	log := c.log.With("request_id", rid, "method", req.Method, "path", req.Path)
	start := time.Now()

	res, err := c.http.Do(hr)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", req.Method, req.Path, err)
	}
	log.Debug(ctx, "request done", "status", res.StatusCode, "dur", time.Since(start))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &APIError{StatusCode: res.StatusCode, Method: req.Method, Path: req.Path, Body: data}
	}
	return &Response{StatusCode: res.StatusCode, Header: res.Header, Body: data}, nil
}

func (c *Client) wipe(ctx context.Context, cause error) error {
	if err := c.store.Clear(ctx); err != nil {
		c.log.Error(ctx, "clear credentials", "error", err)
	}
	c.SetDefaultAuthorization("")
	return &SessionError{Cause: cause}
}

func (c *Client) notifyExpired(err error) {
	if c.onExpired != nil {
		c.onExpired(err)
	}
}
