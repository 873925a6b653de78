package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/practicum/internal/client/tokenstore"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a minimal stand-in for the exam API: one protected resource
// and the token refresh endpoint.
type fakeAPI struct {
	srv *httptest.Server

	mu            sync.Mutex
	valid         string
	refreshToken  string
	issued        int
	refreshStatus int

	refreshCalls  atomic.Int32
	resourceCalls atomic.Int32

	// when gate is set, the refresh handler blocks until it is closed
	gate    chan struct{}
	started chan struct{}
}

func mintToken(t *testing.T, n int) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(5 * time.Minute).Unix(),
		"n":   n,
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{
		valid:        mintToken(t, 0),
		refreshToken: "R1",
		started:      make(chan struct{}, 64),
	}

	r := chi.NewRouter()
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.resourceCalls.Add(1)
		got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		f.mu.Lock()
		ok := got != "" && got == f.valid
		f.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"id": chi.URLParam(r, "id"), "token": got})
	})
	r.Get("/always401", func(w http.ResponseWriter, r *http.Request) {
		f.resourceCalls.Add(1)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "nope"})
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		f.resourceCalls.Add(1)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "kaput"})
	})
	r.Post(DefaultRefreshPath, func(w http.ResponseWriter, r *http.Request) {
		f.refreshCalls.Add(1)
		f.started <- struct{}{}

		f.mu.Lock()
		gate := f.gate
		f.mu.Unlock()
		if gate != nil {
			select {
			case <-gate:
			case <-r.Context().Done():
				return
			}
		}

		var in struct {
			Refresh string `json:"refresh"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)

		f.mu.Lock()
		defer f.mu.Unlock()
		if f.refreshStatus != 0 {
			writeJSON(w, f.refreshStatus, map[string]string{"detail": "refresh rejected"})
			return
		}
		if in.Refresh != f.refreshToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "bad refresh token"})
			return
		}
		f.issued++
		f.valid = mintToken(t, f.issued)
		writeJSON(w, http.StatusOK, map[string]string{"access": f.valid})
	})

	f.srv = httptest.NewServer(r)
	t.Cleanup(f.srv.Close)
	return f
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// hold makes the next refresh exchanges block until the returned func runs.
func (f *fakeAPI) hold(t *testing.T) (release func()) {
	t.Helper()
	gate := make(chan struct{})
	f.mu.Lock()
	f.gate = gate
	f.mu.Unlock()

	var once sync.Once
	release = func() { once.Do(func() { close(gate) }) }
	// registered after srv.Close, so it runs first
	t.Cleanup(release)
	return release
}

// expire invalidates whatever access token is currently valid.
func (f *fakeAPI) expire() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.valid = "revoked"
}

func (f *fakeAPI) currentToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.valid
}

type countingStore struct {
	tokenstore.Store
	clears  atomic.Int32
	readErr error
	// when set, Clear blocks until it is closed
	clearGate chan struct{}
}

func (s *countingStore) Clear(ctx context.Context) error {
	if s.clearGate != nil {
		<-s.clearGate
	}
	s.clears.Add(1)
	return s.Store.Clear(ctx)
}

func (s *countingStore) AccessToken(ctx context.Context) (string, error) {
	if s.readErr != nil {
		return "", s.readErr
	}
	return s.Store.AccessToken(ctx)
}

// expiredSession returns a store holding a stale access token and a valid
// refresh token.
func expiredSession(t *testing.T) *countingStore {
	t.Helper()
	s := &countingStore{Store: tokenstore.NewMemoryStore()}
	require.NoError(t, s.SetTokens(context.Background(), "stale", "R1"))
	require.NoError(t, s.SetUser(context.Background(), []byte(`{"role":"examiner"}`)))
	return s
}

type item struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

func getItem(ctx context.Context, c *Client, id string) (item, error) {
	var it item
	err := c.Get(ctx, fmt.Sprintf("/items/%s", id), nil, &it)
	return it, err
}

// waitQueued blocks until n requests wait on the running cycle.
func waitQueued(t *testing.T, c *Client, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		c.refresh.mu.Lock()
		defer c.refresh.mu.Unlock()
		return c.refresh.refreshing && len(c.refresh.waiters) == n
	}, 2*time.Second, time.Millisecond)
}

func newRotatingServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Post(DefaultRefreshPath, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"access": "A2", "refresh": "R2"})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newEmptyAccessServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Post(DefaultRefreshPath, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}
