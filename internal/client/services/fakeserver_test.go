package services

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dmitrijs2005/practicum/internal/client/apiclient"
	"github.com/dmitrijs2005/practicum/internal/client/tokenstore"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   map[string]any
}

// fakeServer records every request and answers from a chi router the test
// configures.
type fakeServer struct {
	*chi.Mux
	srv *httptest.Server

	mu   sync.Mutex
	reqs []recorded
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	f := &fakeServer{Mux: chi.NewRouter()}
	f.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := recorded{
				Method: r.Method,
				Path:   r.URL.Path,
				Query:  r.URL.RawQuery,
				Auth:   r.Header.Get("Authorization"),
			}
			if b, _ := io.ReadAll(r.Body); len(b) > 0 {
				_ = json.Unmarshal(b, &rec.Body)
			}
			f.mu.Lock()
			f.reqs = append(f.reqs, rec)
			f.mu.Unlock()
			next.ServeHTTP(w, r)
		})
	})
	f.srv = httptest.NewServer(f)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeServer) last(t *testing.T) recorded {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.reqs)
	return f.reqs[len(f.reqs)-1]
}

func (f *fakeServer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reqs)
}

// reply registers a JSON handler for method+pattern.
func (f *fakeServer) reply(method, pattern string, status int, body any) {
	f.MethodFunc(method, pattern, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, body)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func newTestClient(t *testing.T, f *fakeServer) (*apiclient.Client, *tokenstore.MemoryStore) {
	t.Helper()
	store := tokenstore.NewMemoryStore()
	c, err := apiclient.New(f.srv.URL, store)
	require.NoError(t, err)
	return c, store
}
