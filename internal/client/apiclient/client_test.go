package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/dmitrijs2005/practicum/internal/client/tokenstore"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoServer records the last request it saw and answers with a canned
// response.
type echoServer struct {
	srv     *httptest.Server
	last    *http.Request
	body    []byte
	status  int
	payload string
	header  http.Header
}

func newEchoServer(t *testing.T) *echoServer {
	t.Helper()
	e := &echoServer{status: http.StatusOK, payload: `{"ok":true}`, header: http.Header{}}
	e.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.last = r.Clone(context.Background())
		e.body, _ = io.ReadAll(r.Body)
		for k, vs := range e.header {
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
		w.WriteHeader(e.status)
		_, _ = io.WriteString(w, e.payload)
	}))
	t.Cleanup(e.srv.Close)
	return e
}

func TestNew_Validation(t *testing.T) {
	_, err := New("ftp://example.com", tokenstore.NewMemoryStore())
	require.Error(t, err)

	_, err = New("://bad", tokenstore.NewMemoryStore())
	require.Error(t, err)

	_, err = New("http://example.com", nil)
	require.Error(t, err)

	c, err := New("http://example.com/api/", tokenstore.NewMemoryStore())
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/api", c.baseURL)
}

func TestRequestInterceptor_AttachesBearer(t *testing.T) {
	e := newEchoServer(t)
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.SetTokens(context.Background(), "A1", "R1"))
	c, err := New(e.srv.URL, store)
	require.NoError(t, err)

	require.NoError(t, c.Get(context.Background(), "/accounts/me/", nil, nil))
	assert.Equal(t, "Bearer A1", e.last.Header.Get("Authorization"))
	assert.Equal(t, "application/json", e.last.Header.Get("Accept"))

	_, err = uuid.Parse(e.last.Header.Get("X-Request-ID"))
	assert.NoError(t, err, "request id is a uuid")
}

func TestRequestInterceptor_NoTokenNoHeader(t *testing.T) {
	e := newEchoServer(t)
	c, err := New(e.srv.URL, tokenstore.NewMemoryStore())
	require.NoError(t, err)

	require.NoError(t, c.Get(context.Background(), "/exams/programs/", nil, nil))
	assert.Empty(t, e.last.Header.Get("Authorization"))
}

func TestRequestInterceptor_FallsBackToDefaultHeader(t *testing.T) {
	e := newEchoServer(t)
	store := &countingStore{Store: tokenstore.NewMemoryStore(), readErr: errors.New("disk gone")}
	c, err := New(e.srv.URL, store)
	require.NoError(t, err)
	c.SetDefaultAuthorization("D1")

	require.NoError(t, c.Get(context.Background(), "/x/", nil, nil))
	assert.Equal(t, "Bearer D1", e.last.Header.Get("Authorization"))

	c.SetDefaultAuthorization("")
	require.NoError(t, c.Get(context.Background(), "/x/", nil, nil))
	assert.Empty(t, e.last.Header.Get("Authorization"))
}

func TestResponseInterceptor_NonAuthErrorsPassThrough(t *testing.T) {
	api := newFakeAPI(t)
	store := expiredSession(t)
	c := newTestClient(t, api, store)

	err := c.Get(context.Background(), "/boom", nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "kaput", apiErr.Detail())
	assert.Contains(t, err.Error(), "GET /boom: 500")

	assert.Zero(t, api.refreshCalls.Load())
	assert.Zero(t, store.clears.Load())
}

func TestResponseInterceptor_TransportErrorPassesThrough(t *testing.T) {
	e := newEchoServer(t)
	addr := e.srv.URL
	e.srv.Close()

	store := expiredSession(t)
	c, err := New(addr, store, WithHTTPClient(&http.Client{Timeout: time.Second}))
	require.NoError(t, err)

	err = c.Get(context.Background(), "/x/", nil, nil)
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Zero(t, store.clears.Load())
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, IsUnauthorized(&APIError{StatusCode: 401}))
	assert.True(t, IsForbidden(&APIError{StatusCode: 403}))
	assert.True(t, IsNotFound(&SessionError{Cause: &APIError{StatusCode: 404}}))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestPost_SendsJSON(t *testing.T) {
	e := newEchoServer(t)
	e.status = http.StatusCreated
	e.payload = `{"id":7}`
	c, err := New(e.srv.URL, tokenstore.NewMemoryStore())
	require.NoError(t, err)

	var out struct {
		ID int `json:"id"`
	}
	in := map[string]any{"step": 3, "score": 2}
	require.NoError(t, c.Post(context.Background(), "/exams/autosave-step-score/", in, &out))

	assert.Equal(t, http.MethodPost, e.last.Method)
	assert.Equal(t, "application/json", e.last.Header.Get("Content-Type"))
	var sent map[string]any
	require.NoError(t, json.Unmarshal(e.body, &sent))
	assert.EqualValues(t, 3, sent["step"])
	assert.Equal(t, 7, out.ID)
}

func TestVerbs(t *testing.T) {
	r := chi.NewRouter()
	var seen []string
	record := func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}
	r.Put("/a/", record)
	r.Patch("/a/", record)
	r.Delete("/a/", record)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, tokenstore.NewMemoryStore())
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, c.Put(ctx, "/a/", map[string]string{"x": "1"}, nil))
	require.NoError(t, c.Patch(ctx, "/a/", map[string]bool{"is_active": false}, nil))
	require.NoError(t, c.Delete(ctx, "/a/"))

	assert.Equal(t, []string{"PUT /a/", "PATCH /a/", "DELETE /a/"}, seen)
}

func TestDownload_Blob(t *testing.T) {
	e := newEchoServer(t)
	e.payload = "index,name\n1,Ama\n"
	e.header.Set("Content-Type", "text/csv")
	e.header.Set("Content-Disposition", `attachment; filename="student_grades.csv"`)
	c, err := New(e.srv.URL, tokenstore.NewMemoryStore())
	require.NoError(t, err)

	blob, err := c.Download(context.Background(), "/exams/grades/", url.Values{"export": {"csv"}})
	require.NoError(t, err)

	assert.Equal(t, "csv", e.last.URL.Query().Get("export"))
	assert.Equal(t, "*/*", e.last.Header.Get("Accept"))
	assert.Equal(t, "text/csv", blob.ContentType)
	assert.Equal(t, "student_grades.csv", blob.Filename)
	assert.Equal(t, "index,name\n1,Ama\n", string(blob.Data))
}

func TestDownload_RecoversFromExpiry(t *testing.T) {
	api := newFakeAPI(t)
	c := newTestClient(t, api, expiredSession(t))

	blob, err := c.Download(context.Background(), "/items/9", nil)
	require.NoError(t, err)
	assert.Contains(t, string(blob.Data), `"id":"9"`)
	assert.EqualValues(t, 1, api.refreshCalls.Load())
}

func TestResponse_Decode(t *testing.T) {
	var v map[string]int
	require.NoError(t, (&Response{}).Decode(&v))
	assert.Nil(t, v)

	require.Error(t, (&Response{Body: []byte("{")}).Decode(&v))
}
