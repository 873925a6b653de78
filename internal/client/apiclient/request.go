package apiclient

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"
)

// Request describes an outbound call. Body is sent as is, so it can be
// replayed after a refresh.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
	Header http.Header

	// Retried marks the request as already replayed once; a 401 on it is
	// returned as is. Set it up front for calls such as login, where a 401
	// means bad credentials rather than an expired token.
	Retried bool
}

// Response is a fully read 2xx response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals a JSON body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if v == nil || len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Blob is a binary response body such as a CSV, Excel or PDF export.
type Blob struct {
	ContentType string
	Filename    string
	Data        []byte
}

func blobFrom(resp *Response) *Blob {
	b := &Blob{ContentType: resp.Header.Get("Content-Type"), Data: resp.Body}
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			b.Filename = params["filename"]
		}
	}
	return b
}
