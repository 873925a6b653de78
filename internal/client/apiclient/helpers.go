package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	req := &Request{Method: method, Path: path, Query: query}
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		req.Body = b
	}

	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, in, out)
}

func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, nil, in, out)
}

func (c *Client) Patch(ctx context.Context, path string, in, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, nil, in, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Download fetches a binary body, e.g. an export.
func (c *Client) Download(ctx context.Context, path string, query url.Values) (*Blob, error) {
	resp, err := c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
		Header: http.Header{"Accept": []string{"*/*"}},
	})
	if err != nil {
		return nil, err
	}
	return blobFrom(resp), nil
}
