package ses

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	contentType     = "application/json"
	requestIDHeader = "X-Request-ID"
)

// RequestOptions tunes a single Request call. The zero value is a GET
// without query or body.
type RequestOptions struct {
	Method string
	Query  url.Values
	// Body is encoded as JSON when not nil.
	Body   any
	Header http.Header
}

// Request issues one HTTP call to APIURL+endpoint and decodes a successful
// JSON response into target. A nil target or a 204 response leaves target
// untouched; any other empty success body is an error. Failures are always returned as *APIError.
func (c *Client) Request(ctx context.Context, endpoint string, opts *RequestOptions, target any) error {
	if opts == nil {
		opts = &RequestOptions{}
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := c.newRequest(ctx, method, endpoint, opts)
	if err != nil {
		return newNetworkError(err)
	}

	resp, err := c.request(req)
	if err != nil {
		return newNetworkError(err)
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return newNetworkError(err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Debug("got error response",
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode),
			zap.String("request_id", req.Header.Get(requestIDHeader)),
		)
		return newStatusError(resp.StatusCode, string(data))
	}

	if target == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return newNetworkError(fmt.Errorf("decode response: empty body with status %d", resp.StatusCode))
	}

	if err := json.Unmarshal(data, target); err != nil {
		return newNetworkError(fmt.Errorf("decode response: %w", err))
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, opts *RequestOptions) (*http.Request, error) {
	var body io.Reader
	if opts.Body != nil {
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.APIURL+endpoint, body)
	if err != nil {
		return nil, err
	}

	if len(opts.Query) > 0 {
		req.URL.RawQuery = opts.Query.Encode()
	}

	req = c.setHeaders(req)
	for key, values := range opts.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	return req, nil
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.String("request_id", req.Header.Get(requestIDHeader)),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("got response",
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
	)

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", contentType)
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set(requestIDHeader, uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}

	return req
}

// readBody returns the whole response body. The transport only decompresses
// gzip on its own when it asked for it, so an unsolicited gzip body is
// handled here.
func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	return io.ReadAll(reader)
}
