package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

// Client is the backend-facing HTTP client all resource accessors share: one
// base URL, one cookie jar carrying the credentialed session, JSON bodies
// everywhere except the multipart uploads.
type Client struct {
	base *url.URL
	http *http.Client

	mu    sync.RWMutex
	token string
}

func NewClient(conf *core.Config) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(conf.API.BaseURL, "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing API base URL %q", conf.API.BaseURL)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating cookie jar")
	}
	return &Client{
		base: base,
		http: &http.Client{Jar: jar, Timeout: conf.API.RequestTimeout},
	}, nil
}

// SetToken installs the bearer token issued at login; the cookie session
// remains the primary credential.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) url(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), body)
	if err != nil {
		return nil, errors.Wrapf(err, "building %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()
	return req, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, query url.Values, in, out interface{}) error {
	return c.send(ctx, http.MethodPost, path, query, in, out)
}

func (c *Client) put(ctx context.Context, path string, in, out interface{}) error {
	return c.send(ctx, http.MethodPut, path, nil, in, out)
}

func (c *Client) delete(ctx context.Context, path string, query url.Values) error {
	req, err := c.newRequest(ctx, http.MethodDelete, path, query, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.Wrapf(err, "encoding %s %s body", method, path)
		}
		body = bytes.NewReader(data)
	}
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

// postMultipart encodes the form via the parts callback and posts it.
func (c *Client) postMultipart(ctx context.Context, path string, query url.Values, parts func(w *multipart.Writer) error, out interface{}) error {
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	if err := parts(w); err != nil {
		return errors.Wrapf(err, "encoding multipart body for %s", path)
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "closing multipart writer")
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, query, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, out)
}

// stream issues a GET and hands the raw body to the caller, who owns it.
// Used for binary downloads.
func (c *Client) stream(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &core.NetworkError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, readError(resp)
	}
	return resp.Body, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &core.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return readError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decoding %s %s response", req.Method, req.URL.Path)
	}
	return nil
}

// readError maps a non-2xx response onto the client error taxonomy: a 400
// carrying field errors becomes a *core.ValidationError, everything else a
// *core.APIError. Resource accessors further map 404s to their package
// sentinels.
func readError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))

	var payload struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if resp.StatusCode == http.StatusBadRequest && len(payload.Fields) > 0 {
			flds := make([]core.FieldError, 0, len(payload.Fields))
			for f, msg := range payload.Fields {
				flds = append(flds, core.FieldError{Field: f, Error: msg})
			}
			return core.NewValidationError(errors.New(payload.Error), flds...)
		}
		if payload.Error != "" {
			return core.NewAPIError(resp.StatusCode, payload.Error)
		}
	}
	return core.NewAPIError(resp.StatusCode, strings.TrimSpace(string(data)))
}
