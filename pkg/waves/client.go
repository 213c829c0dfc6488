package waves

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client talks to the Waves API. All requests go through Do so that
// authentication and error mapping are applied in a single place.
type Client struct {
	client *http.Client

	url   string
	token string
}

func New(url string, options ...Option) (*Client, error) {
	if url == "" {
		url = "https://waves-api.smallest.ai"
	}

	c := &Client{
		url: strings.TrimRight(url, "/"),
	}

	for _, option := range options {
		option(c)
	}

	if c.client == nil {
		c.client = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return c, nil
}

// Close releases idle connections of the underlying pool.
func (c *Client) Close() {
	c.client.CloseIdleConnections()
}

type FormFile struct {
	Field string
	Name  string

	Content     []byte
	ContentType string
}

type Request struct {
	Header http.Header

	JSON any

	Form  map[string]string
	Files []FormFile
}

// Do issues an authenticated request. path is either absolute or relative
// to the API base url. Non-2xx responses are returned as *APIError,
// transport failures as *NetworkError. The caller closes the response body.
func (c *Client) Do(ctx context.Context, method, path string, r *Request) (*http.Response, error) {
	if r == nil {
		r = new(Request)
	}

	u := path

	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		val, err := url.JoinPath(c.url, path)

		if err != nil {
			return nil, err
		}

		u = val
	}

	body, contentType, err := encodeBody(r)

	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)

	if err != nil {
		return nil, err
	}

	for k, v := range r.Header {
		for _, val := range v {
			req.Header.Add(k, val)
		}
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, convertError(resp)
	}

	return resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, r *Request) (json.RawMessage, error) {
	resp, err := c.Do(ctx, method, path, r)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if !json.Valid(data) {
		return nil, ErrMalformedResponse
	}

	return json.RawMessage(data), nil
}

func encodeBody(r *Request) (io.Reader, string, error) {
	if r.JSON != nil {
		data, err := json.Marshal(r.JSON)

		if err != nil {
			return nil, "", err
		}

		return bytes.NewReader(data), "application/json", nil
	}

	if len(r.Form) == 0 && len(r.Files) == 0 {
		return nil, "", nil
	}

	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	for k, v := range r.Form {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}

	for _, f := range r.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", multipart.FileContentDisposition(f.Field, f.Name))

		if f.ContentType != "" {
			h.Set("Content-Type", f.ContentType)
		} else {
			h.Set("Content-Type", "application/octet-stream")
		}

		part, err := w.CreatePart(h)

		if err != nil {
			return nil, "", err
		}

		if _, err := part.Write(f.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &b, w.FormDataContentType(), nil
}
