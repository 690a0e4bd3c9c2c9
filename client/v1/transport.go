package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string            `json:"message"`
	Fields     map[string]string `json:"fields,omitempty"`
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("status %d: %s %v", e.StatusCode, e.Message, e.Fields)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

// File is a multipart attachment.
type File struct {
	Field    string
	Filename string
	Body     io.Reader
}

type Download struct {
	Filename    string
	ContentType string
	Body        io.ReadCloser
}

// Transport handles low-level HTTP and authentication
type Transport struct {
	BaseURL    string
	Session    *Session
	HTTPClient *http.Client
}

func NewTransport(baseURL string, session *Session) *Transport {
	return &Transport{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Session:    session,
		HTTPClient: &http.Client{},
	}
}

// helper: build full URL with query params
func (t *Transport) buildURL(path string, query url.Values) (string, error) {
	u, err := url.Parse(t.BaseURL + path)
	if err != nil {
		return "", err
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				if v != "" {
					q.Add(k, v)
				}
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// send attaches the session token. A token that has already expired is dropped
// and the request is not made.
func (t *Transport) send(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	if t.Session != nil && t.Session.Token() != "" && !t.Session.Valid(time.Now()) {
		t.Session.Clear()
		return nil, fmt.Errorf("%s %s: session expired: %w", method, path, ErrUnauthorized)
	}

	fullURL, err := t.buildURL(path, query)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if t.Session != nil {
		if token := t.Session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, t.failure(resp)
	}
	return resp, nil
}

// failure turns an error response into an *APIError. A 401 ends the session.
func (t *Transport) failure(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	b, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(b, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(b))
	}
	apiErr.StatusCode = resp.StatusCode

	if resp.StatusCode == http.StatusUnauthorized && t.Session != nil {
		t.Session.Clear()
	}
	return apiErr
}

func decodeData(resp *http.Response, out any) error {
	defer resp.Body.Close()
	if out == nil {
		_, err := io.Copy(io.Discard, resp.Body)
		return err
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

// JSON sends in as the request body, when non-nil, and decodes the data member of
// the response into out.
func (t *Transport) JSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	resp, err := t.send(ctx, method, path, query, body, contentType)
	if err != nil {
		return err
	}
	return decodeData(resp, out)
}

// Multipart posts fields and the optional files as multipart/form-data.
func (t *Transport) Multipart(ctx context.Context, path string, fields map[string]string, files []File, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}
	for _, f := range files {
		if f.Body == nil {
			continue
		}
		fw, err := mw.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return err
		}
		if _, err := io.Copy(fw, f.Body); err != nil {
			return fmt.Errorf("write %s: %w", f.Field, err)
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}

	resp, err := t.send(ctx, http.MethodPost, path, nil, &buf, mw.FormDataContentType())
	if err != nil {
		return err
	}
	return decodeData(resp, out)
}

// Download fetches a file. The caller closes Body.
func (t *Transport) Download(ctx context.Context, path string, query url.Values) (*Download, error) {
	resp, err := t.send(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return nil, err
	}

	filename := ""
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		filename = params["filename"]
	}
	return &Download{
		Filename:    filename,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        resp.Body,
	}, nil
}
