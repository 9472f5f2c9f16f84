/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

//nolint:revive // naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/onsi/ginkgo/v2"
)

var (
	ErrUnexpectedStatus      = errors.New("unexpected status code")
	ErrUnexpectedContentType = errors.New("unexpected content type")
	ErrMissingToken          = errors.New("authentication token missing from response")
)

//go:generate go tool mockgen -source=api_client.go -destination=mock/interfaces.go -package=mock

// Doer sends HTTP requests, *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Logger receives diagnostic output, ginkgo.GinkgoWriter satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

// LoggerFunc adapts a printf style function to a Logger.
type LoggerFunc func(format string, args ...any)

func (f LoggerFunc) Printf(format string, args ...any) {
	f(format, args...)
}

// Option customizes an APIClient.
type Option func(*APIClient)

// WithDoer replaces the HTTP client.
func WithDoer(doer Doer) Option {
	return func(c *APIClient) {
		c.client = doer
	}
}

// WithLogger replaces the Ginkgo writer.
func WithLogger(logger Logger) Option {
	return func(c *APIClient) {
		c.logger = logger
	}
}

type APIClient struct {
	client    Doer
	config    *TestConfig
	specs     *Specs
	endpoints *Endpoints
	logger    Logger
}

func NewAPIClient(config *TestConfig, specs *Specs, opts ...Option) *APIClient {
	c := &APIClient{
		client: &http.Client{
			Timeout: config.RequestTimeout,
		},
		config:    config,
		specs:     specs,
		endpoints: NewEndpoints(),
		logger:    ginkgo.GinkgoWriter,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Specs returns the registry the client was bound to.
func (c *APIClient) Specs() *Specs {
	return c.specs
}

// Endpoints returns the endpoint templates.
func (c *APIClient) Endpoints() *Endpoints {
	return c.endpoints
}

// BasicAuth are credentials sent in the Authorization header.
type BasicAuth struct {
	Username string
	Password string
}

// Call is a single request.  Path is a template such as /booking/{id} that
// is expanded with PathParams.  A []byte or string Body is sent verbatim,
// anything else is encoded according to the request spec.
type Call struct {
	Method     string
	Path       string
	PathParams map[string]any
	Query      url.Values
	Header     http.Header
	Cookies    []*http.Cookie
	BasicAuth  *BasicAuth
	Body       any
}

// Response is a fully read response.
type Response struct {
	Method     string
	Path       string
	StatusCode int
	Header     http.Header
	Body       []byte
	TraceID    string
}

// ContentType returns the media type without parameters.
func (r *Response) ContentType() ContentType {
	value := r.Header.Get("Content-Type")
	if value == "" {
		return ContentTypeNone
	}

	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return ContentType(value)
	}

	return ContentType(mediaType)
}

// Verify checks the response against a response spec.
func (r *Response) Verify(spec ResponseSpec) error {
	if spec == (ResponseSpec{}) {
		return ErrNotInitialized
	}

	if r.StatusCode != spec.ExpectedStatus {
		return fmt.Errorf("%w: %s %s expected %d, got %d, body: %s (trace ID: %s)", ErrUnexpectedStatus, r.Method, r.Path, spec.ExpectedStatus, r.StatusCode, string(r.Body), r.TraceID)
	}

	if spec.ExpectedContentType != ContentTypeNone && r.ContentType() != spec.ExpectedContentType {
		return fmt.Errorf("%w: %s %s expected %s, got %q (trace ID: %s)", ErrUnexpectedContentType, r.Method, r.Path, spec.ExpectedContentType, r.Header.Get("Content-Type"), r.TraceID)
	}

	return nil
}

// JSON decodes the body.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decoding JSON response from %s %s: %w", r.Method, r.Path, err)
	}

	return nil
}

// XML decodes the body.
func (r *Response) XML(v any) error {
	if err := xml.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decoding XML response from %s %s: %w", r.Method, r.Path, err)
	}

	return nil
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

func (c *APIClient) logFailure(call Call, elapsed time.Duration, trace traceContext, what string, err error) {
	c.logger.Printf("[%s %s] ERROR %s duration=%s traceparent=%s error=%v\n", call.Method, call.Path, what, elapsed, trace, err)
	c.logTraceContext(trace.traceID)
}

func (c *APIClient) logTraceContext(traceID string) {
	c.logger.Printf("TRACE CONTEXT: Use trace ID '%s' to search logs for this request\n", traceID)
}

// traceContext identifies a single request in W3C trace context terms.
type traceContext struct {
	traceID string
	spanID  string
}

func randomHex(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)

	return hex.EncodeToString(buf)
}

func newTraceContext() traceContext {
	return traceContext{
		traceID: randomHex(16),
		spanID:  randomHex(8),
	}
}

// String renders the traceparent header value, version 00, sampled.
func (t traceContext) String() string {
	return "00-" + t.traceID + "-" + t.spanID + "-01"
}

// encodeBody serializes the call body according to the content type.
func encodeBody(contentType ContentType, body any) ([]byte, error) {
	switch t := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return t, nil
	case string:
		return []byte(t), nil
	}

	if contentType == ContentTypeXML {
		data, err := xml.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding XML body: %w", err)
		}

		return data, nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding JSON body: %w", err)
	}

	return data, nil
}

func (c *APIClient) newRequest(ctx context.Context, spec RequestSpec, call Call, trace traceContext) (*http.Request, []byte, error) {
	path, err := c.endpoints.Expand(call.Path, call.PathParams)
	if err != nil {
		return nil, nil, err
	}

	fullURL := spec.URL() + path

	if len(call.Query) > 0 {
		fullURL += "?" + call.Query.Encode()
	}

	body, err := encodeBody(spec.ContentType, call.Body)
	if err != nil {
		return nil, nil, err
	}

	var reader io.Reader

	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, call.Method, fullURL, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}

	// W3C trace context.
	req.Header.Set("Traceparent", trace.String())
	req.Header.Set("Tracestate", "test-automation=ginkgo")

	if body != nil && spec.ContentType != ContentTypeNone {
		req.Header.Set("Content-Type", string(spec.ContentType))
	}

	if spec.Accept != ContentTypeNone {
		req.Header.Set("Accept", string(spec.Accept))
	}

	for name, values := range call.Header {
		req.Header.Del(name)

		for _, value := range values {
			req.Header.Add(name, value)
		}
	}

	for _, cookie := range call.Cookies {
		req.AddCookie(cookie)
	}

	if call.BasicAuth != nil {
		req.SetBasicAuth(call.BasicAuth.Username, call.BasicAuth.Password)
	}

	return req, body, nil
}

// Do sends a call described by the request spec.  Transport errors are
// returned as is, the status is not checked, use Response.Verify.
func (c *APIClient) Do(ctx context.Context, spec RequestSpec, call Call) (*Response, error) {
	if spec.IsZero() {
		return nil, fmt.Errorf("%w: %s %s", ErrNotInitialized, call.Method, call.Path)
	}

	trace := newTraceContext()

	req, body, err := c.newRequest(ctx, spec, call, trace)
	if err != nil {
		return nil, err
	}

	if spec.Logging {
		c.logger.Printf("[%s %s] request url=%s traceparent=%s\n", call.Method, call.Path, req.URL, trace)

		if len(body) > 0 {
			c.logger.Printf("[%s %s] request body: %s\n", call.Method, call.Path, string(body))
		}
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logFailure(call, duration, trace, "http request failed", err)
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logFailure(call, duration, trace, "reading response body", err)
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if spec.Logging {
		c.logger.Printf("[%s %s] status=%d duration=%s traceparent=%s\n", call.Method, call.Path, resp.StatusCode, duration, trace)

		if len(respBody) > 0 {
			c.logger.Printf("[%s %s] response body: %s\n", call.Method, call.Path, string(respBody))
		}
	}

	return &Response{
		Method:     call.Method,
		Path:       call.Path,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		TraceID:    trace.traceID,
	}, nil
}

// DoAndVerify sends a call and checks the response spec, the response is
// returned in either case so callers can inspect failures.
func (c *APIClient) DoAndVerify(ctx context.Context, spec RequestSpec, expect ResponseSpec, call Call) (*Response, error) {
	resp, err := c.Do(ctx, spec, call)
	if err != nil {
		return nil, err
	}

	if err := resp.Verify(expect); err != nil {
		c.logger.Printf("[%s %s] UNEXPECTED RESPONSE %v\n", call.Method, call.Path, err)
		c.logTraceContext(resp.TraceID)

		return resp, err
	}

	return resp, nil
}
