package watson

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/broady/watson/internal/meta"
)

const defaultTimeout = 60 * time.Second

// ServiceOptions configures a Service.
type ServiceOptions struct {
	// URL is the service endpoint, e.g.
	// https://stream.watsonplatform.net/speech-to-text/api. Required.
	URL string

	// Authenticator decorates each request with credentials.
	// Default: NoAuthAuthenticator.
	Authenticator Authenticator

	// HTTPClient sends requests. Default: a client with a 60s timeout.
	HTTPClient *http.Client

	// Logger receives debug output about failed decodes.
	// If not set, slog.Default() is used.
	Logger *slog.Logger

	// Interceptors wrap every call, first one outermost.
	Interceptors []UnaryInterceptor

	// Headers are sent with every request.
	Headers map[string]string

	// DisableSSLVerification skips TLS certificate checks.
	DisableSSLVerification bool
}

// Service is the shared HTTP plumbing behind every generated client: it
// owns the endpoint, credentials, transport, default headers, and the
// interceptor chain, and it maps responses to results or *Error values.
//
// A Service is safe for concurrent use.
type Service struct {
	name    string
	version string

	mu           sync.RWMutex
	serviceURL   string
	client       *http.Client
	auth         Authenticator
	headers      http.Header
	logger       *slog.Logger
	interceptors []UnaryInterceptor
}

// NewService creates the base service for a named API ("speech_to_text")
// at a given API version ("v1").
func NewService(name, version string, opts *ServiceOptions) (*Service, error) {
	if opts == nil {
		return nil, &MissingArgumentError{Field: "options"}
	}
	s := &Service{
		name:         name,
		version:      version,
		client:       opts.HTTPClient,
		auth:         opts.Authenticator,
		headers:      http.Header{},
		logger:       opts.Logger,
		interceptors: append([]UnaryInterceptor(nil), opts.Interceptors...),
	}
	if err := s.SetServiceURL(opts.URL); err != nil {
		return nil, err
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: defaultTimeout}
	}
	if s.auth == nil {
		s.auth = NoAuthAuthenticator{}
	}
	if err := s.auth.Validate(); err != nil {
		return nil, fmt.Errorf("authenticator: %w", err)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	for k, v := range opts.Headers {
		s.headers.Set(k, v)
	}
	if opts.DisableSSLVerification {
		s.DisableSSLVerification()
	}
	return s, nil
}

// Name returns the service name used in analytics headers and logs.
func (s *Service) Name() string { return s.name }

// ServiceURL returns the configured endpoint.
func (s *Service) ServiceURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.serviceURL
}

// SetServiceURL changes the endpoint. Trailing slashes are dropped.
func (s *Service) SetServiceURL(u string) error {
	u = strings.TrimRight(strings.TrimSpace(u), "/")
	if u == "" {
		return &MissingArgumentError{Field: "service URL"}
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return fmt.Errorf("invalid service URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return Errorf(CodeInvalidArgument, "invalid service URL %q: scheme and host are required", u)
	}
	s.mu.Lock()
	s.serviceURL = u
	s.mu.Unlock()
	return nil
}

// SetDefaultHeaders replaces the headers sent with every request.
func (s *Service) SetDefaultHeaders(h http.Header) {
	s.mu.Lock()
	s.headers = h.Clone()
	if s.headers == nil {
		s.headers = http.Header{}
	}
	s.mu.Unlock()
}

// DefaultHeaders returns a copy of the headers sent with every request.
func (s *Service) DefaultHeaders() http.Header {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.headers.Clone()
}

// SetHTTPClient replaces the transport client.
func (s *Service) SetHTTPClient(c *http.Client) {
	if c == nil {
		return
	}
	s.mu.Lock()
	s.client = c
	s.mu.Unlock()
}

// HTTPClient returns the transport client.
func (s *Service) HTTPClient() *http.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

// Authenticator returns the configured authenticator.
func (s *Service) Authenticator() Authenticator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.auth
}

// Logger returns the service logger.
func (s *Service) Logger() *slog.Logger {
	return s.logger
}

// DisableSSLVerification turns off TLS certificate checks, for
// self-signed on-premises deployments.
func (s *Service) DisableSSLVerification() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tr *http.Transport
	if t, ok := s.client.Transport.(*http.Transport); ok && t != nil {
		tr = t.Clone()
	} else {
		tr = http.DefaultTransport.(*http.Transport).Clone()
	}
	if tr.TLSClientConfig == nil {
		tr.TLSClientConfig = &tls.Config{}
	}
	tr.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec // opt-in
	c := *s.client
	c.Transport = tr
	s.client = &c
}

// WithUnaryInterceptor adds an interceptor after those already configured.
// It returns the service for chaining.
func (s *Service) WithUnaryInterceptor(i UnaryInterceptor) *Service {
	s.mu.Lock()
	s.interceptors = append(s.interceptors, i)
	s.mu.Unlock()
	return s
}

// NewRequest starts a request against the service URL.
func (s *Service) NewRequest(method string) *RequestBuilder {
	return NewRequestBuilder(method).WithBaseURL(s.ServiceURL())
}

// Operation returns the Operation value for one of this service's methods.
func (s *Service) Operation(name string) Operation {
	return Operation{Service: s.name, Version: s.version, Name: name}
}

// Request builds and sends b, decoding a JSON response into result when
// result is non-nil and the body is not empty. Non-2xx responses are
// returned as *Error together with the DetailedResponse.
func (s *Service) Request(ctx context.Context, op Operation, b *RequestBuilder, result any) (*DetailedResponse, error) {
	req, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	for k, vs := range s.headers {
		if req.Header.Get(k) == "" {
			req.Header[k] = append([]string(nil), vs...)
		}
	}
	auth := s.auth
	s.mu.RUnlock()

	for k, v := range HeadersFromContext(ctx) {
		req.Header.Set(k, v)
	}
	req.Header.Set("User-Agent", meta.UserAgent())
	req.Header.Set(meta.AnalyticsHeader, meta.Analytics(op.Service, strings.ToUpper(op.Version), op.Name))
	if err := auth.Authenticate(req); err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	call := &Call{Operation: op, Request: req}
	return s.Intercept(ctx, call, func(ctx context.Context, call *Call) (*DetailedResponse, error) {
		call.Request = call.Request.WithContext(ctx)
		return s.send(call, result)
	})
}

// Intercept runs call through the service's interceptors and finally
// invoker. Request uses it for HTTP calls; transports that do not go
// through the HTTP client, such as the websocket handshake, call it
// directly so interceptors see every operation.
func (s *Service) Intercept(ctx context.Context, call *Call, invoker Invoker) (*DetailedResponse, error) {
	s.mu.RLock()
	chain := chainInterceptors(s.interceptors)
	s.mu.RUnlock()

	ctx = withOperation(ctx, call.Operation)
	call.Request = call.Request.WithContext(ctx)
	if chain != nil {
		return chain(ctx, call, invoker)
	}
	return invoker(ctx, call)
}

func (s *Service) send(call *Call, result any) (*DetailedResponse, error) {
	resp, err := s.HTTPClient().Do(call.Request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	detailed := &DetailedResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		RawResult:  body,
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return detailed, decodeError(resp.StatusCode, resp.Header, body)
	}

	if result == nil || len(body) == 0 || resp.StatusCode == http.StatusNoContent {
		return detailed, nil
	}
	if !isJSON(resp.Header.Get("Content-Type")) {
		detailed.Result = string(body)
		return detailed, nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		s.logger.Debug("failed to decode response",
			slog.String("operation", call.Operation.ID()),
			slog.String("content_type", resp.Header.Get("Content-Type")),
			slog.Any("error", err))
		return detailed, fmt.Errorf("decode %s response: %w", call.Operation.Name, err)
	}
	if err := ValidateModel(result, body); err != nil {
		return detailed, err
	}
	detailed.Result = result
	return detailed, nil
}

// Invoke is Request with a typed result. The result is nil when the service
// returned no body.
func Invoke[T any](ctx context.Context, s *Service, op Operation, b *RequestBuilder) (*T, *DetailedResponse, error) {
	result := new(T)
	resp, err := s.Request(ctx, op, b, result)
	if err != nil {
		return nil, resp, err
	}
	if resp == nil || resp.Result == nil {
		return nil, resp, nil
	}
	if _, ok := resp.Result.(*T); !ok {
		return nil, resp, errors.New("response was not JSON")
	}
	return result, resp, nil
}
