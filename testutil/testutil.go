// Package testutil provides a fake Watson endpoint for client tests.
// The server records every request and answers from canned responses,
// so tests can assert the exact method, path, query, headers, and body
// a client method produced.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// RecordedRequest is a request received by the Server.
type RecordedRequest struct {
	Method string
	Path   string // escaped, as sent on the wire
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Response is a canned reply for one route.
type Response struct {
	Status  int
	Body    string
	Headers map[string]string
}

// Server is an httptest.Server with per-route canned responses.
type Server struct {
	*httptest.Server

	t        testing.TB
	mu       sync.Mutex
	routes   map[string]Response
	requests []*RecordedRequest
}

// NewServer starts a Server that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		t:      t,
		routes: make(map[string]Response),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Handle registers a raw response for "METHOD path". The path is matched
// in its escaped form.
func (s *Server) Handle(method, path string, status int, body string) *Server {
	return s.HandleResponse(method, path, Response{Status: status, Body: body})
}

// HandleJSON registers v, marshalled, as the response for "METHOD path".
func (s *Server) HandleJSON(method, path string, status int, v any) *Server {
	data, err := json.Marshal(v)
	if err != nil {
		s.t.Fatalf("marshal canned response: %v", err)
	}
	return s.Handle(method, path, status, string(data))
}

// HandleResponse registers a full Response for "METHOD path".
func (s *Server) HandleResponse(method, path string, resp Response) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = resp
	return s
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	rec := &RecordedRequest{
		Method: r.Method,
		Path:   r.URL.EscapedPath(),
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	}

	s.mu.Lock()
	s.requests = append(s.requests, rec)
	resp, ok := s.routes[r.Method+" "+rec.Path]
	s.mu.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintf(w, `{"error":"no route for %s %s","code":404}`, r.Method, rec.Path)
		return
	}

	if resp.Body != "" {
		w.Header().Set("Content-Type", "application/json")
	}
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	io.WriteString(w, resp.Body)
}

// Requests returns all recorded requests in arrival order.
func (s *Server) Requests() []*RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*RecordedRequest(nil), s.requests...)
}

// LastRequest returns the most recent request, failing the test if none arrived.
func (s *Server) LastRequest() *RecordedRequest {
	s.t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		s.t.Fatalf("expected a request, server received none")
	}
	return s.requests[len(s.requests)-1]
}

// AssertRequest checks the method and escaped path of r.
func AssertRequest(t testing.TB, r *RecordedRequest, method, path string) {
	t.Helper()
	if r.Method != method {
		t.Errorf("expected method %s, got %s", method, r.Method)
	}
	if r.Path != path {
		t.Errorf("expected path %s, got %s", path, r.Path)
	}
}

// AssertQuery checks that the single value of query parameter key is expected.
func AssertQuery(t testing.TB, r *RecordedRequest, key, expected string) {
	t.Helper()
	vs, ok := r.Query[key]
	if !ok {
		t.Errorf("expected query %s=%s, parameter missing (query: %s)", key, expected, r.Query.Encode())
		return
	}
	if len(vs) != 1 || vs[0] != expected {
		t.Errorf("expected query %s=%s, got %v", key, expected, vs)
	}
}

// AssertNoQuery checks that query parameter key is absent.
func AssertNoQuery(t testing.TB, r *RecordedRequest, key string) {
	t.Helper()
	if vs, ok := r.Query[key]; ok {
		t.Errorf("expected no query parameter %s, got %v", key, vs)
	}
}

// AssertHeader checks that a request header has the expected value.
func AssertHeader(t testing.TB, r *RecordedRequest, key, expected string) {
	t.Helper()
	if actual := r.Header.Get(key); actual != expected {
		t.Errorf("expected header %s=%s, got %s", key, expected, actual)
	}
}

// AssertJSONBody compares the request body with expected as JSON, ignoring
// formatting and key order.
func AssertJSONBody(t testing.TB, r *RecordedRequest, expected any) {
	t.Helper()

	var expectedJSON []byte
	switch e := expected.(type) {
	case string:
		expectedJSON = []byte(e)
	case []byte:
		expectedJSON = e
	default:
		expectedJSON, _ = json.Marshal(expected)
	}

	var expectedData, actualData any
	if err := json.Unmarshal(expectedJSON, &expectedData); err != nil {
		t.Fatalf("expected body is not JSON: %v", err)
	}
	if err := json.Unmarshal(r.Body, &actualData); err != nil {
		t.Fatalf("request body is not JSON: %v\nBody: %s", err, r.Body)
	}

	expectedStr, _ := json.MarshalIndent(expectedData, "", "  ")
	actualStr, _ := json.MarshalIndent(actualData, "", "  ")

	if string(expectedStr) != string(actualStr) {
		t.Errorf("body mismatch:\nExpected:\n%s\nActual:\n%s", expectedStr, actualStr)
	}
}

// DecodeJSON decodes the request body into v.
func DecodeJSON(t testing.TB, r *RecordedRequest, v any) {
	t.Helper()
	if err := json.NewDecoder(bytes.NewReader(r.Body)).Decode(v); err != nil {
		t.Fatalf("failed to decode request body: %v\nBody: %s", err, r.Body)
	}
}

// Part is one part of a multipart/form-data request body.
type Part struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Multipart parses a multipart/form-data body keyed by part name.
func (r *RecordedRequest) Multipart(t testing.TB) map[string]Part {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		t.Fatalf("expected multipart request, got Content-Type %q", r.Header.Get("Content-Type"))
	}
	mr := multipart.NewReader(bytes.NewReader(r.Body), params["boundary"])
	parts := make(map[string]Part)
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read multipart body: %v", err)
		}
		data, err := io.ReadAll(p)
		if err != nil {
			t.Fatalf("read part %s: %v", p.FormName(), err)
		}
		parts[p.FormName()] = Part{
			Filename:    p.FileName(),
			ContentType: p.Header.Get("Content-Type"),
			Body:        data,
		}
	}
	return parts
}
