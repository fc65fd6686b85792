package watson

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"regexp"
	"strings"
)

var (
	jsonMediaType = regexp.MustCompile(`(?i)^application/(json|[a-z0-9.+-]*\+json)\s*(;.*)?$`)
	pathParam     = regexp.MustCompile(`\{([a-zA-Z0-9_.]+)\}`)
)

// RequestBuilder assembles an *http.Request from a path template, query
// parameters, headers, and one of: a JSON body, a raw body, or multipart form parts.
// Errors are deferred until Build.
type RequestBuilder struct {
	method  string
	baseURL string
	path    string
	query   url.Values
	header  http.Header
	body    io.Reader
	parts   []formPart
	err     error
}

type formPart struct {
	name        string
	filename    string
	contentType string
	content     io.Reader
}

// NewRequestBuilder creates a builder for the given HTTP method.
func NewRequestBuilder(method string) *RequestBuilder {
	return &RequestBuilder{
		method: method,
		query:  url.Values{},
		header: http.Header{},
	}
}

// WithBaseURL sets the service URL the path is appended to.
func (b *RequestBuilder) WithBaseURL(base string) *RequestBuilder {
	b.baseURL = strings.TrimRight(base, "/")
	return b
}

// ResolvePath expands a template such as "/v1/customizations/{customization_id}"
// with path-escaped values. A placeholder without a value is a missing argument.
func (b *RequestBuilder) ResolvePath(template string, params map[string]string) *RequestBuilder {
	b.path = pathParam.ReplaceAllStringFunc(template, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := params[name]
		if !ok || v == "" {
			b.setErr(&MissingArgumentError{Field: name})
			return m
		}
		return url.PathEscape(v)
	})
	return b
}

// AddQuery sets a query parameter. Empty values are skipped.
func (b *RequestBuilder) AddQuery(name, value string) *RequestBuilder {
	if value != "" {
		b.query.Set(name, value)
	}
	return b
}

// AddQueryStruct encodes the `url`-tagged fields of opts as query parameters.
// CSV fields are comma-joined; nil pointers with omitempty are skipped.
func (b *RequestBuilder) AddQueryStruct(opts any) *RequestBuilder {
	if opts == nil {
		return b
	}
	values := url.Values{}
	if err := schemaEncoder.Encode(opts, values); err != nil {
		b.setErr(fmt.Errorf("encode query: %w", err))
		return b
	}
	for k, vs := range values {
		for _, v := range vs {
			b.query.Add(k, v)
		}
	}
	return b
}

// AddHeader sets a request header. Empty values are skipped.
func (b *RequestBuilder) AddHeader(name, value string) *RequestBuilder {
	if value != "" {
		b.header.Set(name, value)
	}
	return b
}

// SetJSONBody marshals v as the request body.
func (b *RequestBuilder) SetJSONBody(v any) *RequestBuilder {
	data, err := json.Marshal(v)
	if err != nil {
		b.setErr(fmt.Errorf("encode body: %w", err))
		return b
	}
	b.body = bytes.NewReader(data)
	b.header.Set("Content-Type", "application/json")
	return b
}

// SetBody uses r as the raw request body.
func (b *RequestBuilder) SetBody(r io.Reader, contentType string) *RequestBuilder {
	b.body = r
	if contentType != "" {
		b.header.Set("Content-Type", contentType)
	}
	return b
}

// AddFormFile adds a file part to a multipart/form-data body.
// A nil reader is ignored so optional parts can be added unconditionally.
func (b *RequestBuilder) AddFormFile(name, filename, contentType string, r io.Reader) *RequestBuilder {
	if r == nil {
		return b
	}
	if filename == "" {
		filename = name
	}
	b.parts = append(b.parts, formPart{name: name, filename: filename, contentType: contentType, content: r})
	return b
}

// AddFormField adds a plain text part to a multipart/form-data body.
func (b *RequestBuilder) AddFormField(name, value string) *RequestBuilder {
	if value == "" {
		return b
	}
	b.parts = append(b.parts, formPart{name: name, content: strings.NewReader(value)})
	return b
}

// AddFormJSON adds a part holding v marshalled as application/json.
func (b *RequestBuilder) AddFormJSON(name string, v any) *RequestBuilder {
	data, err := json.Marshal(v)
	if err != nil {
		b.setErr(fmt.Errorf("encode form part %s: %w", name, err))
		return b
	}
	b.parts = append(b.parts, formPart{name: name, contentType: "application/json", content: bytes.NewReader(data)})
	return b
}

// URL returns the fully resolved URL, including query.
func (b *RequestBuilder) URL() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	if b.baseURL == "" {
		return "", &MissingArgumentError{Field: "service URL"}
	}
	u := b.baseURL + b.path
	if len(b.query) > 0 {
		u += "?" + b.query.Encode()
	}
	return u, nil
}

// Build creates the HTTP request.
func (b *RequestBuilder) Build(ctx context.Context) (*http.Request, error) {
	u, err := b.URL()
	if err != nil {
		return nil, err
	}

	body := b.body
	if len(b.parts) > 0 {
		if b.body != nil {
			return nil, errors.New("request has both a body and form parts")
		}
		buf, contentType, err := b.encodeForm()
		if err != nil {
			return nil, err
		}
		body = buf
		b.header.Set("Content-Type", contentType)
	}

	req, err := http.NewRequestWithContext(ctx, b.method, u, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range b.header {
		req.Header[k] = append([]string(nil), vs...)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	return req, nil
}

func (b *RequestBuilder) encodeForm() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for _, p := range b.parts {
		h := textproto.MIMEHeader{}
		disposition := fmt.Sprintf(`form-data; name="%s"`, escapeQuotes(p.name))
		if p.filename != "" {
			disposition += fmt.Sprintf(`; filename="%s"`, escapeQuotes(p.filename))
		}
		h.Set("Content-Disposition", disposition)
		if p.contentType != "" {
			h.Set("Content-Type", p.contentType)
		} else if p.filename != "" {
			h.Set("Content-Type", "application/octet-stream")
		}
		pw, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(pw, p.content); err != nil {
			return nil, "", fmt.Errorf("write form part %s: %w", p.name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func (b *RequestBuilder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
