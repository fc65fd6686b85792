// Package discovery is a client for the IBM Watson Discovery v1 API.
//
// Discovery ingests documents into collections, enriches them, and answers
// structured and natural language queries over them. Every request carries
// the API version date given to New.
//
//	disco, err := discovery.New("2019-04-30", &watson.ServiceOptions{
//	    Authenticator: watson.NewAPIKeyAuthenticator(os.Getenv("DISCOVERY_APIKEY")),
//	})
//	res, _, err := disco.Query(ctx, &discovery.QueryOptions{
//	    EnvironmentID: envID,
//	    CollectionID:  colID,
//	    QueryParams:   discovery.QueryParams{NaturalLanguageQuery: "refund policy"},
//	})
package discovery

import (
	"context"

	"github.com/broady/watson"
)

// DefaultServiceURL is the public Discovery endpoint.
const DefaultServiceURL = "https://gateway.watsonplatform.net/discovery/api"

const (
	serviceName    = "discovery"
	serviceVersion = "v1"
)

// Service is a Discovery v1 client.
type Service struct {
	*watson.Service
	version string
}

// New creates a Discovery client. version is the API version date in
// YYYY-MM-DD form and is required. An empty opts.URL selects
// DefaultServiceURL.
func New(version string, opts *watson.ServiceOptions) (*Service, error) {
	if version == "" {
		return nil, &watson.MissingArgumentError{Field: "version"}
	}
	if opts == nil {
		opts = &watson.ServiceOptions{}
	}
	o := *opts
	if o.URL == "" {
		o.URL = DefaultServiceURL
	}
	svc, err := watson.NewService(serviceName, serviceVersion, &o)
	if err != nil {
		return nil, err
	}
	return &Service{Service: svc, version: version}, nil
}

// Version returns the API version date sent with every request.
func (s *Service) Version() string { return s.version }

// newRequest starts a request with the version query parameter set.
func (s *Service) newRequest(method, path string, params map[string]string) *watson.RequestBuilder {
	return s.NewRequest(method).
		ResolvePath(path, params).
		AddQuery("version", s.version)
}

func invoke[T any](ctx context.Context, s *Service, name string, b *watson.RequestBuilder, headers map[string]string) (*T, *watson.DetailedResponse, error) {
	for k, v := range headers {
		b.AddHeader(k, v)
	}
	return watson.Invoke[T](ctx, s.Service, s.Operation(name), b)
}

func (s *Service) send(ctx context.Context, name string, b *watson.RequestBuilder, headers map[string]string) (*watson.DetailedResponse, error) {
	for k, v := range headers {
		b.AddHeader(k, v)
	}
	return s.Request(ctx, s.Operation(name), b, nil)
}
