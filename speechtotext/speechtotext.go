// Package speechtotext is a client for the IBM Watson Speech to Text v1 API.
//
// The service converts audio to text. Audio can be sent in a single
// synchronous request (Recognize), submitted as an asynchronous job
// (CreateJob), or streamed over a websocket (RecognizeUsingWebsocket).
// Language and acoustic customizations adapt the base models to a domain
// vocabulary or acoustic environment.
//
//	stt, err := speechtotext.New(&watson.ServiceOptions{
//	    Authenticator: watson.NewAPIKeyAuthenticator(os.Getenv("STT_APIKEY")),
//	})
//	results, _, err := stt.Recognize(ctx, &speechtotext.RecognizeOptions{
//	    Audio:       f,
//	    ContentType: "audio/flac",
//	})
package speechtotext

import (
	"context"

	"github.com/broady/watson"
)

// DefaultServiceURL is the public Speech to Text endpoint.
const DefaultServiceURL = "https://stream.watsonplatform.net/speech-to-text/api"

const (
	serviceName    = "speech_to_text"
	serviceVersion = "v1"
)

// Service is a Speech to Text v1 client. It embeds the shared
// *watson.Service, so endpoint, credential, and transport settings can be
// changed after construction.
type Service struct {
	*watson.Service
}

// New creates a Speech to Text client. An empty opts.URL selects DefaultServiceURL.
func New(opts *watson.ServiceOptions) (*Service, error) {
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
	return &Service{Service: svc}, nil
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
