package watson

import (
	"net/http"
	"strings"
)

// Authenticator decorates outgoing requests with credentials.
// Token acquisition and refresh are left to the caller; a
// BearerTokenAuthenticator simply carries whatever token it is given.
type Authenticator interface {
	Authenticate(req *http.Request) error
	Validate() error
}

// BasicAuthenticator sends HTTP basic credentials.
type BasicAuthenticator struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// NewAPIKeyAuthenticator returns basic credentials using the "apikey"
// username that Watson services accept in place of a username/password pair.
func NewAPIKeyAuthenticator(apikey string) *BasicAuthenticator {
	return &BasicAuthenticator{Username: "apikey", Password: apikey}
}

func (a *BasicAuthenticator) Authenticate(req *http.Request) error {
	req.SetBasicAuth(a.Username, a.Password)
	return nil
}

func (a *BasicAuthenticator) Validate() error {
	if err := Validate(a); err != nil {
		return err
	}
	if hasBadChars(a.Username) || hasBadChars(a.Password) {
		return NewError(CodeInvalidArgument,
			"credentials must not start or end with curly brackets or quotation marks")
	}
	return nil
}

// BearerTokenAuthenticator sends a caller-managed bearer token.
type BearerTokenAuthenticator struct {
	BearerToken string `json:"bearer_token" validate:"required"`
}

func (a *BearerTokenAuthenticator) Authenticate(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+a.BearerToken)
	return nil
}

func (a *BearerTokenAuthenticator) Validate() error {
	return Validate(a)
}

// NoAuthAuthenticator leaves requests untouched. Useful behind an
// authenticating proxy and in tests.
type NoAuthAuthenticator struct{}

func (NoAuthAuthenticator) Authenticate(*http.Request) error { return nil }
func (NoAuthAuthenticator) Validate() error                  { return nil }

// hasBadChars catches credentials pasted with their JSON quoting intact.
func hasBadChars(s string) bool {
	return strings.HasPrefix(s, "{") || strings.HasSuffix(s, "}") ||
		strings.HasPrefix(s, `"`) || strings.HasSuffix(s, `"`)
}

// AuthHeader returns the headers an authenticator would add to a request.
// The websocket dialer uses it since it does not send an *http.Request.
func AuthHeader(a Authenticator) (http.Header, error) {
	if a == nil {
		return http.Header{}, nil
	}
	req, err := http.NewRequest(http.MethodGet, "http://localhost/", nil)
	if err != nil {
		return nil, err
	}
	if err := a.Authenticate(req); err != nil {
		return nil, err
	}
	return req.Header, nil
}
