package watson

import (
	"errors"
	"net/http/httptest"
	"testing"
)

func TestBasicAuthenticator(t *testing.T) {
	a := NewAPIKeyAuthenticator("key")
	if err := a.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := httptest.NewRequest("GET", "/", nil)
	if err := a.Authenticate(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	user, pass, ok := req.BasicAuth()
	if !ok || user != "apikey" || pass != "key" {
		t.Errorf("expected apikey:key, got %s:%s", user, pass)
	}
}

func TestBasicAuthenticator_Validate(t *testing.T) {
	tests := []struct {
		name string
		auth *BasicAuthenticator
		ok   bool
	}{
		{"valid", &BasicAuthenticator{Username: "u", Password: "p"}, true},
		{"missing password", &BasicAuthenticator{Username: "u"}, false},
		{"braced username", &BasicAuthenticator{Username: "{u}", Password: "p"}, false},
		{"quoted password", &BasicAuthenticator{Username: "u", Password: `"p"`}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.auth.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("expected ok=%v, got %v", tt.ok, err)
			}
		})
	}

	var missing *MissingArgumentError
	if err := (&BasicAuthenticator{Username: "u"}).Validate(); !errors.As(err, &missing) || missing.Field != "password" {
		t.Errorf("expected missing password, got %v", err)
	}
}

func TestBearerTokenAuthenticator(t *testing.T) {
	a := &BearerTokenAuthenticator{BearerToken: "tok"}
	h, err := AuthHeader(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Get("Authorization") != "Bearer tok" {
		t.Errorf("expected bearer header, got %q", h.Get("Authorization"))
	}
}

func TestNoAuthAuthenticator(t *testing.T) {
	h, err := AuthHeader(NoAuthAuthenticator{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Get("Authorization") != "" {
		t.Errorf("expected no Authorization header, got %q", h.Get("Authorization"))
	}
	h, err = AuthHeader(nil)
	if err != nil || len(h) != 0 {
		t.Errorf("expected empty header for nil authenticator, got %v %v", h, err)
	}
}
