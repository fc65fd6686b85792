package discovery

import (
	"context"
	"net/http"

	"github.com/broady/watson"
)

// ListCredentials lists the source credentials of an environment.
// Secrets are never returned.
func (s *Service) ListCredentials(ctx context.Context, opts *EnvironmentOptions) (*CredentialsList, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodGet, "/v1/environments/{environment_id}/credentials", envPath(opts.EnvironmentID))
	return invoke[CredentialsList](ctx, s, "list_credentials", b, opts.Headers)
}

// CredentialsOptions are the arguments of CreateCredentials and
// UpdateCredentials. CredentialID is used only by UpdateCredentials.
type CredentialsOptions struct {
	EnvironmentID     string             `url:"-" path:"environment_id" json:"-" validate:"required"`
	CredentialID      string             `url:"-" path:"credential_id" json:"-"`
	SourceType        string             `url:"-" json:"source_type,omitempty"`
	CredentialDetails *CredentialDetails `url:"-" json:"credential_details,omitempty"`
	// Status is "connected" or "invalid".
	Status  string            `url:"-" json:"status,omitempty"`
	Headers map[string]string `url:"-" json:"-"`
}

// CreateCredentials stores credentials for a source.
func (s *Service) CreateCredentials(ctx context.Context, opts *CredentialsOptions) (*Credentials, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodPost, "/v1/environments/{environment_id}/credentials", envPath(opts.EnvironmentID)).
		SetJSONBody(opts)
	return invoke[Credentials](ctx, s, "create_credentials", b, opts.Headers)
}

// CredentialOptions identify stored credentials.
type CredentialOptions struct {
	EnvironmentID string            `url:"-" path:"environment_id" validate:"required"`
	CredentialID  string            `url:"-" path:"credential_id" validate:"required"`
	Headers       map[string]string `url:"-"`
}

const credentialTemplate = "/v1/environments/{environment_id}/credentials/{credential_id}"

func credentialPath(environmentID, credentialID string) map[string]string {
	return map[string]string{"environment_id": environmentID, "credential_id": credentialID}
}

// GetCredentials returns stored credentials without their secrets.
func (s *Service) GetCredentials(ctx context.Context, opts *CredentialOptions) (*Credentials, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodGet, credentialTemplate, credentialPath(opts.EnvironmentID, opts.CredentialID))
	return invoke[Credentials](ctx, s, "get_credentials", b, opts.Headers)
}

// UpdateCredentials replaces stored credentials.
func (s *Service) UpdateCredentials(ctx context.Context, opts *CredentialsOptions) (*Credentials, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	if opts.CredentialID == "" {
		return nil, nil, &watson.MissingArgumentError{Field: "credential_id"}
	}
	b := s.newRequest(http.MethodPut, credentialTemplate, credentialPath(opts.EnvironmentID, opts.CredentialID)).
		SetJSONBody(opts)
	return invoke[Credentials](ctx, s, "update_credentials", b, opts.Headers)
}

// DeleteCredentials deletes stored credentials.
func (s *Service) DeleteCredentials(ctx context.Context, opts *CredentialOptions) (*DeleteCredentials, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodDelete, credentialTemplate, credentialPath(opts.EnvironmentID, opts.CredentialID))
	return invoke[DeleteCredentials](ctx, s, "delete_credentials", b, opts.Headers)
}

// ListGateways lists the gateways of an environment.
func (s *Service) ListGateways(ctx context.Context, opts *EnvironmentOptions) (*GatewayList, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodGet, "/v1/environments/{environment_id}/gateways", envPath(opts.EnvironmentID))
	return invoke[GatewayList](ctx, s, "list_gateways", b, opts.Headers)
}

// CreateGatewayOptions are the arguments of CreateGateway.
type CreateGatewayOptions struct {
	EnvironmentID string            `url:"-" path:"environment_id" json:"-" validate:"required"`
	Name          string            `url:"-" json:"name,omitempty"`
	Headers       map[string]string `url:"-" json:"-"`
}

// CreateGateway creates a gateway and returns the token used to connect
// the gateway client.
func (s *Service) CreateGateway(ctx context.Context, opts *CreateGatewayOptions) (*Gateway, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodPost, "/v1/environments/{environment_id}/gateways", envPath(opts.EnvironmentID)).
		SetJSONBody(opts)
	return invoke[Gateway](ctx, s, "create_gateway", b, opts.Headers)
}

// GatewayOptions identify a gateway.
type GatewayOptions struct {
	EnvironmentID string            `url:"-" path:"environment_id" validate:"required"`
	GatewayID     string            `url:"-" path:"gateway_id" validate:"required"`
	Headers       map[string]string `url:"-"`
}

func (o *GatewayOptions) path() map[string]string {
	return map[string]string{"environment_id": o.EnvironmentID, "gateway_id": o.GatewayID}
}

// GetGateway returns a gateway.
func (s *Service) GetGateway(ctx context.Context, opts *GatewayOptions) (*Gateway, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodGet, "/v1/environments/{environment_id}/gateways/{gateway_id}", opts.path())
	return invoke[Gateway](ctx, s, "get_gateway", b, opts.Headers)
}

// DeleteGateway deletes a gateway.
func (s *Service) DeleteGateway(ctx context.Context, opts *GatewayOptions) (*GatewayDelete, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodDelete, "/v1/environments/{environment_id}/gateways/{gateway_id}", opts.path())
	return invoke[GatewayDelete](ctx, s, "delete_gateway", b, opts.Headers)
}
