package discovery

import (
	"context"
	"io"
	"net/http"

	"github.com/broady/watson"
)

// CreateEnvironmentOptions are the arguments of CreateEnvironment.
type CreateEnvironmentOptions struct {
	Name        string `url:"-" json:"name" validate:"required"`
	Description string `url:"-" json:"description,omitempty"`
	// Size is the environment size: LT, XS, S, MS, M, ML, L, XL, XXL, or
	// XXXL. Defaults to the smallest size available to the plan.
	Size    string            `url:"-" json:"size,omitempty"`
	Headers map[string]string `url:"-" json:"-"`
}

// CreateEnvironment creates an environment. Only one environment can be
// created per service instance.
func (s *Service) CreateEnvironment(ctx context.Context, opts *CreateEnvironmentOptions) (*Environment, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodPost, "/v1/environments", nil).
		SetJSONBody(opts)
	return invoke[Environment](ctx, s, "create_environment", b, opts.Headers)
}

// ListEnvironmentsOptions are the arguments of ListEnvironments.
type ListEnvironmentsOptions struct {
	// Name limits the list to environments with this exact name.
	Name    string            `url:"name,omitempty"`
	Headers map[string]string `url:"-"`
}

// ListEnvironments lists the environments of the instance, including the
// shared read-only Watson Discovery News environment.
func (s *Service) ListEnvironments(ctx context.Context, opts *ListEnvironmentsOptions) (*ListEnvironmentsResponse, *watson.DetailedResponse, error) {
	if opts == nil {
		opts = &ListEnvironmentsOptions{}
	}
	b := s.newRequest(http.MethodGet, "/v1/environments", nil).
		AddQueryStruct(opts)
	return invoke[ListEnvironmentsResponse](ctx, s, "list_environments", b, opts.Headers)
}

// EnvironmentOptions identify an environment.
type EnvironmentOptions struct {
	EnvironmentID string            `url:"-" path:"environment_id" validate:"required"`
	Headers       map[string]string `url:"-"`
}

func envPath(environmentID string) map[string]string {
	return map[string]string{"environment_id": environmentID}
}

// GetEnvironment returns an environment.
func (s *Service) GetEnvironment(ctx context.Context, opts *EnvironmentOptions) (*Environment, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodGet, "/v1/environments/{environment_id}", envPath(opts.EnvironmentID))
	return invoke[Environment](ctx, s, "get_environment", b, opts.Headers)
}

// UpdateEnvironmentOptions are the arguments of UpdateEnvironment.
type UpdateEnvironmentOptions struct {
	EnvironmentID string `url:"-" path:"environment_id" json:"-" validate:"required"`
	Name          string `url:"-" json:"name,omitempty"`
	Description   string `url:"-" json:"description,omitempty"`
	// Size can only be increased.
	Size    string            `url:"-" json:"size,omitempty"`
	Headers map[string]string `url:"-" json:"-"`
}

// UpdateEnvironment renames, describes, or resizes an environment.
func (s *Service) UpdateEnvironment(ctx context.Context, opts *UpdateEnvironmentOptions) (*Environment, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodPut, "/v1/environments/{environment_id}", envPath(opts.EnvironmentID)).
		SetJSONBody(opts)
	return invoke[Environment](ctx, s, "update_environment", b, opts.Headers)
}

// DeleteEnvironment deletes an environment and everything in it.
func (s *Service) DeleteEnvironment(ctx context.Context, opts *EnvironmentOptions) (*DeleteEnvironmentResponse, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodDelete, "/v1/environments/{environment_id}", envPath(opts.EnvironmentID))
	return invoke[DeleteEnvironmentResponse](ctx, s, "delete_environment", b, opts.Headers)
}

// ListFieldsOptions are the arguments of ListFields.
type ListFieldsOptions struct {
	EnvironmentID string            `url:"-" path:"environment_id" validate:"required"`
	CollectionIDs watson.CSV        `url:"collection_ids" validate:"required"`
	Headers       map[string]string `url:"-"`
}

// ListFields returns the union of the indexed fields of the given
// collections, with their types.
func (s *Service) ListFields(ctx context.Context, opts *ListFieldsOptions) (*ListCollectionFieldsResponse, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodGet, "/v1/environments/{environment_id}/fields", envPath(opts.EnvironmentID)).
		AddQueryStruct(opts)
	return invoke[ListCollectionFieldsResponse](ctx, s, "list_fields", b, opts.Headers)
}

// CreateConfigurationOptions are the arguments of CreateConfiguration and
// UpdateConfiguration. ConfigurationID is used only by UpdateConfiguration.
type CreateConfigurationOptions struct {
	EnvironmentID   string                   `url:"-" path:"environment_id" json:"-" validate:"required"`
	ConfigurationID string                   `url:"-" path:"configuration_id" json:"-"`
	Name            string                   `url:"-" json:"name" validate:"required"`
	Description     string                   `url:"-" json:"description,omitempty"`
	Conversions     *Conversions             `url:"-" json:"conversions,omitempty"`
	Enrichments     []Enrichment             `url:"-" json:"enrichments,omitempty"`
	Normalizations  []NormalizationOperation `url:"-" json:"normalizations,omitempty"`
	Source          *Source                  `url:"-" json:"source,omitempty"`
	Headers         map[string]string        `url:"-" json:"-"`
}

// CreateConfiguration creates a configuration. Names must be unique
// within an environment.
func (s *Service) CreateConfiguration(ctx context.Context, opts *CreateConfigurationOptions) (*Configuration, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodPost, "/v1/environments/{environment_id}/configurations", envPath(opts.EnvironmentID)).
		SetJSONBody(opts)
	return invoke[Configuration](ctx, s, "create_configuration", b, opts.Headers)
}

// ListConfigurationsOptions are the arguments of ListConfigurations.
type ListConfigurationsOptions struct {
	EnvironmentID string            `url:"-" path:"environment_id" validate:"required"`
	Name          string            `url:"name,omitempty"`
	Headers       map[string]string `url:"-"`
}

// ListConfigurations lists the configurations of an environment.
func (s *Service) ListConfigurations(ctx context.Context, opts *ListConfigurationsOptions) (*ListConfigurationsResponse, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodGet, "/v1/environments/{environment_id}/configurations", envPath(opts.EnvironmentID)).
		AddQueryStruct(opts)
	return invoke[ListConfigurationsResponse](ctx, s, "list_configurations", b, opts.Headers)
}

// ConfigurationOptions identify a configuration.
type ConfigurationOptions struct {
	EnvironmentID   string            `url:"-" path:"environment_id" validate:"required"`
	ConfigurationID string            `url:"-" path:"configuration_id" validate:"required"`
	Headers         map[string]string `url:"-"`
}

func (o *ConfigurationOptions) path() map[string]string {
	return map[string]string{"environment_id": o.EnvironmentID, "configuration_id": o.ConfigurationID}
}

// GetConfiguration returns a configuration.
func (s *Service) GetConfiguration(ctx context.Context, opts *ConfigurationOptions) (*Configuration, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodGet, "/v1/environments/{environment_id}/configurations/{configuration_id}", opts.path())
	return invoke[Configuration](ctx, s, "get_configuration", b, opts.Headers)
}

// UpdateConfiguration replaces a configuration. Documents already
// ingested are not reprocessed.
func (s *Service) UpdateConfiguration(ctx context.Context, opts *CreateConfigurationOptions) (*Configuration, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	if opts.ConfigurationID == "" {
		return nil, nil, &watson.MissingArgumentError{Field: "configuration_id"}
	}
	path := map[string]string{"environment_id": opts.EnvironmentID, "configuration_id": opts.ConfigurationID}
	b := s.newRequest(http.MethodPut, "/v1/environments/{environment_id}/configurations/{configuration_id}", path).
		SetJSONBody(opts)
	return invoke[Configuration](ctx, s, "update_configuration", b, opts.Headers)
}

// DeleteConfiguration deletes a configuration. Collections using it keep
// their documents but can no longer ingest new ones.
func (s *Service) DeleteConfiguration(ctx context.Context, opts *ConfigurationOptions) (*DeleteConfigurationResponse, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodDelete, "/v1/environments/{environment_id}/configurations/{configuration_id}", opts.path())
	return invoke[DeleteConfigurationResponse](ctx, s, "delete_configuration", b, opts.Headers)
}

// Test steps at which TestConfigurationInEnvironment can stop.
const (
	StepHTMLInput                = "html_input"
	StepHTMLOutput               = "html_output"
	StepJSONOutput               = "json_output"
	StepJSONNormalizationsOutput = "json_normalizations_output"
	StepEnrichmentsOutput        = "enrichments_output"
	StepNormalizationsOutput     = "normalizations_output"
)

// TestConfigurationOptions are the arguments of TestConfigurationInEnvironment.
// Exactly one of Configuration and ConfigurationID selects the
// configuration; File or Metadata supplies the sample document.
type TestConfigurationOptions struct {
	EnvironmentID string `url:"-" path:"environment_id" validate:"required"`

	// Configuration is an inline configuration to test.
	Configuration *Configuration `url:"-" form:"configuration"`

	File            io.Reader `url:"-" form:"file"`
	Filename        string    `url:"-"`
	FileContentType string    `url:"-"`
	// Metadata is a JSON object of metadata for the sample document.
	Metadata string `url:"-" form:"metadata"`

	// Step stops processing after the named step and returns its snapshot.
	Step            string            `url:"step,omitempty"`
	ConfigurationID string            `url:"configuration_id,omitempty"`
	Headers         map[string]string `url:"-"`
}

// TestConfigurationInEnvironment runs a sample document through a
// configuration and returns the snapshots of each processing step
// without indexing the document.
func (s *Service) TestConfigurationInEnvironment(ctx context.Context, opts *TestConfigurationOptions) (*TestDocument, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodPost, "/v1/environments/{environment_id}/preview", envPath(opts.EnvironmentID)).
		AddQueryStruct(opts)
	if opts.Configuration != nil {
		b.AddFormJSON("configuration", opts.Configuration)
	}
	b.AddFormFile("file", opts.Filename, opts.FileContentType, opts.File).
		AddFormField("metadata", opts.Metadata)
	return invoke[TestDocument](ctx, s, "test_configuration_in_environment", b, opts.Headers)
}
