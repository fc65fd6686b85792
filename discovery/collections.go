package discovery

import (
	"context"
	"io"
	"net/http"

	"github.com/broady/watson"
)

// CreateCollectionOptions are the arguments of CreateCollection.
type CreateCollectionOptions struct {
	EnvironmentID   string `url:"-" path:"environment_id" json:"-" validate:"required"`
	Name            string `url:"-" json:"name" validate:"required"`
	Description     string `url:"-" json:"description,omitempty"`
	ConfigurationID string `url:"-" json:"configuration_id,omitempty"`
	// Language of the documents, e.g. "en". Defaults to English.
	Language string            `url:"-" json:"language,omitempty"`
	Headers  map[string]string `url:"-" json:"-"`
}

// CreateCollection creates a collection.
func (s *Service) CreateCollection(ctx context.Context, opts *CreateCollectionOptions) (*Collection, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodPost, "/v1/environments/{environment_id}/collections", envPath(opts.EnvironmentID)).
		SetJSONBody(opts)
	return invoke[Collection](ctx, s, "create_collection", b, opts.Headers)
}

// ListCollectionsOptions are the arguments of ListCollections.
type ListCollectionsOptions struct {
	EnvironmentID string            `url:"-" path:"environment_id" validate:"required"`
	Name          string            `url:"name,omitempty"`
	Headers       map[string]string `url:"-"`
}

// ListCollections lists the collections of an environment.
func (s *Service) ListCollections(ctx context.Context, opts *ListCollectionsOptions) (*ListCollectionsResponse, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodGet, "/v1/environments/{environment_id}/collections", envPath(opts.EnvironmentID)).
		AddQueryStruct(opts)
	return invoke[ListCollectionsResponse](ctx, s, "list_collections", b, opts.Headers)
}

// CollectionOptions identify a collection. They are the arguments of every
// operation that needs nothing but the collection.
type CollectionOptions struct {
	EnvironmentID string            `url:"-" path:"environment_id" validate:"required"`
	CollectionID  string            `url:"-" path:"collection_id" validate:"required"`
	Headers       map[string]string `url:"-"`
}

func (o *CollectionOptions) path() map[string]string {
	return collectionPath(o.EnvironmentID, o.CollectionID)
}

func collectionPath(environmentID, collectionID string) map[string]string {
	return map[string]string{"environment_id": environmentID, "collection_id": collectionID}
}

const collectionTemplate = "/v1/environments/{environment_id}/collections/{collection_id}"

// GetCollection returns a collection with its document counts and status.
func (s *Service) GetCollection(ctx context.Context, opts *CollectionOptions) (*Collection, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodGet, collectionTemplate, opts.path())
	return invoke[Collection](ctx, s, "get_collection", b, opts.Headers)
}

// UpdateCollectionOptions are the arguments of UpdateCollection.
type UpdateCollectionOptions struct {
	EnvironmentID   string            `url:"-" path:"environment_id" json:"-" validate:"required"`
	CollectionID    string            `url:"-" path:"collection_id" json:"-" validate:"required"`
	Name            string            `url:"-" json:"name" validate:"required"`
	Description     string            `url:"-" json:"description,omitempty"`
	ConfigurationID string            `url:"-" json:"configuration_id,omitempty"`
	Headers         map[string]string `url:"-" json:"-"`
}

// UpdateCollection updates a collection's name, description, or
// configuration.
func (s *Service) UpdateCollection(ctx context.Context, opts *UpdateCollectionOptions) (*Collection, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodPut, collectionTemplate, collectionPath(opts.EnvironmentID, opts.CollectionID)).
		SetJSONBody(opts)
	return invoke[Collection](ctx, s, "update_collection", b, opts.Headers)
}

// DeleteCollection deletes a collection and its documents.
func (s *Service) DeleteCollection(ctx context.Context, opts *CollectionOptions) (*DeleteCollectionResponse, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodDelete, collectionTemplate, opts.path())
	return invoke[DeleteCollectionResponse](ctx, s, "delete_collection", b, opts.Headers)
}

// ListCollectionFields returns the indexed fields of a collection.
func (s *Service) ListCollectionFields(ctx context.Context, opts *CollectionOptions) (*ListCollectionFieldsResponse, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodGet, collectionTemplate+"/fields", opts.path())
	return invoke[ListCollectionFieldsResponse](ctx, s, "list_collection_fields", b, opts.Headers)
}

// CreateExpansionsOptions are the arguments of CreateExpansions.
type CreateExpansionsOptions struct {
	EnvironmentID string            `url:"-" path:"environment_id" json:"-" validate:"required"`
	CollectionID  string            `url:"-" path:"collection_id" json:"-" validate:"required"`
	Expansions    []Expansion       `url:"-" json:"expansions" validate:"required,dive"`
	Headers       map[string]string `url:"-" json:"-"`
}

// CreateExpansions replaces the query expansion list of a collection.
func (s *Service) CreateExpansions(ctx context.Context, opts *CreateExpansionsOptions) (*Expansions, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodPost, collectionTemplate+"/expansions", collectionPath(opts.EnvironmentID, opts.CollectionID)).
		SetJSONBody(opts)
	return invoke[Expansions](ctx, s, "create_expansions", b, opts.Headers)
}

// ListExpansions returns the query expansion list of a collection.
func (s *Service) ListExpansions(ctx context.Context, opts *CollectionOptions) (*Expansions, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodGet, collectionTemplate+"/expansions", opts.path())
	return invoke[Expansions](ctx, s, "list_expansions", b, opts.Headers)
}

// DeleteExpansions removes the query expansion list of a collection.
func (s *Service) DeleteExpansions(ctx context.Context, opts *CollectionOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	b := s.newRequest(http.MethodDelete, collectionTemplate+"/expansions", opts.path())
	return s.send(ctx, "delete_expansions", b, opts.Headers)
}

// CreateTokenizationDictionaryOptions are the arguments of
// CreateTokenizationDictionary.
type CreateTokenizationDictionaryOptions struct {
	EnvironmentID     string            `url:"-" path:"environment_id" json:"-" validate:"required"`
	CollectionID      string            `url:"-" path:"collection_id" json:"-" validate:"required"`
	TokenizationRules []TokenDictRule   `url:"-" json:"tokenization_rules,omitempty"`
	Headers           map[string]string `url:"-" json:"-"`
}

const tokenizationTemplate = collectionTemplate + "/word_lists/tokenization_dictionary"

// CreateTokenizationDictionary uploads a custom tokenization dictionary.
// Only Japanese collections support it.
func (s *Service) CreateTokenizationDictionary(ctx context.Context, opts *CreateTokenizationDictionaryOptions) (*TokenDictStatusResponse, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodPost, tokenizationTemplate, collectionPath(opts.EnvironmentID, opts.CollectionID)).
		SetJSONBody(opts)
	return invoke[TokenDictStatusResponse](ctx, s, "create_tokenization_dictionary", b, opts.Headers)
}

// GetTokenizationDictionaryStatus reports whether the tokenization
// dictionary is active or pending.
func (s *Service) GetTokenizationDictionaryStatus(ctx context.Context, opts *CollectionOptions) (*TokenDictStatusResponse, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodGet, tokenizationTemplate, opts.path())
	return invoke[TokenDictStatusResponse](ctx, s, "get_tokenization_dictionary_status", b, opts.Headers)
}

// DeleteTokenizationDictionary removes the tokenization dictionary.
func (s *Service) DeleteTokenizationDictionary(ctx context.Context, opts *CollectionOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	b := s.newRequest(http.MethodDelete, tokenizationTemplate, opts.path())
	return s.send(ctx, "delete_tokenization_dictionary", b, opts.Headers)
}

// CreateStopwordListOptions are the arguments of CreateStopwordList.
type CreateStopwordListOptions struct {
	EnvironmentID string `url:"-" path:"environment_id" validate:"required"`
	CollectionID  string `url:"-" path:"collection_id" validate:"required"`
	// StopwordFile holds one stopword per line.
	StopwordFile     io.Reader         `url:"-" form:"stopword_file" validate:"required"`
	StopwordFilename string            `url:"-" form:"stopword_filename" validate:"required"`
	Headers          map[string]string `url:"-"`
}

const stopwordsTemplate = collectionTemplate + "/word_lists/stopwords"

// CreateStopwordList replaces the default stopwords of a collection.
func (s *Service) CreateStopwordList(ctx context.Context, opts *CreateStopwordListOptions) (*TokenDictStatusResponse, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodPost, stopwordsTemplate, collectionPath(opts.EnvironmentID, opts.CollectionID)).
		AddFormFile("stopword_file", opts.StopwordFilename, "application/octet-stream", opts.StopwordFile)
	return invoke[TokenDictStatusResponse](ctx, s, "create_stopword_list", b, opts.Headers)
}

// GetStopwordListStatus reports whether the custom stopword list is
// active or pending.
func (s *Service) GetStopwordListStatus(ctx context.Context, opts *CollectionOptions) (*TokenDictStatusResponse, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodGet, stopwordsTemplate, opts.path())
	return invoke[TokenDictStatusResponse](ctx, s, "get_stopword_list_status", b, opts.Headers)
}

// DeleteStopwordList restores the default stopwords of a collection.
func (s *Service) DeleteStopwordList(ctx context.Context, opts *CollectionOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	b := s.newRequest(http.MethodDelete, stopwordsTemplate, opts.path())
	return s.send(ctx, "delete_stopword_list", b, opts.Headers)
}
