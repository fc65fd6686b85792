package discovery

import (
	"context"
	"net/http"
	"strconv"

	"github.com/broady/watson"
)

// QueryParams are the search parameters shared by the query and notices
// operations. Query and FederatedQuery send them in a JSON body; the
// notices operations send them as query parameters.
type QueryParams struct {
	// Filter is a cacheable query that excludes documents without
	// ranking them.
	Filter string `url:"filter,omitempty" json:"filter,omitempty"`
	// Query is a query in the Discovery query language. It cannot be
	// combined with NaturalLanguageQuery.
	Query                string `url:"query,omitempty" json:"query,omitempty"`
	NaturalLanguageQuery string `url:"natural_language_query,omitempty" json:"natural_language_query,omitempty"`
	Aggregation          string `url:"aggregation,omitempty" json:"aggregation,omitempty"`

	Count  *int64     `url:"count,omitempty" json:"count,omitempty"`
	Offset *int64     `url:"offset,omitempty" json:"offset,omitempty"`
	Return watson.CSV `url:"return,omitempty" json:"return,omitempty"`
	// Sort fields, prefixed with - for descending or + for ascending.
	Sort      watson.CSV `url:"sort,omitempty" json:"sort,omitempty"`
	Highlight *bool      `url:"highlight,omitempty" json:"highlight,omitempty"`

	Passages           *bool      `url:"passages,omitempty" json:"passages,omitempty"`
	PassagesFields     watson.CSV `url:"passages.fields,omitempty" json:"passages.fields,omitempty"`
	PassagesCount      *int64     `url:"passages.count,omitempty" json:"passages.count,omitempty" validate:"omitempty,lte=100"`
	PassagesCharacters *int64     `url:"passages.characters,omitempty" json:"passages.characters,omitempty" validate:"omitempty,gte=50,lte=2000"`

	DeduplicateField   string     `url:"deduplicate.field,omitempty" json:"deduplicate.field,omitempty"`
	Similar            *bool      `url:"similar,omitempty" json:"similar,omitempty"`
	SimilarDocumentIDs watson.CSV `url:"similar.document_ids,omitempty" json:"similar.document_ids,omitempty"`
	SimilarFields      watson.CSV `url:"similar.fields,omitempty" json:"similar.fields,omitempty"`
}

// QueryOptions are the arguments of Query.
type QueryOptions struct {
	EnvironmentID string `url:"-" path:"environment_id" json:"-" validate:"required"`
	CollectionID  string `url:"-" path:"collection_id" json:"-" validate:"required"`

	QueryParams

	// Deduplicate excludes near-duplicate results. Beta.
	Deduplicate *bool `url:"-" json:"deduplicate,omitempty"`
	// Bias boosts results with recent or high values of a date or
	// number field.
	Bias                string `url:"-" json:"bias,omitempty"`
	SpellingSuggestions *bool  `url:"-" json:"spelling_suggestions,omitempty"`

	// LoggingOptOut excludes the query from the logs returned by QueryLog.
	LoggingOptOut *bool             `url:"-" json:"-"`
	Headers       map[string]string `url:"-" json:"-"`
}

func loggingOptOut(b *watson.RequestBuilder, optOut *bool) {
	if optOut != nil {
		b.AddHeader("X-Watson-Logging-Opt-Out", strconv.FormatBool(*optOut))
	}
}

// Query searches a collection.
func (s *Service) Query(ctx context.Context, opts *QueryOptions) (*QueryResponse, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodPost, collectionTemplate+"/query", collectionPath(opts.EnvironmentID, opts.CollectionID)).
		SetJSONBody(opts)
	loggingOptOut(b, opts.LoggingOptOut)
	return invoke[QueryResponse](ctx, s, "query", b, opts.Headers)
}

// QueryNoticesOptions are the arguments of QueryNotices.
type QueryNoticesOptions struct {
	EnvironmentID string `url:"-" path:"environment_id" validate:"required"`
	CollectionID  string `url:"-" path:"collection_id" validate:"required"`

	QueryParams

	Headers map[string]string `url:"-"`
}

// QueryNotices searches the notices raised while ingesting documents into
// a collection.
func (s *Service) QueryNotices(ctx context.Context, opts *QueryNoticesOptions) (*QueryNoticesResponse, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodGet, collectionTemplate+"/notices", collectionPath(opts.EnvironmentID, opts.CollectionID)).
		AddQueryStruct(opts)
	return invoke[QueryNoticesResponse](ctx, s, "query_notices", b, opts.Headers)
}

// FederatedQueryOptions are the arguments of FederatedQuery.
type FederatedQueryOptions struct {
	EnvironmentID string     `url:"-" path:"environment_id" json:"-" validate:"required"`
	CollectionIDs watson.CSV `url:"-" json:"collection_ids" validate:"required"`

	QueryParams

	Deduplicate         *bool  `url:"-" json:"deduplicate,omitempty"`
	Bias                string `url:"-" json:"bias,omitempty"`
	SpellingSuggestions *bool  `url:"-" json:"spelling_suggestions,omitempty"`

	LoggingOptOut *bool             `url:"-" json:"-"`
	Headers       map[string]string `url:"-" json:"-"`
}

// FederatedQuery searches several collections of one environment at once.
func (s *Service) FederatedQuery(ctx context.Context, opts *FederatedQueryOptions) (*QueryResponse, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodPost, "/v1/environments/{environment_id}/query", envPath(opts.EnvironmentID)).
		SetJSONBody(opts)
	loggingOptOut(b, opts.LoggingOptOut)
	return invoke[QueryResponse](ctx, s, "federated_query", b, opts.Headers)
}

// FederatedQueryNoticesOptions are the arguments of FederatedQueryNotices.
type FederatedQueryNoticesOptions struct {
	EnvironmentID string     `url:"-" path:"environment_id" validate:"required"`
	CollectionIDs watson.CSV `url:"collection_ids" validate:"required"`

	QueryParams

	Headers map[string]string `url:"-"`
}

// FederatedQueryNotices searches the notices of several collections.
func (s *Service) FederatedQueryNotices(ctx context.Context, opts *FederatedQueryNoticesOptions) (*QueryNoticesResponse, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodGet, "/v1/environments/{environment_id}/notices", envPath(opts.EnvironmentID)).
		AddQueryStruct(opts)
	return invoke[QueryNoticesResponse](ctx, s, "federated_query_notices", b, opts.Headers)
}

// QueryEntitiesOptions are the arguments of QueryEntities.
type QueryEntitiesOptions struct {
	EnvironmentID string `url:"-" path:"environment_id" json:"-" validate:"required"`
	CollectionID  string `url:"-" path:"collection_id" json:"-" validate:"required"`

	// Feature is the entity query feature: "disambiguate" or
	// "similar_entities".
	Feature       string                `url:"-" json:"feature,omitempty"`
	Entity        *QueryEntitiesEntity  `url:"-" json:"entity,omitempty"`
	Context       *QueryEntitiesContext `url:"-" json:"context,omitempty"`
	Count         *int64                `url:"-" json:"count,omitempty"`
	EvidenceCount *int64                `url:"-" json:"evidence_count,omitempty"`

	Headers map[string]string `url:"-" json:"-"`
}

// QueryEntities searches the knowledge graph of a collection for entities.
func (s *Service) QueryEntities(ctx context.Context, opts *QueryEntitiesOptions) (*QueryEntitiesResponse, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodPost, collectionTemplate+"/query_entities", collectionPath(opts.EnvironmentID, opts.CollectionID)).
		SetJSONBody(opts)
	return invoke[QueryEntitiesResponse](ctx, s, "query_entities", b, opts.Headers)
}

// QueryRelationsOptions are the arguments of QueryRelations.
type QueryRelationsOptions struct {
	EnvironmentID string `url:"-" path:"environment_id" json:"-" validate:"required"`
	CollectionID  string `url:"-" path:"collection_id" json:"-" validate:"required"`

	Entities []QueryEntitiesEntity `url:"-" json:"entities,omitempty"`
	Context  *QueryEntitiesContext `url:"-" json:"context,omitempty"`
	// Sort is "score" or "frequency".
	Sort          string                `url:"-" json:"sort,omitempty"`
	Filter        *QueryRelationsFilter `url:"-" json:"filter,omitempty"`
	Count         *int64                `url:"-" json:"count,omitempty"`
	EvidenceCount *int64                `url:"-" json:"evidence_count,omitempty"`

	Headers map[string]string `url:"-" json:"-"`
}

// QueryRelations searches the knowledge graph of a collection for
// relations between entities.
func (s *Service) QueryRelations(ctx context.Context, opts *QueryRelationsOptions) (*QueryRelationsResponse, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodPost, collectionTemplate+"/query_relations", collectionPath(opts.EnvironmentID, opts.CollectionID)).
		SetJSONBody(opts)
	return invoke[QueryRelationsResponse](ctx, s, "query_relations", b, opts.Headers)
}

// GetAutocompletionOptions are the arguments of GetAutocompletion.
type GetAutocompletionOptions struct {
	EnvironmentID string            `url:"-" path:"environment_id" validate:"required"`
	CollectionID  string            `url:"-" path:"collection_id" validate:"required"`
	Prefix        string            `url:"prefix" validate:"required"`
	Field         string            `url:"field,omitempty"`
	Count         *int64            `url:"count,omitempty"`
	Headers       map[string]string `url:"-"`
}

// GetAutocompletion suggests completions for a partial query.
func (s *Service) GetAutocompletion(ctx context.Context, opts *GetAutocompletionOptions) (*Completions, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodGet, collectionTemplate+"/autocompletion", collectionPath(opts.EnvironmentID, opts.CollectionID)).
		AddQueryStruct(opts)
	return invoke[Completions](ctx, s, "get_autocompletion", b, opts.Headers)
}
