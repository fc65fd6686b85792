package discovery

import (
	"context"
	"net/http"
	"time"

	"github.com/broady/watson"
)

// EventData describes a click on a query result.
type EventData struct {
	EnvironmentID string `json:"environment_id" validate:"required"`
	// SessionToken is QueryResponse.SessionToken of the query whose result
	// was clicked.
	SessionToken    string     `json:"session_token" validate:"required"`
	ClientTimestamp *time.Time `json:"client_timestamp,omitempty"`
	DisplayRank     *int64     `json:"display_rank,omitempty"`
	CollectionID    string     `json:"collection_id" validate:"required"`
	DocumentID      string     `json:"document_id" validate:"required"`
	QueryID         string     `json:"query_id,omitempty"`
}

// EventTypeClick is the only event type.
const EventTypeClick = "click"

// CreateEventOptions are the arguments of CreateEvent.
type CreateEventOptions struct {
	Type    string            `url:"-" json:"type" validate:"required"`
	Data    *EventData        `url:"-" json:"data" validate:"required"`
	Headers map[string]string `url:"-" json:"-"`
}

// CreateEventResponse echoes a recorded event.
type CreateEventResponse struct {
	Type string     `json:"type,omitempty"`
	Data *EventData `json:"data,omitempty"`
}

// CreateEvent records a user interaction with a query result, used for
// continuous relevancy training and the metrics operations.
func (s *Service) CreateEvent(ctx context.Context, opts *CreateEventOptions) (*CreateEventResponse, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodPost, "/v1/events", nil).
		SetJSONBody(opts)
	return invoke[CreateEventResponse](ctx, s, "create_event", b, opts.Headers)
}

// QueryLogOptions are the arguments of QueryLog.
type QueryLogOptions struct {
	Filter  string            `url:"filter,omitempty"`
	Query   string            `url:"query,omitempty"`
	Count   *int64            `url:"count,omitempty"`
	Offset  *int64            `url:"offset,omitempty"`
	Sort    watson.CSV        `url:"sort,omitempty"`
	Headers map[string]string `url:"-"`
}

// LogQueryResponse is the result of QueryLog.
type LogQueryResponse struct {
	MatchingResults int64                    `json:"matching_results,omitempty"`
	Results         []LogQueryResponseResult `json:"results,omitempty"`
}

// LogQueryResponseResult is one logged query or event.
type LogQueryResponseResult struct {
	EnvironmentID        string                           `json:"environment_id,omitempty"`
	CustomerID           string                           `json:"customer_id,omitempty"`
	DocumentType         string                           `json:"document_type,omitempty"`
	NaturalLanguageQuery string                           `json:"natural_language_query,omitempty"`
	DocumentResults      *LogQueryResponseDocumentResults `json:"document_results,omitempty"`
	CreatedTimestamp     *time.Time                       `json:"created_timestamp,omitempty"`
	ClientTimestamp      *time.Time                       `json:"client_timestamp,omitempty"`
	QueryID              string                           `json:"query_id,omitempty"`
	SessionToken         string                           `json:"session_token,omitempty"`
	CollectionID         string                           `json:"collection_id,omitempty"`
	DisplayRank          int64                            `json:"display_rank,omitempty"`
	DocumentID           string                           `json:"document_id,omitempty"`
	EventType            string                           `json:"event_type,omitempty"`
	ResultType           string                           `json:"result_type,omitempty"`
}

type LogQueryResponseDocumentResults struct {
	Results []LogQueryDocumentResult `json:"results,omitempty"`
	Count   int64                    `json:"count,omitempty"`
}

type LogQueryDocumentResult struct {
	Position     int64   `json:"position,omitempty"`
	DocumentID   string  `json:"document_id,omitempty"`
	Score        float64 `json:"score,omitempty"`
	Confidence   float64 `json:"confidence,omitempty"`
	CollectionID string  `json:"collection_id,omitempty"`
}

// QueryLog searches the log of queries and events of the instance.
func (s *Service) QueryLog(ctx context.Context, opts *QueryLogOptions) (*LogQueryResponse, *watson.DetailedResponse, error) {
	if opts == nil {
		opts = &QueryLogOptions{}
	}
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodGet, "/v1/logs", nil).
		AddQueryStruct(opts)
	return invoke[LogQueryResponse](ctx, s, "query_log", b, opts.Headers)
}

// MetricsOptions are the arguments of the metrics operations.
type MetricsOptions struct {
	StartTime *time.Time `url:"start_time,omitempty"`
	EndTime   *time.Time `url:"end_time,omitempty"`
	// ResultType limits the metrics to "document" results.
	ResultType string            `url:"result_type,omitempty"`
	Headers    map[string]string `url:"-"`
}

// MetricResponse holds the intervals of a metrics operation.
type MetricResponse struct {
	Aggregations []MetricAggregation `json:"aggregations,omitempty"`
}

type MetricAggregation struct {
	Interval  string                    `json:"interval,omitempty"`
	EventType string                    `json:"event_type,omitempty"`
	Results   []MetricAggregationResult `json:"results,omitempty"`
}

type MetricAggregationResult struct {
	KeyAsString     *time.Time `json:"key_as_string,omitempty"`
	Key             int64      `json:"key,omitempty"`
	MatchingResults int64      `json:"matching_results,omitempty"`
	EventRate       *float64   `json:"event_rate,omitempty"`
}

func (s *Service) metrics(ctx context.Context, name, path string, opts *MetricsOptions) (*MetricResponse, *watson.DetailedResponse, error) {
	if opts == nil {
		opts = &MetricsOptions{}
	}
	b := s.newRequest(http.MethodGet, path, nil).
		AddQueryStruct(opts)
	return invoke[MetricResponse](ctx, s, name, b, opts.Headers)
}

// GetMetricsQuery returns the number of queries over time.
func (s *Service) GetMetricsQuery(ctx context.Context, opts *MetricsOptions) (*MetricResponse, *watson.DetailedResponse, error) {
	return s.metrics(ctx, "get_metrics_query", "/v1/metrics/number_of_queries", opts)
}

// GetMetricsQueryEvent returns the number of queries that were followed
// by an event.
func (s *Service) GetMetricsQueryEvent(ctx context.Context, opts *MetricsOptions) (*MetricResponse, *watson.DetailedResponse, error) {
	return s.metrics(ctx, "get_metrics_query_event", "/v1/metrics/number_of_queries_with_event", opts)
}

// GetMetricsQueryNoResults returns the number of queries that had no
// results.
func (s *Service) GetMetricsQueryNoResults(ctx context.Context, opts *MetricsOptions) (*MetricResponse, *watson.DetailedResponse, error) {
	return s.metrics(ctx, "get_metrics_query_no_results", "/v1/metrics/number_of_queries_with_no_search_results", opts)
}

// GetMetricsEventRate returns the fraction of queries followed by an
// event.
func (s *Service) GetMetricsEventRate(ctx context.Context, opts *MetricsOptions) (*MetricResponse, *watson.DetailedResponse, error) {
	return s.metrics(ctx, "get_metrics_event_rate", "/v1/metrics/event_rate", opts)
}

// MetricsTokenOptions are the arguments of GetMetricsQueryTokenEvent.
type MetricsTokenOptions struct {
	Count   *int64            `url:"count,omitempty"`
	Headers map[string]string `url:"-"`
}

// MetricTokenResponse holds the most frequent query tokens.
type MetricTokenResponse struct {
	Aggregations []MetricTokenAggregation `json:"aggregations,omitempty"`
}

type MetricTokenAggregation struct {
	EventType string                         `json:"event_type,omitempty"`
	Results   []MetricTokenAggregationResult `json:"results,omitempty"`
}

type MetricTokenAggregationResult struct {
	Key             string   `json:"key,omitempty"`
	MatchingResults int64    `json:"matching_results,omitempty"`
	EventRate       *float64 `json:"event_rate,omitempty"`
}

// GetMetricsQueryTokenEvent returns the most frequent query tokens with
// their event rates.
func (s *Service) GetMetricsQueryTokenEvent(ctx context.Context, opts *MetricsTokenOptions) (*MetricTokenResponse, *watson.DetailedResponse, error) {
	if opts == nil {
		opts = &MetricsTokenOptions{}
	}
	b := s.newRequest(http.MethodGet, "/v1/metrics/top_query_tokens_with_event_rate", nil).
		AddQueryStruct(opts)
	return invoke[MetricTokenResponse](ctx, s, "get_metrics_query_token_event", b, opts.Headers)
}

// DeleteUserDataOptions are the arguments of DeleteUserData.
type DeleteUserDataOptions struct {
	CustomerID string            `url:"customer_id" validate:"required"`
	Headers    map[string]string `url:"-"`
}

// DeleteUserData deletes all data associated with a customer ID, as set
// by the X-Watson-Metadata header on earlier requests.
func (s *Service) DeleteUserData(ctx context.Context, opts *DeleteUserDataOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	b := s.newRequest(http.MethodDelete, "/v1/user_data", nil).
		AddQueryStruct(opts)
	return s.send(ctx, "delete_user_data", b, opts.Headers)
}
