package discovery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/watson"
	"github.com/broady/watson/testutil"
)

func TestCreateEvent(t *testing.T) {
	srv := testutil.NewServer(t).Handle("POST", "/v1/events", 201, `{
		"type": "click",
		"data": {"environment_id": "env1", "session_token": "1_abc", "collection_id": "col1",
			"document_id": "doc1", "display_rank": 1, "query_id": "q1"}
	}`)
	s := newTestService(t, srv)

	ts := time.Date(2019, 4, 30, 12, 0, 0, 0, time.UTC)
	ev, _, err := s.CreateEvent(context.Background(), &CreateEventOptions{
		Type: EventTypeClick,
		Data: &EventData{
			EnvironmentID:   "env1",
			SessionToken:    "1_abc",
			ClientTimestamp: &ts,
			DisplayRank:     watson.Int64(1),
			CollectionID:    "col1",
			DocumentID:      "doc1",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "q1", ev.Data.QueryID)

	testutil.AssertJSONBody(t, srv.LastRequest(), `{
		"type": "click",
		"data": {"environment_id": "env1", "session_token": "1_abc", "client_timestamp": "2019-04-30T12:00:00Z",
			"display_rank": 1, "collection_id": "col1", "document_id": "doc1"}
	}`)
}

func TestCreateEvent_MissingSessionToken(t *testing.T) {
	srv := testutil.NewServer(t)
	s := newTestService(t, srv)

	_, _, err := s.CreateEvent(context.Background(), &CreateEventOptions{
		Type: EventTypeClick,
		Data: &EventData{EnvironmentID: "env1", CollectionID: "col1", DocumentID: "doc1"},
	})
	var missing *watson.MissingArgumentError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "session_token", missing.Field)
	assert.Empty(t, srv.Requests())
}

func TestQueryLog(t *testing.T) {
	srv := testutil.NewServer(t).Handle("GET", "/v1/logs", 200, `{
		"matching_results": 1,
		"results": [{
			"environment_id": "env1",
			"customer_id": "",
			"document_type": "query",
			"natural_language_query": "refund policy",
			"document_results": {"results": [{"position": 1, "document_id": "doc1", "score": 1.2, "confidence": 0.8, "collection_id": "col1"}], "count": 1},
			"created_timestamp": "2019-04-30T12:00:00.000Z",
			"query_id": "q1",
			"session_token": "1_abc",
			"result_type": "document"
		}]
	}`)
	s := newTestService(t, srv)

	res, _, err := s.QueryLog(context.Background(), &QueryLogOptions{
		Query: "natural_language_query:refund",
		Count: watson.Int64(10),
		Sort:  watson.CSV{"-created_timestamp", "query_id"},
	})
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	entry := res.Results[0]
	assert.Equal(t, "refund policy", entry.NaturalLanguageQuery)
	assert.Equal(t, int64(1), entry.DocumentResults.Count)
	assert.Equal(t, "doc1", entry.DocumentResults.Results[0].DocumentID)
	assert.Equal(t, 2019, entry.CreatedTimestamp.Year())

	req := srv.LastRequest()
	testutil.AssertQuery(t, req, "version", testVersion)
	testutil.AssertQuery(t, req, "query", "natural_language_query:refund")
	testutil.AssertQuery(t, req, "count", "10")
	testutil.AssertQuery(t, req, "sort", "-created_timestamp,query_id")
	testutil.AssertNoQuery(t, req, "offset")
}

func TestMetrics(t *testing.T) {
	const body = `{"aggregations":[{"interval":"1d","event_type":"click","results":[
		{"key_as_string":"2019-04-29T00:00:00.000Z","key":1556496000000,"matching_results":12,"event_rate":0.5}
	]}]}`
	opts := &MetricsOptions{
		StartTime:  watson.Time(time.Date(2019, 4, 1, 0, 0, 0, 0, time.UTC)),
		EndTime:    watson.Time(time.Date(2019, 4, 30, 0, 0, 0, 0, time.UTC)),
		ResultType: "document",
	}

	tests := []struct {
		path string
		call func(s *Service) (*MetricResponse, error)
	}{
		{"/v1/metrics/number_of_queries", func(s *Service) (*MetricResponse, error) {
			res, _, err := s.GetMetricsQuery(context.Background(), opts)
			return res, err
		}},
		{"/v1/metrics/number_of_queries_with_event", func(s *Service) (*MetricResponse, error) {
			res, _, err := s.GetMetricsQueryEvent(context.Background(), opts)
			return res, err
		}},
		{"/v1/metrics/number_of_queries_with_no_search_results", func(s *Service) (*MetricResponse, error) {
			res, _, err := s.GetMetricsQueryNoResults(context.Background(), opts)
			return res, err
		}},
		{"/v1/metrics/event_rate", func(s *Service) (*MetricResponse, error) {
			res, _, err := s.GetMetricsEventRate(context.Background(), opts)
			return res, err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			srv := testutil.NewServer(t).Handle("GET", tt.path, 200, body)
			s := newTestService(t, srv)

			res, err := tt.call(s)
			require.NoError(t, err)
			require.Len(t, res.Aggregations, 1)
			r := res.Aggregations[0].Results[0]
			assert.Equal(t, int64(12), r.MatchingResults)
			assert.Equal(t, 0.5, *r.EventRate)
			assert.Equal(t, 29, r.KeyAsString.Day())

			req := srv.LastRequest()
			testutil.AssertQuery(t, req, "start_time", "2019-04-01T00:00:00Z")
			testutil.AssertQuery(t, req, "end_time", "2019-04-30T00:00:00Z")
			testutil.AssertQuery(t, req, "result_type", "document")
		})
	}
}

func TestGetMetricsQueryTokenEvent(t *testing.T) {
	srv := testutil.NewServer(t).Handle("GET", "/v1/metrics/top_query_tokens_with_event_rate", 200,
		`{"aggregations":[{"event_type":"click","results":[{"key":"refund","matching_results":9,"event_rate":0.3}]}]}`)
	s := newTestService(t, srv)

	res, _, err := s.GetMetricsQueryTokenEvent(context.Background(), &MetricsTokenOptions{Count: watson.Int64(5)})
	require.NoError(t, err)
	assert.Equal(t, "refund", res.Aggregations[0].Results[0].Key)
	testutil.AssertQuery(t, srv.LastRequest(), "count", "5")
}

func TestGetMetrics_NilOptions(t *testing.T) {
	srv := testutil.NewServer(t).Handle("GET", "/v1/metrics/event_rate", 200, `{"aggregations":[]}`)
	s := newTestService(t, srv)

	_, _, err := s.GetMetricsEventRate(context.Background(), nil)
	require.NoError(t, err)
	req := srv.LastRequest()
	testutil.AssertNoQuery(t, req, "start_time")
	testutil.AssertNoQuery(t, req, "end_time")
}

func TestDeleteUserData(t *testing.T) {
	srv := testutil.NewServer(t).Handle("DELETE", "/v1/user_data", 200, "")
	s := newTestService(t, srv)

	resp, err := s.DeleteUserData(context.Background(), &DeleteUserDataOptions{CustomerID: "cust 1"})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	testutil.AssertQuery(t, srv.LastRequest(), "customer_id", "cust 1")
}
