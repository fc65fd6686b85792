package discovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/watson"
	"github.com/broady/watson/testutil"
)

const queryResponse = `{
	"matching_results": 24,
	"session_token": "1_abc",
	"retrieval_details": {"document_retrieval_strategy": "untrained"},
	"results": [{
		"id": "doc1",
		"collection_id": "col1",
		"result_metadata": {"score": 1.2},
		"title": "Refunds",
		"enriched_text": {"sentiment": {"document": {"label": "positive"}}}
	}],
	"aggregations": [{
		"type": "term",
		"field": "enriched_text.entities.type",
		"count": 2,
		"matching_results": 24,
		"results": [{
			"key": "Company",
			"matching_results": 10,
			"aggregations": [{"type": "max", "field": "price", "value": 9.5}]
		}]
	}],
	"passages": [{
		"document_id": "doc1",
		"passage_score": 12.3,
		"passage_text": "refunds within 30 days",
		"start_offset": 10,
		"end_offset": 32,
		"field": "text"
	}]
}`

func TestQuery(t *testing.T) {
	srv := testutil.NewServer(t).Handle("POST", "/v1/environments/env1/collections/col1/query", 200, queryResponse)
	s := newTestService(t, srv)

	res, _, err := s.Query(context.Background(), &QueryOptions{
		EnvironmentID: "env1",
		CollectionID:  "col1",
		QueryParams: QueryParams{
			Filter:               "enriched_text.entities.type::Company",
			NaturalLanguageQuery: "refund policy",
			Count:                watson.Int64(5),
			Return:               watson.CSV{"title", "url"},
			Passages:             watson.Bool(true),
			PassagesFields:       watson.CSV{"text"},
		},
		Deduplicate:   watson.Bool(true),
		LoggingOptOut: watson.Bool(true),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(24), res.MatchingResults)
	assert.Equal(t, "untrained", res.RetrievalDetails.DocumentRetrievalStrategy)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "doc1", res.Results[0].ID)
	assert.Equal(t, 1.2, res.Results[0].ResultMetadata.Score)
	assert.Equal(t, "Refunds", res.Results[0].Fields["title"])
	assert.NotContains(t, res.Results[0].Fields, "id")
	require.Len(t, res.Passages, 1)
	assert.Equal(t, "refunds within 30 days", res.Passages[0].PassageText)

	require.Len(t, res.Aggregations, 1)
	term, ok := res.Aggregations[0].Value.(*TermAggregation)
	require.True(t, ok, "got %T", res.Aggregations[0].Value)
	assert.Equal(t, AggregationKey("Company"), term.Results[0].Key)
	calc, ok := term.Results[0].Aggregations[0].Value.(*CalculationAggregation)
	require.True(t, ok)
	assert.Equal(t, AggregationMax, calc.Type)
	assert.Equal(t, 9.5, *calc.Value)

	req := srv.LastRequest()
	testutil.AssertQuery(t, req, "version", testVersion)
	testutil.AssertHeader(t, req, "X-Watson-Logging-Opt-Out", "true")
	testutil.AssertHeader(t, req, "Content-Type", "application/json")
	golden(t).Assert(t, "query", req.Body)
}

func TestQuery_NoLoggingHeaderByDefault(t *testing.T) {
	srv := testutil.NewServer(t).Handle("POST", "/v1/environments/env1/collections/col1/query", 200, `{"matching_results":0}`)
	s := newTestService(t, srv)

	_, _, err := s.Query(context.Background(), &QueryOptions{EnvironmentID: "env1", CollectionID: "col1"})
	require.NoError(t, err)
	req := srv.LastRequest()
	assert.Empty(t, req.Header.Get("X-Watson-Logging-Opt-Out"))
	testutil.AssertJSONBody(t, req, `{}`)
}

func TestQuery_InvalidPassagesCount(t *testing.T) {
	srv := testutil.NewServer(t)
	s := newTestService(t, srv)

	_, _, err := s.Query(context.Background(), &QueryOptions{
		EnvironmentID: "env1",
		CollectionID:  "col1",
		QueryParams:   QueryParams{PassagesCount: watson.Int64(200)},
	})
	var svcErr *watson.Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, watson.CodeInvalidArgument, svcErr.Code)
	assert.Equal(t, "passages.count must be at most 100", svcErr.Message)
	assert.Empty(t, srv.Requests())
}

func TestQueryResult_MarshalKeepsDocumentFields(t *testing.T) {
	srv := testutil.NewServer(t).Handle("POST", "/v1/environments/env1/collections/col1/query", 200, queryResponse)
	s := newTestService(t, srv)

	res, _, err := s.Query(context.Background(), &QueryOptions{EnvironmentID: "env1", CollectionID: "col1"})
	require.NoError(t, err)

	data, err := res.Results[0].MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "doc1",
		"collection_id": "col1",
		"result_metadata": {"score": 1.2},
		"title": "Refunds",
		"enriched_text": {"sentiment": {"document": {"label": "positive"}}}
	}`, string(data))
}

func TestQueryNotices(t *testing.T) {
	srv := testutil.NewServer(t).Handle("GET", "/v1/environments/env1/collections/col1/notices", 200, `{
		"matching_results": 1,
		"results": [{
			"id": "n1",
			"code": 400,
			"filename": "broken.pdf",
			"file_type": "pdf",
			"sha1": "abc",
			"notices": [{"notice_id": "index_342", "severity": "error", "step": "indexing", "description": "bad"}]
		}]
	}`)
	s := newTestService(t, srv)

	res, _, err := s.QueryNotices(context.Background(), &QueryNoticesOptions{
		EnvironmentID: "env1",
		CollectionID:  "col1",
		QueryParams: QueryParams{
			NaturalLanguageQuery: "error",
			Count:                watson.Int64(10),
			Return:               watson.CSV{"notices", "filename"},
			Sort:                 watson.CSV{"-created"},
			Highlight:            watson.Bool(true),
			PassagesCount:        watson.Int64(2),
			DeduplicateField:     "title",
			SimilarDocumentIDs:   watson.CSV{"d1", "d2"},
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	n := res.Results[0]
	assert.Equal(t, "n1", n.ID)
	assert.Equal(t, int64(400), n.Code)
	assert.Equal(t, "broken.pdf", n.Filename)
	require.Len(t, n.Notices, 1)
	assert.Equal(t, "error", n.Notices[0].Severity)
	assert.Nil(t, n.Fields)

	req := srv.LastRequest()
	testutil.AssertRequest(t, req, "GET", "/v1/environments/env1/collections/col1/notices")
	testutil.AssertQuery(t, req, "version", testVersion)
	testutil.AssertQuery(t, req, "natural_language_query", "error")
	testutil.AssertQuery(t, req, "count", "10")
	testutil.AssertQuery(t, req, "return", "notices,filename")
	testutil.AssertQuery(t, req, "sort", "-created")
	testutil.AssertQuery(t, req, "highlight", "true")
	testutil.AssertQuery(t, req, "passages.count", "2")
	testutil.AssertQuery(t, req, "deduplicate.field", "title")
	testutil.AssertQuery(t, req, "similar.document_ids", "d1,d2")
	testutil.AssertNoQuery(t, req, "filter")
	testutil.AssertNoQuery(t, req, "passages")
	testutil.AssertNoQuery(t, req, "offset")
}

func TestFederatedQuery(t *testing.T) {
	srv := testutil.NewServer(t).Handle("POST", "/v1/environments/env1/query", 200, `{"matching_results":0,"results":[]}`)
	s := newTestService(t, srv)

	_, _, err := s.FederatedQuery(context.Background(), &FederatedQueryOptions{
		EnvironmentID: "env1",
		CollectionIDs: watson.CSV{"col1", "col2"},
		QueryParams: QueryParams{
			NaturalLanguageQuery: "refund policy",
			Count:                watson.Int64(3),
		},
	})
	require.NoError(t, err)
	testutil.AssertJSONBody(t, srv.LastRequest(),
		`{"collection_ids":"col1,col2","natural_language_query":"refund policy","count":3}`)
}

func TestFederatedQueryNotices(t *testing.T) {
	srv := testutil.NewServer(t).Handle("GET", "/v1/environments/env1/notices", 200, `{"matching_results":0}`)
	s := newTestService(t, srv)

	_, _, err := s.FederatedQueryNotices(context.Background(), &FederatedQueryNoticesOptions{
		EnvironmentID: "env1",
		CollectionIDs: watson.CSV{"col1", "col2"},
		QueryParams:   QueryParams{Filter: "severity::error"},
	})
	require.NoError(t, err)
	req := srv.LastRequest()
	testutil.AssertQuery(t, req, "collection_ids", "col1,col2")
	testutil.AssertQuery(t, req, "filter", "severity::error")
}

func TestQueryEntities(t *testing.T) {
	srv := testutil.NewServer(t).Handle("POST", "/v1/environments/env1/collections/col1/query_entities", 200, `{
		"entities": [{
			"text": "IBM",
			"type": "Company",
			"evidence": [{"document_id": "doc1", "field": "text", "start_offset": 0, "end_offset": 3,
				"entities": [{"type": "Company", "text": "IBM", "start_offset": 0, "end_offset": 3}]}]
		}]
	}`)
	s := newTestService(t, srv)

	res, _, err := s.QueryEntities(context.Background(), &QueryEntitiesOptions{
		EnvironmentID: "env1",
		CollectionID:  "col1",
		Feature:       "disambiguate",
		Entity:        &QueryEntitiesEntity{Text: "IBM"},
		Count:         watson.Int64(1),
	})
	require.NoError(t, err)
	require.Len(t, res.Entities, 1)
	assert.Equal(t, "Company", res.Entities[0].Type)
	assert.Equal(t, "doc1", res.Entities[0].Evidence[0].DocumentID)
	testutil.AssertJSONBody(t, srv.LastRequest(), `{"feature":"disambiguate","entity":{"text":"IBM"},"count":1}`)
}

func TestQueryRelations(t *testing.T) {
	srv := testutil.NewServer(t).Handle("POST", "/v1/environments/env1/collections/col1/query_relations", 200, `{
		"relations": [{"type": "employedBy", "frequency": 3,
			"arguments": [{"entities": [{"text": "Ginni", "type": "Person"}]}, {"entities": [{"text": "IBM", "type": "Company"}]}]}]
	}`)
	s := newTestService(t, srv)

	res, _, err := s.QueryRelations(context.Background(), &QueryRelationsOptions{
		EnvironmentID: "env1",
		CollectionID:  "col1",
		Entities:      []QueryEntitiesEntity{{Text: "IBM", Type: "Company"}},
		Sort:          "frequency",
		Filter: &QueryRelationsFilter{
			RelationTypes: &QueryFilterType{Include: []string{"employedBy"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Relations, 1)
	assert.Equal(t, int64(3), res.Relations[0].Frequency)
	require.Len(t, res.Relations[0].Arguments, 2)
	testutil.AssertJSONBody(t, srv.LastRequest(), `{
		"entities": [{"text": "IBM", "type": "Company"}],
		"sort": "frequency",
		"filter": {"relation_types": {"include": ["employedBy"]}}
	}`)
}

func TestGetAutocompletion(t *testing.T) {
	srv := testutil.NewServer(t).Handle("GET", "/v1/environments/env1/collections/col1/autocompletion", 200,
		`{"completions":["refund","refunds policy"]}`)
	s := newTestService(t, srv)

	res, _, err := s.GetAutocompletion(context.Background(), &GetAutocompletionOptions{
		EnvironmentID: "env1",
		CollectionID:  "col1",
		Prefix:        "ref",
		Count:         watson.Int64(2),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"refund", "refunds policy"}, res.Completions)
	req := srv.LastRequest()
	testutil.AssertQuery(t, req, "prefix", "ref")
	testutil.AssertQuery(t, req, "count", "2")
	testutil.AssertNoQuery(t, req, "field")
}
