package discovery

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryAggregation_Decode(t *testing.T) {
	const data = `[
		{"type": "histogram", "field": "price", "interval": 5,
			"results": [{"key": 0, "matching_results": 3}, {"key": 5, "matching_results": 2}]},
		{"type": "timeslice", "field": "publication_date", "interval": "1day", "anomaly": true,
			"results": [{"key": 1489536000000, "key_as_string": "2017-03-15T00:00:00.000Z", "matching_results": 4, "event_rate": 0.25}]},
		{"type": "nested", "path": "enriched_text.entities", "matching_results": 20,
			"aggregations": [{"type": "filter", "match": "enriched_text.entities.type:Person", "matching_results": 5}]},
		{"type": "top_hits", "size": 1, "hits": {"matching_results": 24, "hits": [{"id": "doc1", "title": "Refunds"}]}},
		{"type": "unique_count", "field": "author", "value": 7},
		{"type": "quantile", "field": "price", "value": 3}
	]`
	var aggs []QueryAggregation
	require.NoError(t, json.Unmarshal([]byte(data), &aggs))
	require.Len(t, aggs, 6)

	hist, ok := aggs[0].Value.(*HistogramAggregation)
	require.True(t, ok, "got %T", aggs[0].Value)
	assert.Equal(t, int64(5), hist.Interval)
	require.Len(t, hist.Results, 2)
	key, err := hist.Results[1].Key.Float64()
	require.NoError(t, err)
	assert.Equal(t, 5.0, key)

	ts, ok := aggs[1].Value.(*TimesliceAggregation)
	require.True(t, ok)
	assert.Equal(t, "1day", ts.Interval)
	assert.True(t, *ts.Anomaly)
	assert.Equal(t, AggregationKey("1489536000000"), ts.Results[0].Key)
	assert.Equal(t, "2017-03-15T00:00:00.000Z", ts.Results[0].KeyAsString)
	assert.Equal(t, 0.25, *ts.Results[0].EventRate)

	nested, ok := aggs[2].Value.(*NestedAggregation)
	require.True(t, ok)
	assert.Equal(t, "enriched_text.entities", nested.Path)
	require.Len(t, nested.Aggregations, 1)
	filter, ok := nested.Aggregations[0].Value.(*FilterAggregation)
	require.True(t, ok)
	assert.Equal(t, int64(5), filter.MatchingResults)

	top, ok := aggs[3].Value.(*TopHitsAggregation)
	require.True(t, ok)
	require.Len(t, top.Hits.Hits, 1)
	assert.Equal(t, "Refunds", top.Hits.Hits[0].Fields["title"])

	unique, ok := aggs[4].Value.(*CalculationAggregation)
	require.True(t, ok)
	assert.Equal(t, AggregationUniqueCount, unique.Type)
	assert.Equal(t, 7.0, *unique.Value)

	unknown, ok := aggs[5].Value.(*UnknownAggregation)
	require.True(t, ok)
	assert.Equal(t, "quantile", aggs[5].Type())
	assert.JSONEq(t, `{"type": "quantile", "field": "price", "value": 3}`, string(unknown.Raw))
}

func TestQueryAggregation_Encode(t *testing.T) {
	const data = `[
		{"type":"term","field":"author","count":1,"results":[{"key":"Ann","matching_results":2}]},
		{"type":"histogram","field":"price","interval":5,"results":[{"key":5,"matching_results":2}]},
		{"type":"quantile","field":"price","value":3}
	]`
	var aggs []QueryAggregation
	require.NoError(t, json.Unmarshal([]byte(data), &aggs))

	out, err := json.Marshal(aggs)
	require.NoError(t, err)
	assert.JSONEq(t, data, string(out))
}

func TestQueryAggregation_BadVariant(t *testing.T) {
	var agg QueryAggregation
	err := json.Unmarshal([]byte(`{"type":"term","count":"many"}`), &agg)
	assert.ErrorContains(t, err, "decode term aggregation")
}

func TestQueryAggregation_Empty(t *testing.T) {
	var agg QueryAggregation
	assert.Equal(t, "", agg.Type())
	out, err := json.Marshal(agg)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
