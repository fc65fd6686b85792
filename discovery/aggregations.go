package discovery

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Aggregation is implemented by the concrete aggregation types:
// *TermAggregation, *HistogramAggregation, *TimesliceAggregation,
// *NestedAggregation, *FilterAggregation, *CalculationAggregation,
// *TopHitsAggregation, and *UnknownAggregation.
type Aggregation interface {
	AggregationType() string
}

// QueryAggregation is one aggregation of a query response. Decoding
// selects the concrete type of Value from the "type" member:
//
//	for _, agg := range res.Aggregations {
//	    switch a := agg.Value.(type) {
//	    case *discovery.TermAggregation:
//	        ...
//	    case *discovery.CalculationAggregation:
//	        ...
//	    }
//	}
type QueryAggregation struct {
	Value Aggregation
}

// Type returns the aggregation type, e.g. "term" or "max".
func (a QueryAggregation) Type() string {
	if a.Value == nil {
		return ""
	}
	return a.Value.AggregationType()
}

// Aggregation types.
const (
	AggregationTerm        = "term"
	AggregationHistogram   = "histogram"
	AggregationTimeslice   = "timeslice"
	AggregationNested      = "nested"
	AggregationFilter      = "filter"
	AggregationMin         = "min"
	AggregationMax         = "max"
	AggregationSum         = "sum"
	AggregationAverage     = "average"
	AggregationUniqueCount = "unique_count"
	AggregationTopHits     = "top_hits"
)

func (a *QueryAggregation) UnmarshalJSON(data []byte) error {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	var v Aggregation
	switch head.Type {
	case AggregationTerm:
		v = &TermAggregation{}
	case AggregationHistogram:
		v = &HistogramAggregation{}
	case AggregationTimeslice:
		v = &TimesliceAggregation{}
	case AggregationNested:
		v = &NestedAggregation{}
	case AggregationFilter:
		v = &FilterAggregation{}
	case AggregationMin, AggregationMax, AggregationSum, AggregationAverage, AggregationUniqueCount:
		v = &CalculationAggregation{}
	case AggregationTopHits:
		v = &TopHitsAggregation{}
	default:
		a.Value = &UnknownAggregation{Type: head.Type, Raw: append(json.RawMessage(nil), data...)}
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s aggregation: %w", head.Type, err)
	}
	a.Value = v
	return nil
}

func (a QueryAggregation) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Value)
}

// AggregationResult is one bucket of a term, histogram, or timeslice
// aggregation.
type AggregationResult struct {
	Key AggregationKey `json:"key"`
	// KeyAsString is the formatted timestamp of a timeslice bucket.
	KeyAsString     string             `json:"key_as_string,omitempty"`
	MatchingResults int64              `json:"matching_results"`
	EventRate       *float64           `json:"event_rate,omitempty"`
	Aggregations    []QueryAggregation `json:"aggregations,omitempty"`
}

// AggregationKey is a bucket key. Term buckets have string keys;
// histogram and timeslice buckets have numeric keys, which are kept in
// their JSON form.
type AggregationKey string

func (k *AggregationKey) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*k = AggregationKey(s)
		return nil
	}
	if string(data) == "null" {
		return nil
	}
	*k = AggregationKey(data)
	return nil
}

func (k AggregationKey) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseFloat(string(k), 64); err == nil {
		return []byte(k), nil
	}
	return json.Marshal(string(k))
}

// Float64 parses a numeric key.
func (k AggregationKey) Float64() (float64, error) {
	return strconv.ParseFloat(string(k), 64)
}

// TermAggregation buckets documents by the most frequent values of a field.
type TermAggregation struct {
	Type            string              `json:"type"`
	Field           string              `json:"field,omitempty"`
	Count           int64               `json:"count,omitempty"`
	Name            string              `json:"name,omitempty"`
	MatchingResults int64               `json:"matching_results,omitempty"`
	Results         []AggregationResult `json:"results,omitempty"`
	Aggregations    []QueryAggregation  `json:"aggregations,omitempty"`
}

func (a TermAggregation) AggregationType() string { return a.Type }

// HistogramAggregation buckets a numeric field into fixed intervals.
type HistogramAggregation struct {
	Type            string              `json:"type"`
	Field           string              `json:"field,omitempty"`
	Interval        int64               `json:"interval,omitempty"`
	Name            string              `json:"name,omitempty"`
	MatchingResults int64               `json:"matching_results,omitempty"`
	Results         []AggregationResult `json:"results,omitempty"`
	Aggregations    []QueryAggregation  `json:"aggregations,omitempty"`
}

func (a HistogramAggregation) AggregationType() string { return a.Type }

// TimesliceAggregation buckets a date field into intervals such as "1day".
type TimesliceAggregation struct {
	Type            string              `json:"type"`
	Field           string              `json:"field,omitempty"`
	Interval        string              `json:"interval,omitempty"`
	Name            string              `json:"name,omitempty"`
	Anomaly         *bool               `json:"anomaly,omitempty"`
	MatchingResults int64               `json:"matching_results,omitempty"`
	Results         []AggregationResult `json:"results,omitempty"`
	Aggregations    []QueryAggregation  `json:"aggregations,omitempty"`
}

func (a TimesliceAggregation) AggregationType() string { return a.Type }

// NestedAggregation applies its sub-aggregations to the elements of an
// array field.
type NestedAggregation struct {
	Type            string             `json:"type"`
	Path            string             `json:"path,omitempty"`
	MatchingResults int64              `json:"matching_results,omitempty"`
	Aggregations    []QueryAggregation `json:"aggregations,omitempty"`
}

func (a NestedAggregation) AggregationType() string { return a.Type }

// FilterAggregation narrows the documents seen by its sub-aggregations.
type FilterAggregation struct {
	Type            string             `json:"type"`
	Match           string             `json:"match,omitempty"`
	MatchingResults int64              `json:"matching_results,omitempty"`
	Aggregations    []QueryAggregation `json:"aggregations,omitempty"`
}

func (a FilterAggregation) AggregationType() string { return a.Type }

// CalculationAggregation is a min, max, sum, average, or unique_count
// over a numeric field. Value is nil when no document has the field.
type CalculationAggregation struct {
	Type            string             `json:"type"`
	Field           string             `json:"field,omitempty"`
	Value           *float64           `json:"value,omitempty"`
	MatchingResults int64              `json:"matching_results,omitempty"`
	Aggregations    []QueryAggregation `json:"aggregations,omitempty"`
}

func (a CalculationAggregation) AggregationType() string { return a.Type }

// TopHitsAggregation returns the best matching documents of each bucket.
type TopHitsAggregation struct {
	Type            string             `json:"type"`
	Size            int64              `json:"size,omitempty"`
	Name            string             `json:"name,omitempty"`
	Hits            *TopHitsResults    `json:"hits,omitempty"`
	MatchingResults int64              `json:"matching_results,omitempty"`
	Aggregations    []QueryAggregation `json:"aggregations,omitempty"`
}

func (a TopHitsAggregation) AggregationType() string { return a.Type }

type TopHitsResults struct {
	MatchingResults int64         `json:"matching_results,omitempty"`
	Hits            []QueryResult `json:"hits,omitempty"`
}

// UnknownAggregation holds an aggregation of a type this package does not
// model, as returned by the service.
type UnknownAggregation struct {
	Type string
	Raw  json.RawMessage
}

func (a UnknownAggregation) AggregationType() string { return a.Type }

func (a UnknownAggregation) MarshalJSON() ([]byte, error) {
	if len(a.Raw) == 0 {
		return json.Marshal(map[string]string{"type": a.Type})
	}
	return a.Raw, nil
}
