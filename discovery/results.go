package discovery

import (
	"encoding/json"
	"maps"
)

// QueryResponse is the result of Query and FederatedQuery.
type QueryResponse struct {
	MatchingResults   int64              `json:"matching_results,omitempty"`
	Results           []QueryResult      `json:"results,omitempty"`
	Aggregations      []QueryAggregation `json:"aggregations,omitempty"`
	Passages          []QueryPassages    `json:"passages,omitempty"`
	DuplicatesRemoved int64              `json:"duplicates_removed,omitempty"`
	SessionToken      string             `json:"session_token,omitempty"`
	RetrievalDetails  *RetrievalDetails  `json:"retrieval_details,omitempty"`
	SuggestedQuery    string             `json:"suggested_query,omitempty"`
}

// RetrievalDetails reports how results were ranked: "untrained",
// "relevancy_training", or "continuous_relevancy_training".
type RetrievalDetails struct {
	DocumentRetrievalStrategy string `json:"document_retrieval_strategy,omitempty"`
}

// QueryResult is one matching document. The document's own fields, which
// depend on the collection, are kept in Fields.
type QueryResult struct {
	ID             string               `json:"id,omitempty"`
	Metadata       map[string]any       `json:"metadata,omitempty"`
	CollectionID   string               `json:"collection_id,omitempty"`
	ResultMetadata *QueryResultMetadata `json:"result_metadata,omitempty"`

	Fields map[string]any `json:"-"`
}

type QueryResultMetadata struct {
	Score      float64  `json:"score"`
	Confidence *float64 `json:"confidence,omitempty"`
}

var queryResultKeys = []string{"id", "metadata", "collection_id", "result_metadata"}

func (r *QueryResult) UnmarshalJSON(data []byte) error {
	type plain QueryResult
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	fields, err := extraFields(data, queryResultKeys)
	if err != nil {
		return err
	}
	p.Fields = fields
	*r = QueryResult(p)
	return nil
}

func (r QueryResult) MarshalJSON() ([]byte, error) {
	type plain QueryResult
	return mergeFields(plain(r), r.Fields)
}

// QueryNoticesResult is one notice document returned by QueryNotices.
type QueryNoticesResult struct {
	QueryResult

	// Code is the HTTP status of the ingestion that raised the notice.
	Code     int64    `json:"code,omitempty"`
	Filename string   `json:"filename,omitempty"`
	FileType string   `json:"file_type,omitempty"`
	SHA1     string   `json:"sha1,omitempty"`
	Notices  []Notice `json:"notices,omitempty"`
}

type noticeResultFields struct {
	Code     int64    `json:"code,omitempty"`
	Filename string   `json:"filename,omitempty"`
	FileType string   `json:"file_type,omitempty"`
	SHA1     string   `json:"sha1,omitempty"`
	Notices  []Notice `json:"notices,omitempty"`
}

var noticeResultKeys = append([]string{"code", "filename", "file_type", "sha1", "notices"}, queryResultKeys...)

func (r *QueryNoticesResult) UnmarshalJSON(data []byte) error {
	type plain QueryResult
	var base plain
	if err := json.Unmarshal(data, &base); err != nil {
		return err
	}
	var n noticeResultFields
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	fields, err := extraFields(data, noticeResultKeys)
	if err != nil {
		return err
	}
	base.Fields = fields
	*r = QueryNoticesResult{
		QueryResult: QueryResult(base),
		Code:        n.Code,
		Filename:    n.Filename,
		FileType:    n.FileType,
		SHA1:        n.SHA1,
		Notices:     n.Notices,
	}
	return nil
}

func (r QueryNoticesResult) MarshalJSON() ([]byte, error) {
	type plain QueryResult
	base, err := mergeFields(plain(r.QueryResult), r.Fields)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(base, &m); err != nil {
		return nil, err
	}
	return mergeFields(noticeResultFields{
		Code:     r.Code,
		Filename: r.Filename,
		FileType: r.FileType,
		SHA1:     r.SHA1,
		Notices:  r.Notices,
	}, m)
}

// extraFields returns the members of the JSON object data that are not
// among known, or nil if there are none.
func extraFields(data []byte, known []string) (map[string]any, error) {
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// mergeFields marshals v and adds fields to the resulting object. Members
// of v win over fields with the same name.
func mergeFields(v any, fields map[string]any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(fields) == 0 {
		return data, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	out := maps.Clone(fields)
	maps.Copy(out, m)
	return json.Marshal(out)
}

// QueryPassages is a passage extracted from a matching document.
type QueryPassages struct {
	DocumentID   string  `json:"document_id,omitempty"`
	PassageScore float64 `json:"passage_score,omitempty"`
	PassageText  string  `json:"passage_text,omitempty"`
	StartOffset  int64   `json:"start_offset,omitempty"`
	EndOffset    int64   `json:"end_offset,omitempty"`
	Field        string  `json:"field,omitempty"`
}

// QueryNoticesResponse is the result of QueryNotices and
// FederatedQueryNotices.
type QueryNoticesResponse struct {
	MatchingResults   int64                `json:"matching_results,omitempty"`
	Results           []QueryNoticesResult `json:"results,omitempty"`
	Aggregations      []QueryAggregation   `json:"aggregations,omitempty"`
	Passages          []QueryPassages      `json:"passages,omitempty"`
	DuplicatesRemoved int64                `json:"duplicates_removed,omitempty"`
}

// QueryEntitiesEntity names an entity in a knowledge graph query.
type QueryEntitiesEntity struct {
	Text  string `json:"text,omitempty"`
	Type  string `json:"type,omitempty"`
	Exact *bool  `json:"exact,omitempty"`
}

// QueryEntitiesContext is text that disambiguates an entity.
type QueryEntitiesContext struct {
	Text string `json:"text,omitempty"`
}

type QueryRelationsFilter struct {
	RelationTypes *QueryFilterType `json:"relation_types,omitempty"`
	EntityTypes   *QueryFilterType `json:"entity_types,omitempty"`
	DocumentIDs   []string         `json:"document_ids,omitempty"`
}

type QueryFilterType struct {
	Exclude []string `json:"exclude,omitempty"`
	Include []string `json:"include,omitempty"`
}

type QueryEntitiesResponse struct {
	Entities []QueryEntitiesResponseItem `json:"entities,omitempty"`
}

type QueryEntitiesResponseItem struct {
	Text     string          `json:"text,omitempty"`
	Type     string          `json:"type,omitempty"`
	Evidence []QueryEvidence `json:"evidence,omitempty"`
}

// QueryEvidence locates the text that supports an entity or relation.
type QueryEvidence struct {
	DocumentID  string                `json:"document_id,omitempty"`
	Field       string                `json:"field,omitempty"`
	StartOffset int64                 `json:"start_offset,omitempty"`
	EndOffset   int64                 `json:"end_offset,omitempty"`
	Entities    []QueryEvidenceEntity `json:"entities,omitempty"`
}

type QueryEvidenceEntity struct {
	Type        string `json:"type,omitempty"`
	Text        string `json:"text,omitempty"`
	StartOffset int64  `json:"start_offset,omitempty"`
	EndOffset   int64  `json:"end_offset,omitempty"`
}

type QueryRelationsResponse struct {
	Relations []QueryRelationsRelationship `json:"relations,omitempty"`
}

type QueryRelationsRelationship struct {
	Type      string                   `json:"type,omitempty"`
	Frequency int64                    `json:"frequency,omitempty"`
	Arguments []QueryRelationsArgument `json:"arguments,omitempty"`
	Evidence  []QueryEvidence          `json:"evidence,omitempty"`
}

type QueryRelationsArgument struct {
	Entities []QueryEntitiesEntity `json:"entities,omitempty"`
}

// Completions are the suggestions returned by GetAutocompletion.
type Completions struct {
	Completions []string `json:"completions,omitempty"`
}
