package discovery

import (
	"context"
	"net/http"

	"github.com/broady/watson"
)

const (
	trainingTemplate        = collectionTemplate + "/training_data"
	trainingQueryTemplate   = trainingTemplate + "/{query_id}"
	trainingExampleTemplate = trainingQueryTemplate + "/examples/{example_id}"
)

// ListTrainingData returns the training queries of a collection.
func (s *Service) ListTrainingData(ctx context.Context, opts *CollectionOptions) (*TrainingDataSet, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodGet, trainingTemplate, opts.path())
	return invoke[TrainingDataSet](ctx, s, "list_training_data", b, opts.Headers)
}

// AddTrainingDataOptions are the arguments of AddTrainingData.
type AddTrainingDataOptions struct {
	EnvironmentID        string            `url:"-" path:"environment_id" json:"-" validate:"required"`
	CollectionID         string            `url:"-" path:"collection_id" json:"-" validate:"required"`
	NaturalLanguageQuery string            `url:"-" json:"natural_language_query,omitempty"`
	Filter               string            `url:"-" json:"filter,omitempty"`
	Examples             []TrainingExample `url:"-" json:"examples,omitempty"`
	Headers              map[string]string `url:"-" json:"-"`
}

// AddTrainingData adds a training query with rated examples.
func (s *Service) AddTrainingData(ctx context.Context, opts *AddTrainingDataOptions) (*TrainingQuery, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodPost, trainingTemplate, collectionPath(opts.EnvironmentID, opts.CollectionID)).
		SetJSONBody(opts)
	return invoke[TrainingQuery](ctx, s, "add_training_data", b, opts.Headers)
}

// DeleteAllTrainingData deletes every training query of a collection.
func (s *Service) DeleteAllTrainingData(ctx context.Context, opts *CollectionOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	b := s.newRequest(http.MethodDelete, trainingTemplate, opts.path())
	return s.send(ctx, "delete_all_training_data", b, opts.Headers)
}

// TrainingQueryOptions identify a training query.
type TrainingQueryOptions struct {
	EnvironmentID string            `url:"-" path:"environment_id" validate:"required"`
	CollectionID  string            `url:"-" path:"collection_id" validate:"required"`
	QueryID       string            `url:"-" path:"query_id" validate:"required"`
	Headers       map[string]string `url:"-"`
}

func (o *TrainingQueryOptions) path() map[string]string {
	p := collectionPath(o.EnvironmentID, o.CollectionID)
	p["query_id"] = o.QueryID
	return p
}

// GetTrainingData returns a training query and its examples.
func (s *Service) GetTrainingData(ctx context.Context, opts *TrainingQueryOptions) (*TrainingQuery, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodGet, trainingQueryTemplate, opts.path())
	return invoke[TrainingQuery](ctx, s, "get_training_data", b, opts.Headers)
}

// DeleteTrainingData deletes a training query and its examples.
func (s *Service) DeleteTrainingData(ctx context.Context, opts *TrainingQueryOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	b := s.newRequest(http.MethodDelete, trainingQueryTemplate, opts.path())
	return s.send(ctx, "delete_training_data", b, opts.Headers)
}

// ListTrainingExamples returns the examples of a training query.
func (s *Service) ListTrainingExamples(ctx context.Context, opts *TrainingQueryOptions) (*TrainingExampleList, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodGet, trainingQueryTemplate+"/examples", opts.path())
	return invoke[TrainingExampleList](ctx, s, "list_training_examples", b, opts.Headers)
}

// CreateTrainingExampleOptions are the arguments of CreateTrainingExample.
type CreateTrainingExampleOptions struct {
	EnvironmentID  string            `url:"-" path:"environment_id" json:"-" validate:"required"`
	CollectionID   string            `url:"-" path:"collection_id" json:"-" validate:"required"`
	QueryID        string            `url:"-" path:"query_id" json:"-" validate:"required"`
	DocumentID     string            `url:"-" json:"document_id,omitempty"`
	CrossReference string            `url:"-" json:"cross_reference,omitempty"`
	Relevance      *int64            `url:"-" json:"relevance,omitempty"`
	Headers        map[string]string `url:"-" json:"-"`
}

// CreateTrainingExample adds a rated document to a training query.
func (s *Service) CreateTrainingExample(ctx context.Context, opts *CreateTrainingExampleOptions) (*TrainingExample, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	q := TrainingQueryOptions{EnvironmentID: opts.EnvironmentID, CollectionID: opts.CollectionID, QueryID: opts.QueryID}
	b := s.newRequest(http.MethodPost, trainingQueryTemplate+"/examples", q.path()).
		SetJSONBody(opts)
	return invoke[TrainingExample](ctx, s, "create_training_example", b, opts.Headers)
}

// TrainingExampleOptions identify a training example.
type TrainingExampleOptions struct {
	EnvironmentID string            `url:"-" path:"environment_id" validate:"required"`
	CollectionID  string            `url:"-" path:"collection_id" validate:"required"`
	QueryID       string            `url:"-" path:"query_id" validate:"required"`
	ExampleID     string            `url:"-" path:"example_id" validate:"required"`
	Headers       map[string]string `url:"-"`
}

func (o *TrainingExampleOptions) path() map[string]string {
	q := TrainingQueryOptions{EnvironmentID: o.EnvironmentID, CollectionID: o.CollectionID, QueryID: o.QueryID}
	p := q.path()
	p["example_id"] = o.ExampleID
	return p
}

// GetTrainingExample returns a training example.
func (s *Service) GetTrainingExample(ctx context.Context, opts *TrainingExampleOptions) (*TrainingExample, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodGet, trainingExampleTemplate, opts.path())
	return invoke[TrainingExample](ctx, s, "get_training_example", b, opts.Headers)
}

// DeleteTrainingExample removes a training example.
func (s *Service) DeleteTrainingExample(ctx context.Context, opts *TrainingExampleOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	b := s.newRequest(http.MethodDelete, trainingExampleTemplate, opts.path())
	return s.send(ctx, "delete_training_example", b, opts.Headers)
}

// UpdateTrainingExampleOptions are the arguments of UpdateTrainingExample.
type UpdateTrainingExampleOptions struct {
	EnvironmentID  string            `url:"-" path:"environment_id" json:"-" validate:"required"`
	CollectionID   string            `url:"-" path:"collection_id" json:"-" validate:"required"`
	QueryID        string            `url:"-" path:"query_id" json:"-" validate:"required"`
	ExampleID      string            `url:"-" path:"example_id" json:"-" validate:"required"`
	CrossReference string            `url:"-" json:"cross_reference,omitempty"`
	Relevance      *int64            `url:"-" json:"relevance,omitempty"`
	Headers        map[string]string `url:"-" json:"-"`
}

// UpdateTrainingExample changes the relevance or cross reference of a
// training example.
func (s *Service) UpdateTrainingExample(ctx context.Context, opts *UpdateTrainingExampleOptions) (*TrainingExample, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	id := TrainingExampleOptions{
		EnvironmentID: opts.EnvironmentID,
		CollectionID:  opts.CollectionID,
		QueryID:       opts.QueryID,
		ExampleID:     opts.ExampleID,
	}
	b := s.newRequest(http.MethodPut, trainingExampleTemplate, id.path()).
		SetJSONBody(opts)
	return invoke[TrainingExample](ctx, s, "update_training_example", b, opts.Headers)
}
