package speechtotext

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/broady/watson"
)

// GetModelOptions are the arguments of GetModel.
type GetModelOptions struct {
	ModelID string            `url:"-" path:"model_id" validate:"required"`
	Headers map[string]string `url:"-"`
}

// GetModel returns information about a single base model.
func (s *Service) GetModel(ctx context.Context, opts *GetModelOptions) (*SpeechModel, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.NewRequest(http.MethodGet).
		ResolvePath("/v1/models/{model_id}", map[string]string{"model_id": opts.ModelID})
	return invoke[SpeechModel](ctx, s, "get_model", b, opts.Headers)
}

// ListModelsOptions are the arguments of ListModels.
type ListModelsOptions struct {
	Headers map[string]string `url:"-"`
}

// ListModels lists the base models available for recognition.
func (s *Service) ListModels(ctx context.Context, opts *ListModelsOptions) (*SpeechModels, *watson.DetailedResponse, error) {
	if opts == nil {
		opts = &ListModelsOptions{}
	}
	b := s.NewRequest(http.MethodGet).ResolvePath("/v1/models", nil)
	return invoke[SpeechModels](ctx, s, "list_models", b, opts.Headers)
}

// RecognitionParams are the recognition settings shared by Recognize,
// CreateJob, and RecognizeUsingWebsocket.
type RecognitionParams struct {
	// Model is the base model, e.g. "en-US_BroadbandModel".
	Model                     string     `url:"model,omitempty"`
	LanguageCustomizationID   string     `url:"language_customization_id,omitempty"`
	AcousticCustomizationID   string     `url:"acoustic_customization_id,omitempty"`
	BaseModelVersion          string     `url:"base_model_version,omitempty"`
	CustomizationWeight       *float64   `url:"customization_weight,omitempty" validate:"omitempty,gte=0,lte=1"`
	InactivityTimeout         *int64     `url:"inactivity_timeout,omitempty"`
	Keywords                  watson.CSV `url:"keywords,omitempty"`
	KeywordsThreshold         *float64   `url:"keywords_threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
	MaxAlternatives           *int64     `url:"max_alternatives,omitempty"`
	WordAlternativesThreshold *float64   `url:"word_alternatives_threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
	WordConfidence            *bool      `url:"word_confidence,omitempty"`
	Timestamps                *bool      `url:"timestamps,omitempty"`
	ProfanityFilter           *bool      `url:"profanity_filter,omitempty"`
	SmartFormatting           *bool      `url:"smart_formatting,omitempty"`
	SpeakerLabels             *bool      `url:"speaker_labels,omitempty"`
	GrammarName               string     `url:"grammar_name,omitempty"`
	Redaction                 *bool      `url:"redaction,omitempty"`

	// Deprecated: use LanguageCustomizationID.
	CustomizationID string `url:"customization_id,omitempty"`
}

// RecognizeOptions are the arguments of Recognize.
type RecognizeOptions struct {
	Audio io.Reader `url:"-" body:"audio" validate:"required"`

	// ContentType is the audio format, e.g. "audio/flac" or
	// "audio/l16;rate=16000". If empty it is sniffed from the audio.
	ContentType string `url:"-"`

	RecognitionParams
	Headers map[string]string `url:"-"`
}

// Recognize sends audio and returns its transcription in a single
// request. Audio longer than a few minutes is better served by CreateJob
// or RecognizeUsingWebsocket.
func (s *Service) Recognize(ctx context.Context, opts *RecognizeOptions) (*SpeechRecognitionResults, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	audio, contentType, err := audioBody(opts.Audio, opts.ContentType)
	if err != nil {
		return nil, nil, err
	}
	b := s.NewRequest(http.MethodPost).
		ResolvePath("/v1/recognize", nil).
		AddQueryStruct(&opts.RecognitionParams).
		SetBody(audio, contentType)
	return invoke[SpeechRecognitionResults](ctx, s, "recognize", b, opts.Headers)
}

// audioBody returns the content type to send with audio, sniffing it when
// not given. The returned reader replays any bytes read while sniffing.
func audioBody(audio io.Reader, contentType string) (io.Reader, string, error) {
	if contentType != "" {
		return audio, contentType, nil
	}
	br := bufio.NewReaderSize(audio, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, "", err
	}
	return br, DetectContentType(head), nil
}

// Events reported to a job callback URL.
const (
	EventStarted              = "recognitions.started"
	EventCompleted            = "recognitions.completed"
	EventCompletedWithResults = "recognitions.completed_with_results"
	EventFailed               = "recognitions.failed"
)

// CreateJobOptions are the arguments of CreateJob.
type CreateJobOptions struct {
	Audio       io.Reader `url:"-" body:"audio" validate:"required"`
	ContentType string    `url:"-"`

	// CallbackURL must have been whitelisted with RegisterCallback.
	CallbackURL string `url:"callback_url,omitempty"`

	// Events is a comma-separated subset of the Event constants.
	Events     string `url:"events,omitempty"`
	UserToken  string `url:"user_token,omitempty"`
	ResultsTTL *int64 `url:"results_ttl,omitempty"`

	RecognitionParams
	Headers map[string]string `url:"-"`
}

// CreateJob submits audio for asynchronous recognition. Poll the job with
// CheckJob, or register a callback URL to be notified.
func (s *Service) CreateJob(ctx context.Context, opts *CreateJobOptions) (*RecognitionJob, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	audio, contentType, err := audioBody(opts.Audio, opts.ContentType)
	if err != nil {
		return nil, nil, err
	}
	b := s.NewRequest(http.MethodPost).
		ResolvePath("/v1/recognitions", nil).
		AddQueryStruct(opts).
		SetBody(audio, contentType)
	return invoke[RecognitionJob](ctx, s, "create_job", b, opts.Headers)
}

// CheckJobOptions are the arguments of CheckJob.
type CheckJobOptions struct {
	ID      string            `url:"-" path:"id" validate:"required"`
	Headers map[string]string `url:"-"`
}

// CheckJob returns the status of a job, with its results once completed.
func (s *Service) CheckJob(ctx context.Context, opts *CheckJobOptions) (*RecognitionJob, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.NewRequest(http.MethodGet).
		ResolvePath("/v1/recognitions/{id}", map[string]string{"id": opts.ID})
	return invoke[RecognitionJob](ctx, s, "check_job", b, opts.Headers)
}

// CheckJobsOptions are the arguments of CheckJobs.
type CheckJobsOptions struct {
	Headers map[string]string `url:"-"`
}

// CheckJobs lists the most recent jobs of the caller.
func (s *Service) CheckJobs(ctx context.Context, opts *CheckJobsOptions) (*RecognitionJobs, *watson.DetailedResponse, error) {
	if opts == nil {
		opts = &CheckJobsOptions{}
	}
	b := s.NewRequest(http.MethodGet).ResolvePath("/v1/recognitions", nil)
	return invoke[RecognitionJobs](ctx, s, "check_jobs", b, opts.Headers)
}

// DeleteJobOptions are the arguments of DeleteJob.
type DeleteJobOptions struct {
	ID      string            `url:"-" path:"id" validate:"required"`
	Headers map[string]string `url:"-"`
}

// DeleteJob deletes a job and its results.
func (s *Service) DeleteJob(ctx context.Context, opts *DeleteJobOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	b := s.NewRequest(http.MethodDelete).
		ResolvePath("/v1/recognitions/{id}", map[string]string{"id": opts.ID})
	return s.send(ctx, "delete_job", b, opts.Headers)
}

// RegisterCallbackOptions are the arguments of RegisterCallback.
type RegisterCallbackOptions struct {
	CallbackURL string            `url:"callback_url" validate:"required"`
	UserSecret  string            `url:"user_secret,omitempty"`
	Headers     map[string]string `url:"-"`
}

// RegisterCallback whitelists a callback URL for use with CreateJob.
func (s *Service) RegisterCallback(ctx context.Context, opts *RegisterCallbackOptions) (*RegisterStatus, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.NewRequest(http.MethodPost).
		ResolvePath("/v1/register_callback", nil).
		AddQueryStruct(opts)
	return invoke[RegisterStatus](ctx, s, "register_callback", b, opts.Headers)
}

// UnregisterCallbackOptions are the arguments of UnregisterCallback.
type UnregisterCallbackOptions struct {
	CallbackURL string            `url:"callback_url" validate:"required"`
	Headers     map[string]string `url:"-"`
}

// UnregisterCallback removes a callback URL from the whitelist.
func (s *Service) UnregisterCallback(ctx context.Context, opts *UnregisterCallbackOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	b := s.NewRequest(http.MethodPost).
		ResolvePath("/v1/unregister_callback", nil).
		AddQueryStruct(opts)
	return s.send(ctx, "unregister_callback", b, opts.Headers)
}

// DeleteUserDataOptions are the arguments of DeleteUserData.
type DeleteUserDataOptions struct {
	CustomerID string            `url:"customer_id" validate:"required"`
	Headers    map[string]string `url:"-"`
}

// DeleteUserData deletes all data associated with a customer ID, as set
// with the X-Watson-Metadata header.
func (s *Service) DeleteUserData(ctx context.Context, opts *DeleteUserDataOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	b := s.NewRequest(http.MethodDelete).
		ResolvePath("/v1/user_data", nil).
		AddQueryStruct(opts)
	return s.send(ctx, "delete_user_data", b, opts.Headers)
}
