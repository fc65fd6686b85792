package speechtotext

import (
	"context"
	"io"
	"net/http"

	"github.com/broady/watson"
)

// CreateAcousticModelOptions are the arguments of CreateAcousticModel.
type CreateAcousticModelOptions struct {
	Name          string            `url:"-" json:"name" validate:"required"`
	BaseModelName string            `url:"-" json:"base_model_name" validate:"required"`
	Description   string            `url:"-" json:"description,omitempty"`
	Headers       map[string]string `url:"-" json:"-"`
}

// CreateAcousticModel creates a custom acoustic model for a base model.
func (s *Service) CreateAcousticModel(ctx context.Context, opts *CreateAcousticModelOptions) (*AcousticModel, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.NewRequest(http.MethodPost).
		ResolvePath("/v1/acoustic_customizations", nil).
		SetJSONBody(opts)
	return invoke[AcousticModel](ctx, s, "create_acoustic_model", b, opts.Headers)
}

// DeleteAcousticModel deletes a custom acoustic model.
func (s *Service) DeleteAcousticModel(ctx context.Context, opts *CustomizationOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	b := s.NewRequest(http.MethodDelete).
		ResolvePath("/v1/acoustic_customizations/{customization_id}", opts.path())
	return s.send(ctx, "delete_acoustic_model", b, opts.Headers)
}

// GetAcousticModel returns a custom acoustic model.
func (s *Service) GetAcousticModel(ctx context.Context, opts *CustomizationOptions) (*AcousticModel, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.NewRequest(http.MethodGet).
		ResolvePath("/v1/acoustic_customizations/{customization_id}", opts.path())
	return invoke[AcousticModel](ctx, s, "get_acoustic_model", b, opts.Headers)
}

// ListAcousticModels lists the custom acoustic models owned by the caller.
func (s *Service) ListAcousticModels(ctx context.Context, opts *ListCustomizationsOptions) (*AcousticModels, *watson.DetailedResponse, error) {
	if opts == nil {
		opts = &ListCustomizationsOptions{}
	}
	b := s.NewRequest(http.MethodGet).
		ResolvePath("/v1/acoustic_customizations", nil).
		AddQueryStruct(opts)
	return invoke[AcousticModels](ctx, s, "list_acoustic_models", b, opts.Headers)
}

// ResetAcousticModel removes all audio resources from a custom acoustic model.
func (s *Service) ResetAcousticModel(ctx context.Context, opts *CustomizationOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	b := s.NewRequest(http.MethodPost).
		ResolvePath("/v1/acoustic_customizations/{customization_id}/reset", opts.path())
	return s.send(ctx, "reset_acoustic_model", b, opts.Headers)
}

// TrainAcousticModelOptions are the arguments of TrainAcousticModel.
type TrainAcousticModelOptions struct {
	CustomizationID string `url:"-" path:"customization_id" validate:"required"`

	// CustomLanguageModelID trains against a custom language model that
	// shares the acoustic model's base model.
	CustomLanguageModelID string            `url:"custom_language_model_id,omitempty"`
	Headers               map[string]string `url:"-"`
}

// TrainAcousticModel starts training a custom acoustic model on its audio
// resources.
func (s *Service) TrainAcousticModel(ctx context.Context, opts *TrainAcousticModelOptions) (*TrainingResponse, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.NewRequest(http.MethodPost).
		ResolvePath("/v1/acoustic_customizations/{customization_id}/train", map[string]string{"customization_id": opts.CustomizationID}).
		AddQueryStruct(opts)
	return invoke[TrainingResponse](ctx, s, "train_acoustic_model", b, opts.Headers)
}

// UpgradeAcousticModelOptions are the arguments of UpgradeAcousticModel.
type UpgradeAcousticModelOptions struct {
	CustomizationID       string            `url:"-" path:"customization_id" validate:"required"`
	CustomLanguageModelID string            `url:"custom_language_model_id,omitempty"`
	Force                 *bool             `url:"force,omitempty"`
	Headers               map[string]string `url:"-"`
}

// UpgradeAcousticModel upgrades a custom acoustic model to the latest
// version of its base model.
func (s *Service) UpgradeAcousticModel(ctx context.Context, opts *UpgradeAcousticModelOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	b := s.NewRequest(http.MethodPost).
		ResolvePath("/v1/acoustic_customizations/{customization_id}/upgrade_model", map[string]string{"customization_id": opts.CustomizationID}).
		AddQueryStruct(opts)
	return s.send(ctx, "upgrade_acoustic_model", b, opts.Headers)
}

// Archive content types for AddAudioOptions.ContentType.
const (
	ContentTypeZip  = "application/zip"
	ContentTypeGzip = "application/gzip"
)

// AddAudioOptions are the arguments of AddAudio.
type AddAudioOptions struct {
	CustomizationID string    `url:"-" path:"customization_id" validate:"required"`
	AudioName       string    `url:"-" path:"audio_name" validate:"required"`
	AudioResource   io.Reader `url:"-" body:"audio_resource" validate:"required"`

	// ContentType is the audio format, or ContentTypeZip / ContentTypeGzip
	// for an archive of audio files.
	ContentType string `url:"-" header:"Content-Type"`

	// ContainedContentType is the format of the files inside an archive.
	ContainedContentType string            `url:"-" header:"Contained-Content-Type"`
	AllowOverwrite       *bool             `url:"allow_overwrite,omitempty"`
	Headers              map[string]string `url:"-"`
}

// AddAudio adds an audio file or archive to a custom acoustic model.
func (s *Service) AddAudio(ctx context.Context, opts *AddAudioOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	audio, contentType, err := audioBody(opts.AudioResource, opts.ContentType)
	if err != nil {
		return nil, err
	}
	b := s.NewRequest(http.MethodPost).
		ResolvePath("/v1/acoustic_customizations/{customization_id}/audio/{audio_name}", map[string]string{
			"customization_id": opts.CustomizationID,
			"audio_name":       opts.AudioName,
		}).
		AddQueryStruct(opts).
		AddHeader("Contained-Content-Type", opts.ContainedContentType).
		SetBody(audio, contentType)
	return s.send(ctx, "add_audio", b, opts.Headers)
}

// AudioOptions identify one audio resource of a custom acoustic model.
type AudioOptions struct {
	CustomizationID string            `url:"-" path:"customization_id" validate:"required"`
	AudioName       string            `url:"-" path:"audio_name" validate:"required"`
	Headers         map[string]string `url:"-"`
}

func (o *AudioOptions) path() map[string]string {
	return map[string]string{"customization_id": o.CustomizationID, "audio_name": o.AudioName}
}

// DeleteAudio removes an audio resource.
func (s *Service) DeleteAudio(ctx context.Context, opts *AudioOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	b := s.NewRequest(http.MethodDelete).
		ResolvePath("/v1/acoustic_customizations/{customization_id}/audio/{audio_name}", opts.path())
	return s.send(ctx, "delete_audio", b, opts.Headers)
}

// GetAudio returns an audio resource. For an archive the listing includes
// each contained file.
func (s *Service) GetAudio(ctx context.Context, opts *AudioOptions) (*AudioListing, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.NewRequest(http.MethodGet).
		ResolvePath("/v1/acoustic_customizations/{customization_id}/audio/{audio_name}", opts.path())
	return invoke[AudioListing](ctx, s, "get_audio", b, opts.Headers)
}

// ListAudio lists the audio resources of a custom acoustic model.
func (s *Service) ListAudio(ctx context.Context, opts *CustomizationOptions) (*AudioResources, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.NewRequest(http.MethodGet).
		ResolvePath("/v1/acoustic_customizations/{customization_id}/audio", opts.path())
	return invoke[AudioResources](ctx, s, "list_audio", b, opts.Headers)
}
