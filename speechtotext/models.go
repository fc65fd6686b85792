package speechtotext

import (
	"encoding/json"
	"fmt"
)

// SpeechModel describes one base model available for recognition.
type SpeechModel struct {
	Name              string            `json:"name" validate:"required"`
	Language          string            `json:"language" validate:"required"`
	Rate              int64             `json:"rate"`
	URL               string            `json:"url" validate:"required"`
	SupportedFeatures SupportedFeatures `json:"supported_features"`
	Description       string            `json:"description"`
}

// SupportedFeatures lists the optional capabilities of a model.
type SupportedFeatures struct {
	CustomLanguageModel bool `json:"custom_language_model"`
	SpeakerLabels       bool `json:"speaker_labels"`
}

// SpeechModels is the response of ListModels.
type SpeechModels struct {
	Models []SpeechModel `json:"models" validate:"required,dive"`
}

// SpeechRecognitionResults is one recognition response: the complete
// transcript of a Recognize call, or one interim or final message of a
// websocket session.
type SpeechRecognitionResults struct {
	Results           []SpeechRecognitionResult `json:"results,omitempty" validate:"dive"`
	ResultIndex       int64                     `json:"result_index,omitempty"`
	SpeakerLabels     []SpeakerLabelsResult     `json:"speaker_labels,omitempty"`
	ProcessingMetrics *ProcessingMetrics        `json:"processing_metrics,omitempty"`
	AudioMetrics      *AudioMetrics             `json:"audio_metrics,omitempty"`
	Warnings          []string                  `json:"warnings,omitempty"`
}

// Transcript joins the best alternative of every final result.
func (r *SpeechRecognitionResults) Transcript() string {
	var out string
	for _, res := range r.Results {
		if !res.Final || len(res.Alternatives) == 0 {
			continue
		}
		out += res.Alternatives[0].Transcript
	}
	return out
}

// SpeechRecognitionResult is the recognition of one utterance.
type SpeechRecognitionResult struct {
	Final            bool                           `json:"final"`
	Alternatives     []SpeechRecognitionAlternative `json:"alternatives" validate:"required,dive"`
	KeywordsResult   map[string][]KeywordResult     `json:"keywords_result,omitempty"`
	WordAlternatives []WordAlternativeResults       `json:"word_alternatives,omitempty"`
	EndOfUtterance   string                         `json:"end_of_utterance,omitempty"`
}

// End of utterance reasons.
const (
	EndOfUtteranceEndOfData = "end_of_data"
	EndOfUtteranceFullStop  = "full_stop"
	EndOfUtteranceReset     = "reset"
	EndOfUtteranceSilence   = "silence"
)

// SpeechRecognitionAlternative is one candidate transcript.
type SpeechRecognitionAlternative struct {
	Transcript     string           `json:"transcript"`
	Confidence     *float64         `json:"confidence,omitempty"`
	Timestamps     []WordTimestamp  `json:"timestamps,omitempty"`
	WordConfidence []WordConfidence `json:"word_confidence,omitempty"`
}

// WordTimestamp is the time range of one recognized word. The service
// sends it as a ["word", start, end] array.
type WordTimestamp struct {
	Word      string
	StartTime float64
	EndTime   float64
}

func (w *WordTimestamp) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("word timestamp: expected 3 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &w.Word); err != nil {
		return fmt.Errorf("word timestamp word: %w", err)
	}
	if err := json.Unmarshal(raw[1], &w.StartTime); err != nil {
		return fmt.Errorf("word timestamp start: %w", err)
	}
	if err := json.Unmarshal(raw[2], &w.EndTime); err != nil {
		return fmt.Errorf("word timestamp end: %w", err)
	}
	return nil
}

func (w WordTimestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{w.Word, w.StartTime, w.EndTime})
}

// WordConfidence is the confidence of one recognized word. The service
// sends it as a ["word", confidence] array.
type WordConfidence struct {
	Word       string
	Confidence float64
}

func (w *WordConfidence) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("word confidence: expected 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &w.Word); err != nil {
		return fmt.Errorf("word confidence word: %w", err)
	}
	if err := json.Unmarshal(raw[1], &w.Confidence); err != nil {
		return fmt.Errorf("word confidence value: %w", err)
	}
	return nil
}

func (w WordConfidence) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{w.Word, w.Confidence})
}

// KeywordResult is one match of a requested keyword.
type KeywordResult struct {
	NormalizedText string  `json:"normalized_text"`
	StartTime      float64 `json:"start_time"`
	EndTime        float64 `json:"end_time"`
	Confidence     float64 `json:"confidence"`
}

// WordAlternativeResults holds the alternative words for a time range.
type WordAlternativeResults struct {
	StartTime    float64                 `json:"start_time"`
	EndTime      float64                 `json:"end_time"`
	Alternatives []WordAlternativeResult `json:"alternatives" validate:"required"`
}

// WordAlternativeResult is one alternative word hypothesis.
type WordAlternativeResult struct {
	Confidence float64 `json:"confidence"`
	Word       string  `json:"word"`
}

// SpeakerLabelsResult attributes a time range to a speaker.
type SpeakerLabelsResult struct {
	From       float64 `json:"from"`
	To         float64 `json:"to"`
	Speaker    int64   `json:"speaker"`
	Confidence float64 `json:"confidence"`
	Final      bool    `json:"final"`
}

// ProcessingMetrics reports how far the service has processed the audio.
type ProcessingMetrics struct {
	ProcessedAudio                  ProcessedAudio `json:"processed_audio"`
	WallClockSinceFirstByteReceived float64        `json:"wall_clock_since_first_byte_received"`
	Periodic                        bool           `json:"periodic"`
}

// ProcessedAudio reports audio progress in seconds.
type ProcessedAudio struct {
	Received      float64 `json:"received"`
	SeenByEngine  float64 `json:"seen_by_engine"`
	Transcription float64 `json:"transcription"`
	SpeakerLabels float64 `json:"speaker_labels"`
}

// AudioMetrics describes signal characteristics of the input audio.
type AudioMetrics struct {
	SamplingInterval float64             `json:"sampling_interval"`
	Accumulated      AudioMetricsDetails `json:"accumulated"`
}

// AudioMetricsDetails are the metrics accumulated so far.
type AudioMetricsDetails struct {
	Final               bool                       `json:"final"`
	EndTime             float64                    `json:"end_time"`
	SignalToNoiseRatio  *float64                   `json:"signal_to_noise_ratio,omitempty"`
	SpeechRatio         float64                    `json:"speech_ratio"`
	HighFrequencyLoss   float64                    `json:"high_frequency_loss"`
	DirectCurrentOffset []AudioMetricsHistogramBin `json:"direct_current_offset"`
	ClippingRate        []AudioMetricsHistogramBin `json:"clipping_rate"`
	SpeechLevel         []AudioMetricsHistogramBin `json:"speech_level"`
	NonSpeechLevel      []AudioMetricsHistogramBin `json:"non_speech_level"`
}

// AudioMetricsHistogramBin is one bin of an audio metric histogram.
type AudioMetricsHistogramBin struct {
	Begin float64 `json:"begin"`
	End   float64 `json:"end"`
	Count int64   `json:"count"`
}

// Recognition job statuses.
const (
	JobStatusWaiting    = "waiting"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// RecognitionJob is an asynchronous recognition request.
type RecognitionJob struct {
	ID        string                     `json:"id" validate:"required"`
	Status    string                     `json:"status" validate:"required"`
	Created   string                     `json:"created" validate:"required"`
	Updated   string                     `json:"updated,omitempty"`
	URL       string                     `json:"url,omitempty"`
	UserToken string                     `json:"user_token,omitempty"`
	Results   []SpeechRecognitionResults `json:"results,omitempty"`
	Warnings  []string                   `json:"warnings,omitempty"`
}

// Done reports whether the job reached a terminal status.
func (j *RecognitionJob) Done() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}

// RecognitionJobs is the response of CheckJobs.
type RecognitionJobs struct {
	Recognitions []RecognitionJob `json:"recognitions" validate:"required,dive"`
}

// RegisterStatus is the response of RegisterCallback.
type RegisterStatus struct {
	Status string `json:"status" validate:"required"`
	URL    string `json:"url" validate:"required"`
}

// Customization statuses shared by language and acoustic models.
const (
	ModelStatusPending   = "pending"
	ModelStatusReady     = "ready"
	ModelStatusTraining  = "training"
	ModelStatusAvailable = "available"
	ModelStatusUpgrading = "upgrading"
	ModelStatusFailed    = "failed"
)

// LanguageModel is a custom language model.
type LanguageModel struct {
	CustomizationID string   `json:"customization_id" validate:"required"`
	Created         string   `json:"created,omitempty"`
	Updated         string   `json:"updated,omitempty"`
	Language        string   `json:"language,omitempty"`
	Dialect         string   `json:"dialect,omitempty"`
	Versions        []string `json:"versions,omitempty"`
	Owner           string   `json:"owner,omitempty"`
	Name            string   `json:"name,omitempty"`
	Description     string   `json:"description,omitempty"`
	BaseModelName   string   `json:"base_model_name,omitempty"`
	Status          string   `json:"status,omitempty"`
	Progress        int64    `json:"progress,omitempty"`
	Error           string   `json:"error,omitempty"`
	Warnings        string   `json:"warnings,omitempty"`
}

// LanguageModels is the response of ListLanguageModels.
type LanguageModels struct {
	Customizations []LanguageModel `json:"customizations" validate:"required,dive"`
}

// AcousticModel is a custom acoustic model.
type AcousticModel struct {
	CustomizationID string   `json:"customization_id" validate:"required"`
	Created         string   `json:"created,omitempty"`
	Updated         string   `json:"updated,omitempty"`
	Language        string   `json:"language,omitempty"`
	Versions        []string `json:"versions,omitempty"`
	Owner           string   `json:"owner,omitempty"`
	Name            string   `json:"name,omitempty"`
	Description     string   `json:"description,omitempty"`
	BaseModelName   string   `json:"base_model_name,omitempty"`
	Status          string   `json:"status,omitempty"`
	Progress        int64    `json:"progress,omitempty"`
	Warnings        string   `json:"warnings,omitempty"`
}

// AcousticModels is the response of ListAcousticModels.
type AcousticModels struct {
	Customizations []AcousticModel `json:"customizations" validate:"required,dive"`
}

// Corpus statuses.
const (
	CorpusStatusAnalyzed       = "analyzed"
	CorpusStatusBeingProcessed = "being_processed"
	CorpusStatusUndetermined   = "undetermined"
)

// Corpus is a text corpus added to a language model.
type Corpus struct {
	Name                 string `json:"name" validate:"required"`
	TotalWords           int64  `json:"total_words"`
	OutOfVocabularyWords int64  `json:"out_of_vocabulary_words"`
	Status               string `json:"status" validate:"required"`
	Error                string `json:"error,omitempty"`
}

// Corpora is the response of ListCorpora.
type Corpora struct {
	Corpora []Corpus `json:"corpora" validate:"required,dive"`
}

// Word is a custom word in a language model's words resource.
type Word struct {
	Word       string      `json:"word" validate:"required"`
	SoundsLike []string    `json:"sounds_like" validate:"required"`
	DisplayAs  string      `json:"display_as"`
	Count      int64       `json:"count"`
	Source     []string    `json:"source" validate:"required"`
	Error      []WordError `json:"error,omitempty"`
}

// WordError reports a problem with one element of a custom word.
type WordError struct {
	Element string `json:"element"`
}

// Words is the response of ListWords.
type Words struct {
	Words []Word `json:"words" validate:"required,dive"`
}

// CustomWord is a word to add to a language model.
type CustomWord struct {
	Word       string   `json:"word,omitempty"`
	SoundsLike []string `json:"sounds_like,omitempty"`
	DisplayAs  string   `json:"display_as,omitempty"`
}

// Grammar is a grammar added to a language model.
type Grammar struct {
	Name                 string `json:"name" validate:"required"`
	OutOfVocabularyWords int64  `json:"out_of_vocabulary_words"`
	Status               string `json:"status" validate:"required"`
	Error                string `json:"error,omitempty"`
}

// Grammars is the response of ListGrammars.
type Grammars struct {
	Grammars []Grammar `json:"grammars" validate:"required,dive"`
}

// Audio resource statuses.
const (
	AudioStatusOK             = "ok"
	AudioStatusBeingProcessed = "being_processed"
	AudioStatusInvalid        = "invalid"
)

// AudioResource is an audio file or archive added to an acoustic model.
type AudioResource struct {
	Duration float64      `json:"duration"`
	Name     string       `json:"name" validate:"required"`
	Details  AudioDetails `json:"details"`
	Status   string       `json:"status" validate:"required"`
}

// AudioDetails describes the format of an audio resource.
type AudioDetails struct {
	Type        string `json:"type,omitempty"`
	Codec       string `json:"codec,omitempty"`
	Frequency   int64  `json:"frequency,omitempty"`
	Compression string `json:"compression,omitempty"`
}

// AudioListing is the response of GetAudio. For an archive, Container
// describes the archive and Audio lists its files.
type AudioListing struct {
	Duration  float64         `json:"duration,omitempty"`
	Name      string          `json:"name,omitempty"`
	Details   *AudioDetails   `json:"details,omitempty"`
	Status    string          `json:"status,omitempty"`
	Container *AudioResource  `json:"container,omitempty"`
	Audio     []AudioResource `json:"audio,omitempty"`
}

// AudioResources is the response of ListAudio.
type AudioResources struct {
	TotalMinutesOfAudio float64         `json:"total_minutes_of_audio"`
	Audio               []AudioResource `json:"audio" validate:"required,dive"`
}

// TrainingResponse is the response of TrainLanguageModel and
// TrainAcousticModel when the service reports warnings.
type TrainingResponse struct {
	Warnings []TrainingWarning `json:"warnings,omitempty"`
}

// TrainingWarning is a non-fatal problem found while training.
type TrainingWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
