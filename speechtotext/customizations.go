package speechtotext

import (
	"context"
	"io"
	"net/http"

	"github.com/broady/watson"
)

// CreateLanguageModelOptions are the arguments of CreateLanguageModel.
type CreateLanguageModelOptions struct {
	Name          string            `url:"-" json:"name" validate:"required"`
	BaseModelName string            `url:"-" json:"base_model_name" validate:"required"`
	Dialect       string            `url:"-" json:"dialect,omitempty"`
	Description   string            `url:"-" json:"description,omitempty"`
	Headers       map[string]string `url:"-" json:"-"`
}

// CreateLanguageModel creates a custom language model for a base model.
func (s *Service) CreateLanguageModel(ctx context.Context, opts *CreateLanguageModelOptions) (*LanguageModel, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.NewRequest(http.MethodPost).
		ResolvePath("/v1/customizations", nil).
		SetJSONBody(opts)
	return invoke[LanguageModel](ctx, s, "create_language_model", b, opts.Headers)
}

// CustomizationOptions identify a custom language or acoustic model. They
// are the arguments of the Get, Delete, Reset, and Upgrade operations.
type CustomizationOptions struct {
	CustomizationID string            `url:"-" path:"customization_id" validate:"required"`
	Headers         map[string]string `url:"-"`
}

func (o *CustomizationOptions) path() map[string]string {
	return map[string]string{"customization_id": o.CustomizationID}
}

// DeleteLanguageModel deletes a custom language model.
func (s *Service) DeleteLanguageModel(ctx context.Context, opts *CustomizationOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	b := s.NewRequest(http.MethodDelete).
		ResolvePath("/v1/customizations/{customization_id}", opts.path())
	return s.send(ctx, "delete_language_model", b, opts.Headers)
}

// GetLanguageModel returns a custom language model.
func (s *Service) GetLanguageModel(ctx context.Context, opts *CustomizationOptions) (*LanguageModel, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.NewRequest(http.MethodGet).
		ResolvePath("/v1/customizations/{customization_id}", opts.path())
	return invoke[LanguageModel](ctx, s, "get_language_model", b, opts.Headers)
}

// ListCustomizationsOptions are the arguments of ListLanguageModels and
// ListAcousticModels.
type ListCustomizationsOptions struct {
	// Language limits the list to models for one language, e.g. "en-US".
	Language string            `url:"language,omitempty"`
	Headers  map[string]string `url:"-"`
}

// ListLanguageModels lists the custom language models owned by the caller.
func (s *Service) ListLanguageModels(ctx context.Context, opts *ListCustomizationsOptions) (*LanguageModels, *watson.DetailedResponse, error) {
	if opts == nil {
		opts = &ListCustomizationsOptions{}
	}
	b := s.NewRequest(http.MethodGet).
		ResolvePath("/v1/customizations", nil).
		AddQueryStruct(opts)
	return invoke[LanguageModels](ctx, s, "list_language_models", b, opts.Headers)
}

// ResetLanguageModel removes all corpora, grammars, and words from a
// custom language model.
func (s *Service) ResetLanguageModel(ctx context.Context, opts *CustomizationOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	b := s.NewRequest(http.MethodPost).
		ResolvePath("/v1/customizations/{customization_id}/reset", opts.path())
	return s.send(ctx, "reset_language_model", b, opts.Headers)
}

// Word types for TrainLanguageModelOptions.WordTypeToAdd and ListWordsOptions.WordType.
const (
	WordTypeAll      = "all"
	WordTypeUser     = "user"
	WordTypeCorpora  = "corpora"
	WordTypeGrammars = "grammars"
)

// TrainLanguageModelOptions are the arguments of TrainLanguageModel.
type TrainLanguageModelOptions struct {
	CustomizationID     string            `url:"-" path:"customization_id" validate:"required"`
	WordTypeToAdd       string            `url:"word_type_to_add,omitempty"`
	CustomizationWeight *float64          `url:"customization_weight,omitempty" validate:"omitempty,gte=0,lte=1"`
	Headers             map[string]string `url:"-"`
}

// TrainLanguageModel starts training a custom language model on its
// current words. Training is asynchronous; poll GetLanguageModel until the
// status is available.
func (s *Service) TrainLanguageModel(ctx context.Context, opts *TrainLanguageModelOptions) (*TrainingResponse, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.NewRequest(http.MethodPost).
		ResolvePath("/v1/customizations/{customization_id}/train", map[string]string{"customization_id": opts.CustomizationID}).
		AddQueryStruct(opts)
	return invoke[TrainingResponse](ctx, s, "train_language_model", b, opts.Headers)
}

// UpgradeLanguageModel upgrades a custom language model to the latest
// version of its base model.
func (s *Service) UpgradeLanguageModel(ctx context.Context, opts *CustomizationOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	b := s.NewRequest(http.MethodPost).
		ResolvePath("/v1/customizations/{customization_id}/upgrade_model", opts.path())
	return s.send(ctx, "upgrade_language_model", b, opts.Headers)
}

// AddCorpusOptions are the arguments of AddCorpus.
type AddCorpusOptions struct {
	CustomizationID string `url:"-" path:"customization_id" validate:"required"`
	CorpusName      string `url:"-" path:"corpus_name" validate:"required"`

	// CorpusFile is plain text, one sentence per line.
	CorpusFile     io.Reader         `url:"-" form:"corpus_file" validate:"required"`
	AllowOverwrite *bool             `url:"allow_overwrite,omitempty"`
	Headers        map[string]string `url:"-"`
}

// AddCorpus adds a text corpus to a custom language model. The service
// extracts out-of-vocabulary words from it asynchronously.
func (s *Service) AddCorpus(ctx context.Context, opts *AddCorpusOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	b := s.NewRequest(http.MethodPost).
		ResolvePath("/v1/customizations/{customization_id}/corpora/{corpus_name}", map[string]string{
			"customization_id": opts.CustomizationID,
			"corpus_name":      opts.CorpusName,
		}).
		AddQueryStruct(opts).
		AddFormFile("corpus_file", opts.CorpusName, "text/plain", opts.CorpusFile)
	return s.send(ctx, "add_corpus", b, opts.Headers)
}

// CorpusOptions identify one corpus of a custom language model.
type CorpusOptions struct {
	CustomizationID string            `url:"-" path:"customization_id" validate:"required"`
	CorpusName      string            `url:"-" path:"corpus_name" validate:"required"`
	Headers         map[string]string `url:"-"`
}

func (o *CorpusOptions) path() map[string]string {
	return map[string]string{"customization_id": o.CustomizationID, "corpus_name": o.CorpusName}
}

// DeleteCorpus removes a corpus and the words it contributed.
func (s *Service) DeleteCorpus(ctx context.Context, opts *CorpusOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	b := s.NewRequest(http.MethodDelete).
		ResolvePath("/v1/customizations/{customization_id}/corpora/{corpus_name}", opts.path())
	return s.send(ctx, "delete_corpus", b, opts.Headers)
}

// GetCorpus returns the status of a corpus.
func (s *Service) GetCorpus(ctx context.Context, opts *CorpusOptions) (*Corpus, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.NewRequest(http.MethodGet).
		ResolvePath("/v1/customizations/{customization_id}/corpora/{corpus_name}", opts.path())
	return invoke[Corpus](ctx, s, "get_corpus", b, opts.Headers)
}

// ListCorpora lists the corpora of a custom language model.
func (s *Service) ListCorpora(ctx context.Context, opts *CustomizationOptions) (*Corpora, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.NewRequest(http.MethodGet).
		ResolvePath("/v1/customizations/{customization_id}/corpora", opts.path())
	return invoke[Corpora](ctx, s, "list_corpora", b, opts.Headers)
}

// AddWordOptions are the arguments of AddWord.
type AddWordOptions struct {
	CustomizationID string            `url:"-" json:"-" path:"customization_id" validate:"required"`
	WordName        string            `url:"-" json:"-" path:"word_name" validate:"required"`
	Word            string            `url:"-" json:"word,omitempty"`
	SoundsLike      []string          `url:"-" json:"sounds_like,omitempty"`
	DisplayAs       string            `url:"-" json:"display_as,omitempty"`
	Headers         map[string]string `url:"-" json:"-"`
}

// AddWord adds or replaces one custom word.
func (s *Service) AddWord(ctx context.Context, opts *AddWordOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	b := s.NewRequest(http.MethodPut).
		ResolvePath("/v1/customizations/{customization_id}/words/{word_name}", map[string]string{
			"customization_id": opts.CustomizationID,
			"word_name":        opts.WordName,
		}).
		SetJSONBody(opts)
	return s.send(ctx, "add_word", b, opts.Headers)
}

// AddWordsOptions are the arguments of AddWords.
type AddWordsOptions struct {
	CustomizationID string            `url:"-" json:"-" path:"customization_id" validate:"required"`
	Words           []CustomWord      `url:"-" json:"words" validate:"required"`
	Headers         map[string]string `url:"-" json:"-"`
}

// AddWords adds or replaces several custom words.
func (s *Service) AddWords(ctx context.Context, opts *AddWordsOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	b := s.NewRequest(http.MethodPost).
		ResolvePath("/v1/customizations/{customization_id}/words", map[string]string{"customization_id": opts.CustomizationID}).
		SetJSONBody(opts)
	return s.send(ctx, "add_words", b, opts.Headers)
}

// WordOptions identify one custom word.
type WordOptions struct {
	CustomizationID string            `url:"-" path:"customization_id" validate:"required"`
	WordName        string            `url:"-" path:"word_name" validate:"required"`
	Headers         map[string]string `url:"-"`
}

func (o *WordOptions) path() map[string]string {
	return map[string]string{"customization_id": o.CustomizationID, "word_name": o.WordName}
}

// DeleteWord removes a custom word.
func (s *Service) DeleteWord(ctx context.Context, opts *WordOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	b := s.NewRequest(http.MethodDelete).
		ResolvePath("/v1/customizations/{customization_id}/words/{word_name}", opts.path())
	return s.send(ctx, "delete_word", b, opts.Headers)
}

// GetWord returns a custom word.
func (s *Service) GetWord(ctx context.Context, opts *WordOptions) (*Word, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.NewRequest(http.MethodGet).
		ResolvePath("/v1/customizations/{customization_id}/words/{word_name}", opts.path())
	return invoke[Word](ctx, s, "get_word", b, opts.Headers)
}

// Sort orders for ListWordsOptions.Sort. Prefix with "-" for descending.
const (
	SortAlphabetical = "alphabetical"
	SortCount        = "count"
)

// ListWordsOptions are the arguments of ListWords.
type ListWordsOptions struct {
	CustomizationID string            `url:"-" path:"customization_id" validate:"required"`
	WordType        string            `url:"word_type,omitempty"`
	Sort            string            `url:"sort,omitempty"`
	Headers         map[string]string `url:"-"`
}

// ListWords lists the custom words of a language model.
func (s *Service) ListWords(ctx context.Context, opts *ListWordsOptions) (*Words, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.NewRequest(http.MethodGet).
		ResolvePath("/v1/customizations/{customization_id}/words", map[string]string{"customization_id": opts.CustomizationID}).
		AddQueryStruct(opts)
	return invoke[Words](ctx, s, "list_words", b, opts.Headers)
}

// Grammar formats accepted by AddGrammar.
const (
	GrammarContentTypeABNF = "application/srgs"
	GrammarContentTypeXML  = "application/srgs+xml"
)

// AddGrammarOptions are the arguments of AddGrammar.
type AddGrammarOptions struct {
	CustomizationID string            `url:"-" path:"customization_id" validate:"required"`
	GrammarName     string            `url:"-" path:"grammar_name" validate:"required"`
	GrammarFile     io.Reader         `url:"-" body:"grammar_file" validate:"required"`
	ContentType     string            `url:"-" header:"Content-Type" validate:"required"`
	AllowOverwrite  *bool             `url:"allow_overwrite,omitempty"`
	Headers         map[string]string `url:"-"`
}

// AddGrammar adds an ABNF or SRGS XML grammar to a custom language model.
func (s *Service) AddGrammar(ctx context.Context, opts *AddGrammarOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	b := s.NewRequest(http.MethodPost).
		ResolvePath("/v1/customizations/{customization_id}/grammars/{grammar_name}", map[string]string{
			"customization_id": opts.CustomizationID,
			"grammar_name":     opts.GrammarName,
		}).
		AddQueryStruct(opts).
		SetBody(opts.GrammarFile, opts.ContentType)
	return s.send(ctx, "add_grammar", b, opts.Headers)
}

// GrammarOptions identify one grammar of a custom language model.
type GrammarOptions struct {
	CustomizationID string            `url:"-" path:"customization_id" validate:"required"`
	GrammarName     string            `url:"-" path:"grammar_name" validate:"required"`
	Headers         map[string]string `url:"-"`
}

func (o *GrammarOptions) path() map[string]string {
	return map[string]string{"customization_id": o.CustomizationID, "grammar_name": o.GrammarName}
}

// DeleteGrammar removes a grammar and the words it contributed.
func (s *Service) DeleteGrammar(ctx context.Context, opts *GrammarOptions) (*watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	b := s.NewRequest(http.MethodDelete).
		ResolvePath("/v1/customizations/{customization_id}/grammars/{grammar_name}", opts.path())
	return s.send(ctx, "delete_grammar", b, opts.Headers)
}

// GetGrammar returns the status of a grammar.
func (s *Service) GetGrammar(ctx context.Context, opts *GrammarOptions) (*Grammar, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.NewRequest(http.MethodGet).
		ResolvePath("/v1/customizations/{customization_id}/grammars/{grammar_name}", opts.path())
	return invoke[Grammar](ctx, s, "get_grammar", b, opts.Headers)
}

// ListGrammars lists the grammars of a custom language model.
func (s *Service) ListGrammars(ctx context.Context, opts *CustomizationOptions) (*Grammars, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.NewRequest(http.MethodGet).
		ResolvePath("/v1/customizations/{customization_id}/grammars", opts.path())
	return invoke[Grammars](ctx, s, "list_grammars", b, opts.Headers)
}
