package speechtotext

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/watson"
	"github.com/broady/watson/testutil"
)

func newTestService(t *testing.T, srv *testutil.Server) *Service {
	t.Helper()
	s, err := New(&watson.ServiceOptions{
		URL:           srv.URL,
		Authenticator: watson.NewAPIKeyAuthenticator("secret"),
	})
	require.NoError(t, err)
	return s
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestNew_DefaultURL(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultServiceURL, s.ServiceURL())
	assert.Equal(t, "speech_to_text", s.Name())
}

func TestGetModel(t *testing.T) {
	srv := testutil.NewServer(t).Handle("GET", "/v1/models/en-US_BroadbandModel", 200, `{
		"name": "en-US_BroadbandModel",
		"language": "en-US",
		"rate": 16000,
		"url": "https://stream.watsonplatform.net/speech-to-text/api/v1/models/en-US_BroadbandModel",
		"supported_features": {"custom_language_model": true, "speaker_labels": true},
		"description": "US English broadband model."
	}`)
	s := newTestService(t, srv)

	model, resp, err := s.GetModel(context.Background(), &GetModelOptions{ModelID: "en-US_BroadbandModel"})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "en-US", model.Language)
	assert.Equal(t, int64(16000), model.Rate)
	assert.True(t, model.SupportedFeatures.SpeakerLabels)

	req := srv.LastRequest()
	testutil.AssertRequest(t, req, "GET", "/v1/models/en-US_BroadbandModel")
	testutil.AssertHeader(t, req, "Accept", "application/json")
	assert.Contains(t, req.Header.Get("X-IBMCloud-SDK-Analytics"), "operation_id=get_model")
}

func TestGetModel_PathEscaping(t *testing.T) {
	srv := testutil.NewServer(t).Handle("GET", "/v1/models/a%2Fb%20c", 200,
		`{"name":"a/b c","language":"en-US","url":"u"}`)
	s := newTestService(t, srv)

	_, _, err := s.GetModel(context.Background(), &GetModelOptions{ModelID: "a/b c"})
	require.NoError(t, err)
	testutil.AssertRequest(t, srv.LastRequest(), "GET", "/v1/models/a%2Fb%20c")
}

func TestListModels(t *testing.T) {
	srv := testutil.NewServer(t).Handle("GET", "/v1/models", 200, `{"models":[
		{"name":"en-US_BroadbandModel","language":"en-US","rate":16000,"url":"u1","description":"d"},
		{"name":"ja-JP_NarrowbandModel","language":"ja-JP","rate":8000,"url":"u2","description":"d"}
	]}`)
	s := newTestService(t, srv)

	models, _, err := s.ListModels(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, models.Models, 2)
	assert.Equal(t, "ja-JP_NarrowbandModel", models.Models[1].Name)
}

func TestListModels_MissingRequiredProperty(t *testing.T) {
	srv := testutil.NewServer(t).Handle("GET", "/v1/models", 200, `{"models":[{"language":"en-US","url":"u"}]}`)
	s := newTestService(t, srv)

	_, _, err := s.ListModels(context.Background(), nil)
	var missing *watson.MissingPropertyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "SpeechModels", missing.Model)
	assert.Equal(t, "models[0].name", missing.Property)
}

func TestRecognize(t *testing.T) {
	srv := testutil.NewServer(t).Handle("POST", "/v1/recognize", 200, `{
		"results": [{
			"final": true,
			"alternatives": [{
				"transcript": "thunderstorms could produce large hail ",
				"confidence": 0.96,
				"timestamps": [["thunderstorms", 1.49, 2.32], ["could", 2.32, 2.54]],
				"word_confidence": [["thunderstorms", 0.95], ["could", 1.0]]
			}],
			"keywords_result": {"hail": [{"normalized_text": "hail", "start_time": 3.1, "end_time": 3.5, "confidence": 0.98}]}
		}],
		"result_index": 0
	}`)
	s := newTestService(t, srv)

	results, _, err := s.Recognize(context.Background(), &RecognizeOptions{
		Audio:       strings.NewReader("fake audio"),
		ContentType: "audio/flac",
		RecognitionParams: RecognitionParams{
			Model:               "en-US_BroadbandModel",
			Keywords:            watson.CSV{"colorado", "tornado", "hail"},
			KeywordsThreshold:   watson.Float64(0.5),
			CustomizationWeight: watson.Float64(0.3),
			Timestamps:          watson.Bool(true),
			WordConfidence:      watson.Bool(true),
			SmartFormatting:     watson.Bool(false),
		},
	})
	require.NoError(t, err)

	req := srv.LastRequest()
	testutil.AssertRequest(t, req, "POST", "/v1/recognize")
	testutil.AssertHeader(t, req, "Content-Type", "audio/flac")
	testutil.AssertQuery(t, req, "model", "en-US_BroadbandModel")
	testutil.AssertQuery(t, req, "keywords", "colorado,tornado,hail")
	testutil.AssertQuery(t, req, "keywords_threshold", "0.5")
	testutil.AssertQuery(t, req, "customization_weight", "0.3")
	testutil.AssertQuery(t, req, "timestamps", "true")
	testutil.AssertQuery(t, req, "smart_formatting", "false")
	testutil.AssertNoQuery(t, req, "speaker_labels")
	testutil.AssertNoQuery(t, req, "max_alternatives")
	assert.Equal(t, "fake audio", string(req.Body))

	require.Len(t, results.Results, 1)
	alt := results.Results[0].Alternatives[0]
	assert.Equal(t, []WordTimestamp{{"thunderstorms", 1.49, 2.32}, {"could", 2.32, 2.54}}, alt.Timestamps)
	assert.Equal(t, []WordConfidence{{"thunderstorms", 0.95}, {"could", 1.0}}, alt.WordConfidence)
	assert.InDelta(t, 0.96, *alt.Confidence, 1e-9)
	assert.Equal(t, "hail", results.Results[0].KeywordsResult["hail"][0].NormalizedText)
	assert.Equal(t, "thunderstorms could produce large hail ", results.Transcript())
}

func TestRecognize_SniffsContentType(t *testing.T) {
	srv := testutil.NewServer(t).Handle("POST", "/v1/recognize", 200, `{"results":[]}`)
	s := newTestService(t, srv)

	audio := "fLaC\x00\x00\x00\x22" + strings.Repeat("\x00", 64)
	_, _, err := s.Recognize(context.Background(), &RecognizeOptions{Audio: strings.NewReader(audio)})
	require.NoError(t, err)

	req := srv.LastRequest()
	testutil.AssertHeader(t, req, "Content-Type", "audio/flac")
	assert.Equal(t, audio, string(req.Body), "sniffed bytes must still be sent")
}

func TestRecognize_InvalidWeight(t *testing.T) {
	s := newTestService(t, testutil.NewServer(t))
	_, _, err := s.Recognize(context.Background(), &RecognizeOptions{
		Audio:             strings.NewReader("x"),
		ContentType:       "audio/wav",
		RecognitionParams: RecognitionParams{CustomizationWeight: watson.Float64(1.5)},
	})
	var svcErr *watson.Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, watson.CodeInvalidArgument, svcErr.Code)
}

func TestMissingArguments(t *testing.T) {
	srv := testutil.NewServer(t)
	s := newTestService(t, srv)
	ctx := context.Background()

	tests := []struct {
		name  string
		call  func() error
		field string
	}{
		{"nil options", func() error { _, _, err := s.GetModel(ctx, nil); return err }, "options"},
		{"model id", func() error { _, _, err := s.GetModel(ctx, &GetModelOptions{}); return err }, "model_id"},
		{"recognize audio", func() error { _, _, err := s.Recognize(ctx, &RecognizeOptions{}); return err }, "audio"},
		{"job id", func() error { _, _, err := s.CheckJob(ctx, &CheckJobOptions{}); return err }, "id"},
		{"callback url", func() error { _, _, err := s.RegisterCallback(ctx, &RegisterCallbackOptions{}); return err }, "callback_url"},
		{"customer id", func() error { _, err := s.DeleteUserData(ctx, &DeleteUserDataOptions{}); return err }, "customer_id"},
		{"language model name", func() error {
			_, _, err := s.CreateLanguageModel(ctx, &CreateLanguageModelOptions{BaseModelName: "en-US_BroadbandModel"})
			return err
		}, "name"},
		{"corpus name", func() error {
			_, err := s.AddCorpus(ctx, &AddCorpusOptions{CustomizationID: "c", CorpusFile: strings.NewReader("x")})
			return err
		}, "corpus_name"},
		{"corpus file", func() error {
			_, err := s.AddCorpus(ctx, &AddCorpusOptions{CustomizationID: "c", CorpusName: "n"})
			return err
		}, "corpus_file"},
		{"words", func() error { _, err := s.AddWords(ctx, &AddWordsOptions{CustomizationID: "c"}); return err }, "words"},
		{"grammar content type", func() error {
			_, err := s.AddGrammar(ctx, &AddGrammarOptions{CustomizationID: "c", GrammarName: "g", GrammarFile: strings.NewReader("x")})
			return err
		}, "Content-Type"},
		{"audio resource", func() error {
			_, err := s.AddAudio(ctx, &AddAudioOptions{CustomizationID: "c", AudioName: "a"})
			return err
		}, "audio_resource"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			var missing *watson.MissingArgumentError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.field, missing.Field)
		})
	}
	assert.Empty(t, srv.Requests(), "no request may be sent when arguments are missing")
}

func TestCreateJob(t *testing.T) {
	srv := testutil.NewServer(t).Handle("POST", "/v1/recognitions", 201,
		`{"id":"4bd734c0-e575-21f3-de03-f932aa0468a0","status":"waiting","created":"2016-08-17T19:13:23.622Z","url":"http://x/v1/recognitions/4bd734c0"}`)
	s := newTestService(t, srv)

	job, resp, err := s.CreateJob(context.Background(), &CreateJobOptions{
		Audio:       strings.NewReader("audio"),
		ContentType: "audio/wav",
		CallbackURL: "https://example.com/results",
		Events:      EventCompletedWithResults,
		UserToken:   "job25110",
		ResultsTTL:  watson.Int64(60),
		RecognitionParams: RecognitionParams{
			Model:         "en-US_NarrowbandModel",
			SpeakerLabels: watson.Bool(true),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, JobStatusWaiting, job.Status)
	assert.False(t, job.Done())

	req := srv.LastRequest()
	testutil.AssertQuery(t, req, "callback_url", "https://example.com/results")
	testutil.AssertQuery(t, req, "events", "recognitions.completed_with_results")
	testutil.AssertQuery(t, req, "user_token", "job25110")
	testutil.AssertQuery(t, req, "results_ttl", "60")
	testutil.AssertQuery(t, req, "model", "en-US_NarrowbandModel")
	testutil.AssertQuery(t, req, "speaker_labels", "true")
}

func TestCheckJob_Completed(t *testing.T) {
	srv := testutil.NewServer(t).Handle("GET", "/v1/recognitions/job-1", 200, `{
		"id": "job-1", "status": "completed", "created": "2016-08-17T19:13:23.622Z",
		"results": [{"results": [{"final": true, "alternatives": [{"transcript": "hello"}]}], "result_index": 0}]
	}`)
	s := newTestService(t, srv)

	job, _, err := s.CheckJob(context.Background(), &CheckJobOptions{ID: "job-1"})
	require.NoError(t, err)
	assert.True(t, job.Done())
	require.Len(t, job.Results, 1)
	assert.Equal(t, "hello", job.Results[0].Transcript())
}

func TestRegisterCallback(t *testing.T) {
	srv := testutil.NewServer(t).Handle("POST", "/v1/register_callback", 201,
		`{"status":"created","url":"https://example.com/results"}`)
	s := newTestService(t, srv)

	status, _, err := s.RegisterCallback(context.Background(), &RegisterCallbackOptions{
		CallbackURL: "https://example.com/results",
		UserSecret:  "ThisIsMySecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "created", status.Status)

	req := srv.LastRequest()
	testutil.AssertQuery(t, req, "callback_url", "https://example.com/results")
	testutil.AssertQuery(t, req, "user_secret", "ThisIsMySecret")
}

func TestDeleteUserData(t *testing.T) {
	srv := testutil.NewServer(t).Handle("DELETE", "/v1/user_data", 200, "")
	s := newTestService(t, srv)

	resp, err := s.DeleteUserData(context.Background(), &DeleteUserDataOptions{CustomerID: "my_customer_ID"})
	require.NoError(t, err)
	assert.Nil(t, resp.Result)
	testutil.AssertQuery(t, srv.LastRequest(), "customer_id", "my_customer_ID")
}

func TestServiceError(t *testing.T) {
	srv := testutil.NewServer(t).Handle("GET", "/v1/customizations/nope", 404,
		`{"error":"Invalid customization_id 'nope'","code":404,"code_description":"Not Found"}`)
	s := newTestService(t, srv)

	_, resp, err := s.GetLanguageModel(context.Background(), &CustomizationOptions{CustomizationID: "nope"})
	require.Error(t, err)
	assert.True(t, watson.IsNotFound(err))
	assert.Equal(t, 404, resp.StatusCode)

	var svcErr *watson.Error
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "Invalid customization_id 'nope'", svcErr.Message)
	assert.Equal(t, "Not Found", svcErr.Details["code_description"])
}

func TestCreateLanguageModel(t *testing.T) {
	srv := testutil.NewServer(t).Handle("POST", "/v1/customizations", 201,
		`{"customization_id":"74f4807e-b5ff-4866-824e-6bba1a84fe96"}`)
	s := newTestService(t, srv)

	model, _, err := s.CreateLanguageModel(context.Background(), &CreateLanguageModelOptions{
		Name:          "Example model",
		BaseModelName: "en-US_BroadbandModel",
		Dialect:       "en-US",
		Description:   "Example custom language model",
		Headers:       map[string]string{"X-Watson-Learning-Opt-Out": "true"},
	})
	require.NoError(t, err)
	assert.Equal(t, "74f4807e-b5ff-4866-824e-6bba1a84fe96", model.CustomizationID)

	req := srv.LastRequest()
	testutil.AssertHeader(t, req, "Content-Type", "application/json")
	testutil.AssertHeader(t, req, "X-Watson-Learning-Opt-Out", "true")
	golden(t).Assert(t, "create_language_model", req.Body)
}

func TestAddWords(t *testing.T) {
	srv := testutil.NewServer(t).Handle("POST", "/v1/customizations/cust-1/words", 201, "{}")
	s := newTestService(t, srv)

	_, err := s.AddWords(context.Background(), &AddWordsOptions{
		CustomizationID: "cust-1",
		Words: []CustomWord{
			{Word: "HHonors", SoundsLike: []string{"hilton honors", "h honors"}, DisplayAs: "HHonors"},
			{Word: "IEEE", SoundsLike: []string{"i triple e"}},
		},
	})
	require.NoError(t, err)
	golden(t).Assert(t, "add_words", srv.LastRequest().Body)
}

func TestAddWord(t *testing.T) {
	srv := testutil.NewServer(t).Handle("PUT", "/v1/customizations/cust-1/words/NCAA", 201, "")
	s := newTestService(t, srv)

	_, err := s.AddWord(context.Background(), &AddWordOptions{
		CustomizationID: "cust-1",
		WordName:        "NCAA",
		SoundsLike:      []string{"N. C. A. A.", "N. C. double A."},
		DisplayAs:       "NCAA",
	})
	require.NoError(t, err)
	testutil.AssertJSONBody(t, srv.LastRequest(), `{"sounds_like":["N. C. A. A.","N. C. double A."],"display_as":"NCAA"}`)
}

func TestListWords(t *testing.T) {
	srv := testutil.NewServer(t).Handle("GET", "/v1/customizations/cust-1/words", 200, `{"words":[
		{"word":"HHonors","sounds_like":["hilton honors"],"display_as":"HHonors","count":1,"source":["user"]}
	]}`)
	s := newTestService(t, srv)

	words, _, err := s.ListWords(context.Background(), &ListWordsOptions{
		CustomizationID: "cust-1",
		WordType:        WordTypeUser,
		Sort:            "-" + SortCount,
	})
	require.NoError(t, err)
	require.Len(t, words.Words, 1)
	assert.Equal(t, []string{"user"}, words.Words[0].Source)

	req := srv.LastRequest()
	testutil.AssertQuery(t, req, "word_type", "user")
	testutil.AssertQuery(t, req, "sort", "-count")
}

func TestAddCorpus(t *testing.T) {
	srv := testutil.NewServer(t).Handle("POST", "/v1/customizations/cust-1/corpora/corpus1", 201, "")
	s := newTestService(t, srv)

	_, err := s.AddCorpus(context.Background(), &AddCorpusOptions{
		CustomizationID: "cust-1",
		CorpusName:      "corpus1",
		CorpusFile:      strings.NewReader("Am I at risk for health problems during travel?\n"),
		AllowOverwrite:  watson.Bool(true),
	})
	require.NoError(t, err)

	req := srv.LastRequest()
	testutil.AssertQuery(t, req, "allow_overwrite", "true")
	parts := req.Multipart(t)
	require.Contains(t, parts, "corpus_file")
	assert.Equal(t, "corpus1", parts["corpus_file"].Filename)
	assert.Equal(t, "text/plain", parts["corpus_file"].ContentType)
	assert.Equal(t, "Am I at risk for health problems during travel?\n", string(parts["corpus_file"].Body))
}

func TestAddGrammar(t *testing.T) {
	srv := testutil.NewServer(t).Handle("POST", "/v1/customizations/cust-1/grammars/confirm", 201, "")
	s := newTestService(t, srv)

	grammar := "#ABNF 1.0 ISO-8859-1;\nlanguage en-US;\nroot $yesno;\n$yesno = yes | no ;\n"
	_, err := s.AddGrammar(context.Background(), &AddGrammarOptions{
		CustomizationID: "cust-1",
		GrammarName:     "confirm",
		GrammarFile:     strings.NewReader(grammar),
		ContentType:     GrammarContentTypeABNF,
	})
	require.NoError(t, err)

	req := srv.LastRequest()
	testutil.AssertHeader(t, req, "Content-Type", "application/srgs")
	assert.Equal(t, grammar, string(req.Body))
}

func TestAddAudio_Archive(t *testing.T) {
	srv := testutil.NewServer(t).Handle("POST", "/v1/acoustic_customizations/ac-1/audio/audio2", 201, "")
	s := newTestService(t, srv)

	_, err := s.AddAudio(context.Background(), &AddAudioOptions{
		CustomizationID:      "ac-1",
		AudioName:            "audio2",
		AudioResource:        strings.NewReader("PK\x03\x04 archive"),
		ContentType:          ContentTypeZip,
		ContainedContentType: "audio/l16;rate=16000",
	})
	require.NoError(t, err)

	req := srv.LastRequest()
	testutil.AssertHeader(t, req, "Content-Type", "application/zip")
	testutil.AssertHeader(t, req, "Contained-Content-Type", "audio/l16;rate=16000")
	testutil.AssertNoQuery(t, req, "allow_overwrite")
}

func TestTrainLanguageModel(t *testing.T) {
	srv := testutil.NewServer(t).Handle("POST", "/v1/customizations/cust-1/train", 200,
		`{"warnings":[{"code":"invalid_audio_files","message":"Analysis of the following audio files ended in error: ['audio1']"}]}`)
	s := newTestService(t, srv)

	resp, _, err := s.TrainLanguageModel(context.Background(), &TrainLanguageModelOptions{
		CustomizationID:     "cust-1",
		WordTypeToAdd:       WordTypeCorpora,
		CustomizationWeight: watson.Float64(0.5),
	})
	require.NoError(t, err)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, "invalid_audio_files", resp.Warnings[0].Code)

	req := srv.LastRequest()
	testutil.AssertQuery(t, req, "word_type_to_add", "corpora")
	testutil.AssertQuery(t, req, "customization_weight", "0.5")
}

func TestUpgradeAcousticModel(t *testing.T) {
	srv := testutil.NewServer(t).Handle("POST", "/v1/acoustic_customizations/ac-1/upgrade_model", 200, "")
	s := newTestService(t, srv)

	_, err := s.UpgradeAcousticModel(context.Background(), &UpgradeAcousticModelOptions{
		CustomizationID:       "ac-1",
		CustomLanguageModelID: "cust-1",
		Force:                 watson.Bool(true),
	})
	require.NoError(t, err)
	req := srv.LastRequest()
	testutil.AssertQuery(t, req, "custom_language_model_id", "cust-1")
	testutil.AssertQuery(t, req, "force", "true")
}

func TestGetAudio_Archive(t *testing.T) {
	srv := testutil.NewServer(t).Handle("GET", "/v1/acoustic_customizations/ac-1/audio/audio2", 200, `{
		"container": {"duration": 30, "name": "audio2", "details": {"type": "archive", "compression": "zip"}, "status": "ok"},
		"audio": [{"duration": 15, "name": "a.wav", "details": {"type": "audio", "codec": "pcm_s16le", "frequency": 16000}, "status": "ok"}]
	}`)
	s := newTestService(t, srv)

	listing, _, err := s.GetAudio(context.Background(), &AudioOptions{CustomizationID: "ac-1", AudioName: "audio2"})
	require.NoError(t, err)
	require.NotNil(t, listing.Container)
	assert.Equal(t, "zip", listing.Container.Details.Compression)
	require.Len(t, listing.Audio, 1)
	assert.Equal(t, int64(16000), listing.Audio[0].Details.Frequency)
}

func TestEndpoints(t *testing.T) {
	ctx := context.Background()
	cust := &CustomizationOptions{CustomizationID: "c 1"}
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		call   func(s *Service) error
	}{
		{"CheckJobs", "GET", "/v1/recognitions", `{"recognitions":[]}`, func(s *Service) error {
			_, _, err := s.CheckJobs(ctx, nil)
			return err
		}},
		{"DeleteJob", "DELETE", "/v1/recognitions/j1", "", func(s *Service) error {
			_, err := s.DeleteJob(ctx, &DeleteJobOptions{ID: "j1"})
			return err
		}},
		{"UnregisterCallback", "POST", "/v1/unregister_callback", "", func(s *Service) error {
			_, err := s.UnregisterCallback(ctx, &UnregisterCallbackOptions{CallbackURL: "https://x"})
			return err
		}},
		{"DeleteLanguageModel", "DELETE", "/v1/customizations/c%201", "", func(s *Service) error {
			_, err := s.DeleteLanguageModel(ctx, cust)
			return err
		}},
		{"ListLanguageModels", "GET", "/v1/customizations", `{"customizations":[]}`, func(s *Service) error {
			_, _, err := s.ListLanguageModels(ctx, &ListCustomizationsOptions{Language: "en-US"})
			return err
		}},
		{"ResetLanguageModel", "POST", "/v1/customizations/c%201/reset", "", func(s *Service) error {
			_, err := s.ResetLanguageModel(ctx, cust)
			return err
		}},
		{"UpgradeLanguageModel", "POST", "/v1/customizations/c%201/upgrade_model", "", func(s *Service) error {
			_, err := s.UpgradeLanguageModel(ctx, cust)
			return err
		}},
		{"ListCorpora", "GET", "/v1/customizations/c%201/corpora", `{"corpora":[]}`, func(s *Service) error {
			_, _, err := s.ListCorpora(ctx, cust)
			return err
		}},
		{"GetCorpus", "GET", "/v1/customizations/c%201/corpora/k", `{"name":"k","status":"analyzed"}`, func(s *Service) error {
			_, _, err := s.GetCorpus(ctx, &CorpusOptions{CustomizationID: "c 1", CorpusName: "k"})
			return err
		}},
		{"DeleteCorpus", "DELETE", "/v1/customizations/c%201/corpora/k", "", func(s *Service) error {
			_, err := s.DeleteCorpus(ctx, &CorpusOptions{CustomizationID: "c 1", CorpusName: "k"})
			return err
		}},
		{"GetWord", "GET", "/v1/customizations/c%201/words/w", `{"word":"w","sounds_like":[],"display_as":"w","source":["user"]}`, func(s *Service) error {
			_, _, err := s.GetWord(ctx, &WordOptions{CustomizationID: "c 1", WordName: "w"})
			return err
		}},
		{"DeleteWord", "DELETE", "/v1/customizations/c%201/words/w", "", func(s *Service) error {
			_, err := s.DeleteWord(ctx, &WordOptions{CustomizationID: "c 1", WordName: "w"})
			return err
		}},
		{"ListGrammars", "GET", "/v1/customizations/c%201/grammars", `{"grammars":[]}`, func(s *Service) error {
			_, _, err := s.ListGrammars(ctx, cust)
			return err
		}},
		{"GetGrammar", "GET", "/v1/customizations/c%201/grammars/g", `{"name":"g","status":"analyzed"}`, func(s *Service) error {
			_, _, err := s.GetGrammar(ctx, &GrammarOptions{CustomizationID: "c 1", GrammarName: "g"})
			return err
		}},
		{"DeleteGrammar", "DELETE", "/v1/customizations/c%201/grammars/g", "", func(s *Service) error {
			_, err := s.DeleteGrammar(ctx, &GrammarOptions{CustomizationID: "c 1", GrammarName: "g"})
			return err
		}},
		{"CreateAcousticModel", "POST", "/v1/acoustic_customizations", `{"customization_id":"a1"}`, func(s *Service) error {
			_, _, err := s.CreateAcousticModel(ctx, &CreateAcousticModelOptions{Name: "n", BaseModelName: "en-US_BroadbandModel"})
			return err
		}},
		{"GetAcousticModel", "GET", "/v1/acoustic_customizations/c%201", `{"customization_id":"c 1"}`, func(s *Service) error {
			_, _, err := s.GetAcousticModel(ctx, cust)
			return err
		}},
		{"DeleteAcousticModel", "DELETE", "/v1/acoustic_customizations/c%201", "", func(s *Service) error {
			_, err := s.DeleteAcousticModel(ctx, cust)
			return err
		}},
		{"ListAcousticModels", "GET", "/v1/acoustic_customizations", `{"customizations":[]}`, func(s *Service) error {
			_, _, err := s.ListAcousticModels(ctx, nil)
			return err
		}},
		{"ResetAcousticModel", "POST", "/v1/acoustic_customizations/c%201/reset", "", func(s *Service) error {
			_, err := s.ResetAcousticModel(ctx, cust)
			return err
		}},
		{"TrainAcousticModel", "POST", "/v1/acoustic_customizations/c%201/train", "", func(s *Service) error {
			_, _, err := s.TrainAcousticModel(ctx, &TrainAcousticModelOptions{CustomizationID: "c 1"})
			return err
		}},
		{"ListAudio", "GET", "/v1/acoustic_customizations/c%201/audio", `{"total_minutes_of_audio":0,"audio":[]}`, func(s *Service) error {
			_, _, err := s.ListAudio(ctx, cust)
			return err
		}},
		{"DeleteAudio", "DELETE", "/v1/acoustic_customizations/c%201/audio/a", "", func(s *Service) error {
			_, err := s.DeleteAudio(ctx, &AudioOptions{CustomizationID: "c 1", AudioName: "a"})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testutil.NewServer(t).Handle(tt.method, tt.path, http.StatusOK, tt.body)
			s := newTestService(t, srv)
			require.NoError(t, tt.call(s))
			testutil.AssertRequest(t, srv.LastRequest(), tt.method, tt.path)
		})
	}
}

func TestWordTimestamp_Malformed(t *testing.T) {
	var ts WordTimestamp
	assert.Error(t, ts.UnmarshalJSON([]byte(`["word", 1.0]`)))
	assert.Error(t, ts.UnmarshalJSON([]byte(`[1, 2, 3]`)))

	var wc WordConfidence
	assert.Error(t, wc.UnmarshalJSON([]byte(`{"word":"x"}`)))

	data, err := WordTimestamp{Word: "hi", StartTime: 0.5, EndTime: 1}.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `["hi",0.5,1]`, string(data))
}
