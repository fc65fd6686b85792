package main

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/broady/watson"
	"github.com/broady/watson/speechtotext"
)

type STTCmd struct {
	Models         STTModelsCmd         `cmd:"" help:"List the base models."`
	Model          STTModelCmd          `cmd:"" help:"Show one base model."`
	Recognize      STTRecognizeCmd      `cmd:"" help:"Transcribe audio files."`
	Jobs           STTJobsCmd           `cmd:"" help:"List asynchronous recognition jobs."`
	Customizations STTCustomizationsCmd `cmd:"" help:"List custom language and acoustic models."`
}

type STTModelsCmd struct{}

func (c *STTModelsCmd) Run(g *Globals) error {
	stt, err := g.speechToText()
	if err != nil {
		return err
	}
	models, _, err := stt.ListModels(g.ctx, nil)
	if err != nil {
		return err
	}
	return g.print(models)
}

type STTModelCmd struct {
	ID string `arg:"" help:"Model ID, e.g. en-US_BroadbandModel."`
}

func (c *STTModelCmd) Run(g *Globals) error {
	stt, err := g.speechToText()
	if err != nil {
		return err
	}
	model, _, err := stt.GetModel(g.ctx, &speechtotext.GetModelOptions{ModelID: c.ID})
	if err != nil {
		return err
	}
	return g.print(model)
}

type STTRecognizeCmd struct {
	Files         []string `arg:"" type:"existingfile" help:"Audio files to transcribe."`
	Model         string   `help:"Base model." short:"m"`
	ContentType   string   `help:"Audio format; detected from the file when empty." name:"content-type"`
	Customization string   `help:"Custom language model ID." name:"customization"`
	Keywords      []string `help:"Keywords to spot." sep:","`
	Timestamps    bool     `help:"Include word timestamps."`
	SpeakerLabels bool     `help:"Label speakers." name:"speaker-labels"`
	Concurrency   int      `help:"Files transcribed at once." default:"4" short:"j"`
}

// Transcript is the output of one recognized file.
type Transcript struct {
	File    string                                 `json:"file"`
	Results *speechtotext.SpeechRecognitionResults `json:"results"`
}

func (c *STTRecognizeCmd) params() speechtotext.RecognitionParams {
	p := speechtotext.RecognitionParams{
		Model:                   c.Model,
		LanguageCustomizationID: c.Customization,
	}
	if len(c.Keywords) > 0 {
		p.Keywords = watson.CSV(c.Keywords)
		p.KeywordsThreshold = watson.Float64(0.5)
	}
	if c.Timestamps {
		p.Timestamps = watson.Bool(true)
	}
	if c.SpeakerLabels {
		p.SpeakerLabels = watson.Bool(true)
	}
	return p
}

func (c *STTRecognizeCmd) Run(g *Globals) error {
	stt, err := g.speechToText()
	if err != nil {
		return err
	}
	params := c.params()
	out := make([]Transcript, len(c.Files))

	eg, ctx := errgroup.WithContext(g.ctx)
	eg.SetLimit(max(c.Concurrency, 1))
	for i, name := range c.Files {
		eg.Go(func() error {
			f, err := os.Open(name)
			if err != nil {
				return err
			}
			defer f.Close()

			results, _, err := stt.Recognize(ctx, &speechtotext.RecognizeOptions{
				Audio:             f,
				ContentType:       c.ContentType,
				RecognitionParams: params,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(name), err)
			}
			out[i] = Transcript{File: name, Results: results}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	return g.print(out)
}

type STTJobsCmd struct{}

func (c *STTJobsCmd) Run(g *Globals) error {
	stt, err := g.speechToText()
	if err != nil {
		return err
	}
	jobs, _, err := stt.CheckJobs(g.ctx, nil)
	if err != nil {
		return err
	}
	return g.print(jobs)
}

type STTCustomizationsCmd struct {
	Language string `help:"Only list models for this language, e.g. en-US." short:"l"`
}

func (c *STTCustomizationsCmd) Run(g *Globals) error {
	stt, err := g.speechToText()
	if err != nil {
		return err
	}
	opts := &speechtotext.ListCustomizationsOptions{Language: c.Language}

	var out struct {
		Language *speechtotext.LanguageModels `json:"language"`
		Acoustic *speechtotext.AcousticModels `json:"acoustic"`
	}
	eg, ctx := errgroup.WithContext(g.ctx)
	eg.Go(func() (err error) {
		out.Language, _, err = stt.ListLanguageModels(ctx, opts)
		return err
	})
	eg.Go(func() (err error) {
		out.Acoustic, _, err = stt.ListAcousticModels(ctx, opts)
		return err
	})
	if err := eg.Wait(); err != nil {
		return err
	}
	return g.print(out)
}
