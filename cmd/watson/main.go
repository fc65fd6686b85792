// Command watson calls the Speech to Text and Discovery services from the
// command line and prints their responses as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/broady/watson"
	"github.com/broady/watson/cmd/watson/internal/config"
	"github.com/broady/watson/discovery"
	"github.com/broady/watson/internal/meta"
	"github.com/broady/watson/middleware"
	"github.com/broady/watson/speechtotext"
)

type CLI struct {
	Globals

	Version   VersionCmd   `cmd:"" help:"Print version information."`
	STT       STTCmd       `cmd:"" name:"stt" help:"Speech to Text commands."`
	Discovery DiscoveryCmd `cmd:"" help:"Discovery commands."`
}

// Globals are the flags shared by every command.
type Globals struct {
	Config         string `help:"YAML file with service credentials." type:"path" env:"WATSON_CONFIG"`
	Profile        string `help:"Profile to read from the config file." default:"default" env:"WATSON_PROFILE"`
	LogLevel       string `help:"Log level for request logging on stderr." default:"warn" enum:"debug,info,warn,error" name:"log-level"`
	LearningOptOut bool   `help:"Ask the service not to use request data for training." name:"learning-opt-out"`

	ctx    context.Context
	out    io.Writer
	logger *slog.Logger
}

func (g *Globals) profile() (config.Profile, error) {
	return config.Resolve(g.Config, g.Profile, os.Getenv)
}

func (g *Globals) serviceOptions(e config.Endpoint) *watson.ServiceOptions {
	opts := e.ServiceOptions()
	opts.Logger = g.logger
	opts.Interceptors = append(opts.Interceptors, middleware.LoggingInterceptor(g.logger))
	if g.LearningOptOut {
		opts.Interceptors = append(opts.Interceptors, middleware.LearningOptOut())
	}
	return opts
}

func (g *Globals) speechToText() (*speechtotext.Service, error) {
	p, err := g.profile()
	if err != nil {
		return nil, err
	}
	return speechtotext.New(g.serviceOptions(p.SpeechToText))
}

func (g *Globals) discovery() (*discovery.Service, error) {
	p, err := g.profile()
	if err != nil {
		return nil, err
	}
	if p.Discovery.Version == "" {
		return nil, fmt.Errorf("discovery version not configured: set %s or discovery.version in the config file", config.EnvDiscoveryVersion)
	}
	return discovery.New(p.Discovery.Version, g.serviceOptions(p.Discovery))
}

// print writes v as indented JSON.
func (g *Globals) print(v any) error {
	enc := json.NewEncoder(g.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	fmt.Fprintln(g.out, meta.Version())
	return nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func main() {
	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("watson"),
		kong.Description("Command line client for the Watson Speech to Text and Discovery services."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli.ctx = ctx
	cli.out = os.Stdout
	cli.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(cli.LogLevel)}))

	err := kctx.Run(&cli.Globals)
	kctx.FatalIfErrorf(err)
}
