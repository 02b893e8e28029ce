package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/bigmindhq/bigmind-extract/internal/llm"
)

// App wires configuration to the extraction pipeline and its artifacts.
type App struct {
	cfg Config
	ai  llm.Client
}

// ErrNoInput is returned when neither an input path nor a prompt is
// usable at run time.
var ErrNoInput = fmt.Errorf("no input")

func New(ctx context.Context, cfg Config) (*App, error) {
	a := &App{cfg: cfg}
	if cfg.PromptPath != "" {
		transportCfg := openai.DefaultConfig(cfg.LLMAPIKey)
		if cfg.LLMBaseURL != "" {
			transportCfg.BaseURL = cfg.LLMBaseURL
		}
		a.ai = &llm.OpenAIProvider{Inner: openai.NewClientWithConfig(transportCfg)}
	}
	return a, nil
}

func (a *App) Close() {
	// nothing yet
}

// Run obtains the raw assistant text, builds the extraction report, and
// writes the requested artifacts. An empty extraction is not an error;
// the reviewer just sees fewer suggestions.
func (a *App) Run(ctx context.Context) error {
	raw, err := a.rawText(ctx)
	if err != nil {
		return err
	}
	log.Debug().Int("chars", len(raw)).Msg("raw response loaded")

	rep := BuildReport(raw)

	out, err := rep.Encode(a.cfg.Pretty)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := a.writeOutput(out); err != nil {
		return err
	}

	if a.cfg.OutputPDFPath != "" {
		if err := writeReviewPDF(rep, a.cfg.OutputPDFPath); err != nil {
			return fmt.Errorf("write review pdf: %w", err)
		}
		log.Info().Str("out", a.cfg.OutputPDFPath).Msg("wrote review sheet")
	}

	log.Info().
		Int("enhancements", len(rep.Enhancements)).
		Int("recommendations", len(rep.Recommendations)).
		Msg("extraction complete")
	return nil
}

// rawText reads the response from the LLM (prompt mode), stdin, or a file.
func (a *App) rawText(ctx context.Context) (string, error) {
	if a.cfg.PromptPath != "" {
		prompt, err := os.ReadFile(a.cfg.PromptPath)
		if err != nil {
			return "", fmt.Errorf("read prompt: %w", err)
		}
		raw, err := llm.FetchResponse(ctx, a.ai, a.cfg.LLMModel, string(prompt))
		if err != nil {
			return "", fmt.Errorf("fetch response: %w", err)
		}
		return raw, nil
	}
	if a.cfg.InputPath == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	if strings.TrimSpace(a.cfg.InputPath) == "" {
		return "", ErrNoInput
	}
	b, err := os.ReadFile(a.cfg.InputPath)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(b), nil
}

func (a *App) writeOutput(out []byte) error {
	if a.cfg.OutputPath == "-" {
		if _, err := os.Stdout.Write(append(out, '\n')); err != nil {
			return fmt.Errorf("write stdout: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(a.cfg.OutputPath, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Info().Str("out", a.cfg.OutputPath).Msg("wrote report")
	return nil
}
