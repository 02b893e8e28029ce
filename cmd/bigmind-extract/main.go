package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bigmindhq/bigmind-extract/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		inputPath  string
		outputPath string
		outputPDF  string
		configPath string
		llmBaseURL string
		llmModel   string
		llmKey     string
		promptPath string
		pretty     bool
		verbose    bool
	)

	flag.StringVar(&inputPath, "input", "response.txt", "Path to a raw assistant response, or '-' for stdin")
	flag.StringVar(&outputPath, "output", "-", "Path to write the JSON extraction report, or '-' for stdout")
	flag.StringVar(&outputPDF, "output.pdf", "", "Optional path to write a PDF review sheet")
	flag.StringVar(&configPath, "config", os.Getenv("BIGMIND_CONFIG"), "Optional YAML/JSON config file")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for OpenAI-compatible server")
	flag.StringVar(&promptPath, "prompt", "", "Path to a prompt file; fetches the response from the LLM instead of reading -input")
	flag.BoolVar(&pretty, "pretty", false, "Indent the JSON report")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg := app.Config{
		InputPath:     inputPath,
		OutputPath:    outputPath,
		OutputPDFPath: outputPDF,
		LLMBaseURL:    llmBaseURL,
		LLMModel:      llmModel,
		LLMAPIKey:     llmKey,
		PromptPath:    promptPath,
		Pretty:        pretty,
		Verbose:       verbose,
	}

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("config", configPath).Msg("config load failed")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := app.ValidateConfig(cfg); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Exit code policy: an empty extraction is a silent degradation,
		// not a failure; only I/O and configuration errors are fatal.
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}
