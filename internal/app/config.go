package app

// Config holds runtime configuration for the application.
type Config struct {
	// Input is the path to a raw assistant response, or "-" for stdin.
	// Ignored when PromptPath is set and an LLM is configured.
	InputPath  string
	OutputPath string
	// OutputPDFPath, when set, additionally writes a review sheet PDF.
	OutputPDFPath string

	// LLM fetch mode: send the prompt at PromptPath to an
	// OpenAI-compatible endpoint and extract from its reply.
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string
	PromptPath string

	// Behavior
	Pretty  bool
	Verbose bool
}
