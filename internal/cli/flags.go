package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	Title      string
	Developer  string
	LangA      string
	LangB      string
	Serve      string
	Lookup     string
	AudioOut   string
	AnkiFile   string
	DeckName   string
	ListModels bool
	NoAutoPlay bool

	// Speech flags
	TTSProvider string
	TTSFallback string
	AudioFormat string
	Timeout     time.Duration

	// OpenAI flags
	OpenAIModel       string
	OpenAIVoice       string
	OpenAISpeed       float64
	OpenAIInstruction string
	OpenAIBaseURL     string

	// Gemini flags
	GeminiModel string
	GeminiVoice string

	// espeak-ng flags
	ESpeakSpeed int
	ESpeakPitch int
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Title:       "Bilinguo",
		Developer:   "Anonymous",
		LangA:       "en",
		LangB:       "zh-TW",
		DeckName:    "Bilinguo Glossary",
		TTSProvider: "openai",
		AudioFormat: "mp3",
		Timeout:     30 * time.Second,
		OpenAIModel: "gpt-4o-mini-tts",
		OpenAIVoice: "alloy",
		OpenAISpeed: 1.0,
		GeminiModel: "gemini-2.5-flash-preview-tts",
		GeminiVoice: "Kore",
		ESpeakSpeed: 150,
		ESpeakPitch: 50,
	}
}
