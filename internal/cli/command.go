package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/bilinguo/internal"
	"codeberg.org/snonux/bilinguo/internal/audio"
	"codeberg.org/snonux/bilinguo/internal/lang"
	"codeberg.org/snonux/bilinguo/internal/session"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bilinguo [glossary]",
		Short: "Bilingual Glossary Viewer",
		Long: `bilinguo loads a two-column glossary table and looks terms up in
both directions, speaking the translation aloud.

The first column holds terms in language A, the second column terms in
language B. CSV, TSV and "termA = termB" text files are supported.

Examples:
  bilinguo                              # Launch interactive GUI (default)
  bilinguo terms.csv                    # Launch GUI with a glossary loaded
  bilinguo terms.csv --lookup dog       # Look a term up from the command line
  bilinguo terms.csv --serve :8080      # Serve the glossary over HTTP
  bilinguo terms.csv --anki terms.apkg  # Export the glossary as an Anki deck`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.bilinguo.yaml)")

	// Local flags
	cmd.Flags().StringVar(&flags.Title, "title", flags.Title, "Window and page title")
	cmd.Flags().StringVar(&flags.Developer, "developer", flags.Developer, "Developer name shown under the title")
	cmd.Flags().StringVarP(&flags.LangA, "lang-a", "a", flags.LangA, "Language of the first column: "+languageList())
	cmd.Flags().StringVarP(&flags.LangB, "lang-b", "b", flags.LangB, "Language of the second column: "+languageList())
	cmd.Flags().StringVar(&flags.Serve, "serve", "", "Serve the glossary over HTTP on this address (e.g. :8080)")
	cmd.Flags().StringVarP(&flags.Lookup, "lookup", "l", "", "Look up a single term and print the result")
	cmd.Flags().StringVar(&flags.AudioOut, "audio-out", "", "Write the spoken translation of --lookup to this file")
	cmd.Flags().StringVar(&flags.AnkiFile, "anki", "", "Export the glossary as an Anki package (.apkg)")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for APKG export")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI speech models for the current API key")
	cmd.Flags().BoolVar(&flags.NoAutoPlay, "no-auto-play", false, "Disable automatic audio playback in GUI mode (auto-play is enabled by default)")

	// Speech flags
	cmd.Flags().StringVar(&flags.TTSProvider, "tts", flags.TTSProvider, "Speech provider: openai, gemini or espeak")
	cmd.Flags().StringVar(&flags.TTSFallback, "tts-fallback", "", "Provider tried when the primary one fails (e.g. espeak)")
	cmd.Flags().StringVarP(&flags.AudioFormat, "format", "f", flags.AudioFormat, "Audio format (wav or mp3)")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Timeout of a single speech request")

	// OpenAI flags
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, ballad, coral, echo, fable, onyx, nova, sage, shimmer, verse")
	cmd.Flags().Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0, may be ignored by gpt-4o-mini-tts)")
	cmd.Flags().StringVar(&flags.OpenAIInstruction, "openai-instruction", "", "Extra voice instructions for gpt-4o-mini-tts (e.g., 'speak with a Taipei accent')")
	cmd.Flags().StringVar(&flags.OpenAIBaseURL, "openai-base-url", "", "Base URL of an OpenAI compatible API")

	// Gemini flags
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini speech model")
	cmd.Flags().StringVar(&flags.GeminiVoice, "gemini-voice", flags.GeminiVoice, "Gemini prebuilt voice (e.g. Kore, Puck, Charon)")

	// espeak-ng flags
	cmd.Flags().IntVar(&flags.ESpeakSpeed, "espeak-speed", flags.ESpeakSpeed, "espeak-ng speed in words per minute")
	cmd.Flags().IntVar(&flags.ESpeakPitch, "espeak-pitch", flags.ESpeakPitch, "espeak-ng pitch (0-99)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

// viperKeys maps flag names to their configuration file keys
var viperKeys = map[string]string{
	"title":              "title",
	"developer":          "developer",
	"lang-a":             "lang_a",
	"lang-b":             "lang_b",
	"serve":              "server.addr",
	"deck-name":          "anki.deck_name",
	"no-auto-play":       "gui.no_auto_play",
	"tts":                "audio.provider",
	"tts-fallback":       "audio.fallback",
	"format":             "audio.format",
	"timeout":            "audio.timeout",
	"openai-model":       "audio.openai_model",
	"openai-voice":       "audio.openai_voice",
	"openai-speed":       "audio.openai_speed",
	"openai-instruction": "audio.openai_instruction",
	"openai-base-url":    "audio.openai_base_url",
	"gemini-model":       "audio.gemini_model",
	"gemini-voice":       "audio.gemini_voice",
	"espeak-speed":       "audio.espeak_speed",
	"espeak-pitch":       "audio.espeak_pitch",
}

func bindFlagsToViper(cmd *cobra.Command) {
	for name, key := range viperKeys {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			viper.BindPFlag(key, flag)
		}
	}
}

func languageList() string {
	return strings.Join(lang.Supported(), ", ")
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".bilinguo" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".bilinguo")
	}

	// Environment variables
	viper.SetEnvPrefix("BILINGUO")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// ApplyConfig copies values set in the config file or environment into
// flags. Flags given on the command line win because viper reports the
// bound flag value for them.
func ApplyConfig(flags *Flags) {
	if viper.IsSet("title") {
		flags.Title = viper.GetString("title")
	}
	if viper.IsSet("developer") {
		flags.Developer = viper.GetString("developer")
	}
	if viper.IsSet("lang_a") {
		flags.LangA = viper.GetString("lang_a")
	}
	if viper.IsSet("lang_b") {
		flags.LangB = viper.GetString("lang_b")
	}
	if flags.Serve == "" && viper.IsSet("server.addr") {
		flags.Serve = viper.GetString("server.addr")
	}
	if viper.IsSet("anki.deck_name") {
		flags.DeckName = viper.GetString("anki.deck_name")
	}
	if viper.IsSet("gui.no_auto_play") {
		flags.NoAutoPlay = viper.GetBool("gui.no_auto_play")
	}
	if viper.IsSet("audio.provider") {
		flags.TTSProvider = viper.GetString("audio.provider")
	}
	if viper.IsSet("audio.fallback") {
		flags.TTSFallback = viper.GetString("audio.fallback")
	}
	if viper.IsSet("audio.format") {
		flags.AudioFormat = viper.GetString("audio.format")
	}
	if viper.IsSet("audio.timeout") {
		flags.Timeout = viper.GetDuration("audio.timeout")
	}
	if viper.IsSet("audio.openai_model") {
		flags.OpenAIModel = viper.GetString("audio.openai_model")
	}
	if viper.IsSet("audio.openai_voice") {
		flags.OpenAIVoice = viper.GetString("audio.openai_voice")
	}
	if viper.IsSet("audio.openai_speed") {
		flags.OpenAISpeed = viper.GetFloat64("audio.openai_speed")
	}
	if viper.IsSet("audio.openai_instruction") {
		flags.OpenAIInstruction = viper.GetString("audio.openai_instruction")
	}
	if viper.IsSet("audio.openai_base_url") {
		flags.OpenAIBaseURL = viper.GetString("audio.openai_base_url")
	}
	if viper.IsSet("audio.gemini_model") {
		flags.GeminiModel = viper.GetString("audio.gemini_model")
	}
	if viper.IsSet("audio.gemini_voice") {
		flags.GeminiVoice = viper.GetString("audio.gemini_voice")
	}
	if viper.IsSet("audio.espeak_speed") {
		flags.ESpeakSpeed = viper.GetInt("audio.espeak_speed")
	}
	if viper.IsSet("audio.espeak_pitch") {
		flags.ESpeakPitch = viper.GetInt("audio.espeak_pitch")
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("audio.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("audio.gemini_key")
}

// AudioConfig builds the speech provider configuration from flags
func AudioConfig(flags *Flags) (*audio.Config, error) {
	format, err := audio.ParseFormat(flags.AudioFormat)
	if err != nil {
		return nil, err
	}

	config := audio.DefaultProviderConfig()
	config.Provider = flags.TTSProvider
	config.Fallback = flags.TTSFallback
	config.Format = format
	config.Timeout = flags.Timeout

	config.OpenAIKey = GetOpenAIKey()
	config.OpenAIBaseURL = flags.OpenAIBaseURL
	config.OpenAIModel = flags.OpenAIModel
	config.OpenAIVoice = flags.OpenAIVoice
	config.OpenAISpeed = flags.OpenAISpeed
	config.OpenAIInstruction = flags.OpenAIInstruction

	config.GeminiKey = GetGeminiKey()
	config.GeminiModel = flags.GeminiModel
	config.GeminiVoice = flags.GeminiVoice

	config.ESpeakSpeed = flags.ESpeakSpeed
	config.ESpeakPitch = flags.ESpeakPitch

	// Circuit breaker tuning is config file only
	if viper.IsSet("audio.breaker_failures") {
		config.BreakerFailures = uint32(viper.GetUint("audio.breaker_failures"))
	}
	if viper.IsSet("audio.breaker_cooldown") {
		config.BreakerCooldown = viper.GetDuration("audio.breaker_cooldown")
	}

	return config, nil
}

// SessionConfig validates the language pair and builds the session
// configuration from flags
func SessionConfig(flags *Flags) (session.Config, error) {
	pair, err := lang.NewPair(flags.LangA, flags.LangB)
	if err != nil {
		return session.Config{}, fmt.Errorf("invalid language configuration: %w", err)
	}

	return session.Config{
		Title:         flags.Title,
		Developer:     flags.Developer,
		Pair:          pair,
		SpeechTimeout: flags.Timeout,
	}, nil
}
