package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

// Config holds all runtime settings. OPENAI_API_KEY and OPENAI_BASE_URL are
// mandatory: without them neither transcription nor analysis can work, so
// startup aborts.
type Config struct {
	OpenAIAPIKey  string `env:"OPENAI_API_KEY,required"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL,required"`

	ChatModel    string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	WhisperModel string `env:"WHISPER_MODEL" envDefault:"whisper-1"`

	// Language hint passed to the speech-to-text service (ISO 639-1).
	Language string `env:"TRANSCRIBE_LANGUAGE" envDefault:"fa"`

	// AudioFilePath is the fixed filename the trimmed recording is written
	// to before transcription. Overwritten on every new recording.
	AudioFilePath string `env:"AUDIO_FILE" envDefault:"user_voice.wav"`

	Port string `env:"PORT" envDefault:"8080"`

	// Optional doctor notification channel. Urgent analyses are forwarded
	// to this chat when both values are set.
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	DoctorChatID     int64  `env:"DOCTOR_CHAT_ID"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}

// NotifyEnabled reports whether the doctor notification channel is configured.
func (c *Config) NotifyEnabled() bool {
	return c.TelegramBotToken != "" && c.DoctorChatID != 0
}
