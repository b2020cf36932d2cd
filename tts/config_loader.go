package tts

import (
	"time"

	"github.com/spf13/viper"
)

// LoadConfigFromViper overlays config-file settings from Viper onto cfg.
// Only keys the file actually sets are applied, so environment values
// survive for everything else.
func LoadConfigFromViper(cfg Config) Config {
	if viper.IsSet("speech.openai_voice") {
		cfg.OpenAIVoice = viper.GetString("speech.openai_voice")
	}
	if viper.IsSet("speech.openai_model") {
		cfg.OpenAIModel = viper.GetString("speech.openai_model")
	}
	if viper.IsSet("speech.openai_speed") {
		cfg.OpenAISpeed = viper.GetFloat64("speech.openai_speed")
	}
	if viper.IsSet("speech.fallback_enabled") {
		cfg.FallbackEnabled = viper.GetBool("speech.fallback_enabled")
	}
	if viper.IsSet("speech.output_dir") {
		cfg.OutputDir = viper.GetString("speech.output_dir")
	}
	if viper.IsSet("speech.cleanup_interval") {
		cfg.CleanupInterval = viperDuration("speech.cleanup_interval", cfg.CleanupInterval)
	}
	if viper.IsSet("speech.max_audio_age") {
		cfg.MaxAudioAge = viperDuration("speech.max_audio_age", cfg.MaxAudioAge)
	}
	return cfg
}

func viperDuration(key string, fallback time.Duration) time.Duration {
	if d := viper.GetDuration(key); d > 0 {
		return d
	}
	return fallback
}
