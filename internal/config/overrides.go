package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. MEETSCRIBE_SCENE_THRESHOLD
const EnvPrefix = "MEETSCRIBE"

// NewViper returns a viper instance reading MEETSCRIBE_* environment variables.
// Callers bind cobra flags to the dotted keys used by ApplyOverrides.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ApplyOverrides copies every key explicitly set in v (flag or env) onto cfg
func ApplyOverrides(cfg *Config, v *viper.Viper) {
	floats := map[string]*float64{
		"scene.threshold":       &cfg.Scene.Threshold,
		"scene.min_interval":    &cfg.Scene.MinInterval,
		"scene.retry_factor":    &cfg.Scene.RetryFactor,
		"scene.spike_threshold": &cfg.Scene.SpikeThreshold,
		"report.window_seconds": &cfg.Report.WindowSeconds,
	}
	for key, dst := range floats {
		if v.IsSet(key) {
			*dst = v.GetFloat64(key)
		}
	}

	ints := map[string]*int{
		"scene.jpeg_quality":         &cfg.Scene.JPEGQuality,
		"whisper.threads":            &cfg.Whisper.Threads,
		"performance.max_concurrent": &cfg.Performance.MaxConcurrent,
		"performance.max_encoders":   &cfg.Performance.MaxEncoders,
		"metrics.port":               &cfg.Metrics.Port,
	}
	for key, dst := range ints {
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}

	strs := map[string]*string{
		"whisper.model_path":          &cfg.Whisper.ModelPath,
		"whisper.fallback_model_path": &cfg.Whisper.FallbackModelPath,
		"whisper.binary_path":         &cfg.Whisper.BinaryPath,
		"whisper.language":            &cfg.Whisper.Language,
		"ffmpeg.encoder":              &cfg.FFmpeg.Encoder,
		"paths.input":                 &cfg.Paths.Input,
		"paths.output":                &cfg.Paths.Output,
		"paths.frames":                &cfg.Paths.Frames,
		"logging.level":               &cfg.Logging.Level,
		"logging.format":              &cfg.Logging.Format,
		"summary.provider":            &cfg.Summary.Provider,
		"summary.model":               &cfg.Summary.Model,
		"storage.endpoint":            &cfg.Storage.Endpoint,
		"storage.access_key":          &cfg.Storage.AccessKey,
		"storage.secret_key":          &cfg.Storage.SecretKey,
		"storage.bucket":              &cfg.Storage.Bucket,
		"tracing.endpoint":            &cfg.Tracing.Endpoint,
	}
	for key, dst := range strs {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	// a new provider without a model takes that provider's default on Validate
	if v.IsSet("summary.provider") && !v.IsSet("summary.model") {
		cfg.Summary.Model = ""
	}

	bools := map[string]*bool{
		"storage.enabled": &cfg.Storage.Enabled,
		"metrics.enabled": &cfg.Metrics.Enabled,
		"tracing.enabled": &cfg.Tracing.Enabled,
	}
	for key, dst := range bools {
		if v.IsSet(key) {
			*dst = v.GetBool(key)
		}
	}

	if v.IsSet("summary.api_keys") {
		cfg.Summary.APIKeys = v.GetStringSlice("summary.api_keys")
	}
}
