package config

import (
	"fmt"
	"strings"
)

type Config struct {
	Scene       SceneConfig       `yaml:"scene"`
	Acquire     AcquireConfig     `yaml:"acquire"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Paths       PathsConfig       `yaml:"paths"`
	Report      ReportConfig      `yaml:"report"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Summary     SummaryConfig     `yaml:"summary"`
	Storage     StorageConfig     `yaml:"storage"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Tracing     TracingConfig     `yaml:"tracing"`
}

type SceneConfig struct {
	Threshold      float64 `yaml:"threshold"`
	MinInterval    float64 `yaml:"min_interval"`
	RetryFactor    float64 `yaml:"retry_factor"`
	JPEGQuality    int     `yaml:"jpeg_quality"`
	SpikeThreshold float64 `yaml:"spike_threshold"`
}

type AcquireConfig struct {
	DownloadDir    string           `yaml:"download_dir"`
	YouTubeFormats []string         `yaml:"youtube_formats"`
	UserAgent      string           `yaml:"user_agent"`
	MaxRetries     int              `yaml:"max_retries"`
	TimeoutSeconds int              `yaml:"timeout_seconds"`
	Private        PrivateSiteConfig `yaml:"private"`
}

// PrivateSiteConfig holds CSS selectors for the login form of an authenticated site
type PrivateSiteConfig struct {
	UsernameSelector string `yaml:"username_selector"`
	PasswordSelector string `yaml:"password_selector"`
	SubmitSelector   string `yaml:"submit_selector"`
	LoginWaitSeconds int    `yaml:"login_wait_seconds"`
	Headless         bool   `yaml:"headless"`
}

type WhisperConfig struct {
	ModelPath         string `yaml:"model_path"`
	FallbackModelPath string `yaml:"fallback_model_path"`
	BinaryPath        string `yaml:"binary_path"`
	Language          string `yaml:"language"`
	Prompt            string `yaml:"prompt"`
	Threads           int    `yaml:"threads"`
	UseGPU            bool   `yaml:"use_gpu"`
}

type FFmpegConfig struct {
	BinaryPaths  []string `yaml:"binary_paths"`
	ProbePath    string   `yaml:"probe_path"`
	VideoBitrate string   `yaml:"video_bitrate"`
	AudioCodec   string   `yaml:"audio_codec"`
	Encoder      string   `yaml:"encoder"`
	Preset       string   `yaml:"preset"`
}

type PathsConfig struct {
	Input       string `yaml:"input"`
	Output      string `yaml:"output"`
	Archived    string `yaml:"archived"`
	Temp        string `yaml:"temp"`
	Frames      string `yaml:"frames"`
	Transcripts string `yaml:"transcripts"`
	Captioned   string `yaml:"captioned"`
	Reports     string `yaml:"reports"`
}

type ReportConfig struct {
	WindowSeconds    float64 `yaml:"window_seconds"`
	PictureWidthInch float64 `yaml:"picture_width_inch"`
	MaxKeyPoints     int     `yaml:"max_key_points"`
	TranscriptWords  int     `yaml:"transcript_words"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
	MaxEncoders   int `yaml:"max_encoders"`
}

type SummaryConfig struct {
	// Provider is "", "gemini" or "openai"; empty disables summaries
	Provider string   `yaml:"provider"`
	Model    string   `yaml:"model"`
	APIKeys  []string `yaml:"api_keys"`
	Prompt   string   `yaml:"prompt"`
}

type StorageConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
}

func (c *Config) Validate() error {
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Whisper.Language == "" {
		return fmt.Errorf("whisper.language is required")
	}
	if c.FFmpeg.Encoder == "" {
		return fmt.Errorf("ffmpeg.encoder is required")
	}
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Scene.MinInterval < 0 {
		return fmt.Errorf("scene.min_interval must be >= 0, got %v", c.Scene.MinInterval)
	}

	switch strings.ToLower(c.Summary.Provider) {
	case "", "gemini", "openai":
	default:
		return fmt.Errorf("summary.provider %q is not supported", c.Summary.Provider)
	}

	if c.Storage.Enabled {
		if c.Storage.Endpoint == "" {
			return fmt.Errorf("storage.endpoint is required when storage is enabled")
		}
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage.bucket is required when storage is enabled")
		}
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return fmt.Errorf("tracing.endpoint is required when tracing is enabled")
	}

	c.applyDefaults()
	return nil
}

func (c *Config) applyDefaults() {
	if c.Scene.RetryFactor == 0 {
		c.Scene.RetryFactor = 0.5
	}
	if c.Scene.JPEGQuality == 0 {
		c.Scene.JPEGQuality = 90
	}
	if c.Scene.SpikeThreshold == 0 {
		c.Scene.SpikeThreshold = 0.1
	}

	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Frames == "" {
		c.Paths.Frames = "data/frames"
	}
	if c.Paths.Transcripts == "" {
		c.Paths.Transcripts = "data/transcripts"
	}
	if c.Paths.Captioned == "" {
		c.Paths.Captioned = "data/captioned"
	}
	if c.Paths.Reports == "" {
		c.Paths.Reports = "data/reports"
	}

	if c.Acquire.DownloadDir == "" {
		c.Acquire.DownloadDir = "data/videos"
	}
	if len(c.Acquire.YouTubeFormats) == 0 {
		c.Acquire.YouTubeFormats = []string{"best[ext=mp4]/best", "bestvideo+bestaudio"}
	}
	if c.Acquire.UserAgent == "" {
		c.Acquire.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	}
	if c.Acquire.MaxRetries == 0 {
		c.Acquire.MaxRetries = 3
	}
	if c.Acquire.TimeoutSeconds == 0 {
		c.Acquire.TimeoutSeconds = 300
	}
	if c.Acquire.Private.UsernameSelector == "" {
		c.Acquire.Private.UsernameSelector = `input[name="username"], input[name="email"], #username`
	}
	if c.Acquire.Private.PasswordSelector == "" {
		c.Acquire.Private.PasswordSelector = `input[name="password"], #password`
	}
	if c.Acquire.Private.SubmitSelector == "" {
		c.Acquire.Private.SubmitSelector = `button[type="submit"], input[type="submit"]`
	}
	if c.Acquire.Private.LoginWaitSeconds == 0 {
		c.Acquire.Private.LoginWaitSeconds = 10
	}

	if len(c.FFmpeg.BinaryPaths) == 0 {
		c.FFmpeg.BinaryPaths = []string{"ffmpeg", "/usr/bin/ffmpeg", "/usr/local/bin/ffmpeg", "/opt/homebrew/bin/ffmpeg"}
	}
	if c.FFmpeg.ProbePath == "" {
		c.FFmpeg.ProbePath = "ffprobe"
	}
	if c.FFmpeg.VideoBitrate == "" {
		c.FFmpeg.VideoBitrate = "5M"
	}
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = "copy"
	}
	if c.FFmpeg.Preset == "" {
		c.FFmpeg.Preset = "medium"
	}

	if c.Report.WindowSeconds == 0 {
		c.Report.WindowSeconds = 3
	}
	if c.Report.PictureWidthInch == 0 {
		c.Report.PictureWidthInch = 4
	}
	if c.Report.MaxKeyPoints == 0 {
		c.Report.MaxKeyPoints = 5
	}
	if c.Report.TranscriptWords == 0 {
		c.Report.TranscriptWords = 40
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Performance.MaxEncoders == 0 {
		c.Performance.MaxEncoders = 1
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}

	c.Summary.Provider = strings.ToLower(c.Summary.Provider)
	if c.Summary.Model == "" {
		switch c.Summary.Provider {
		case "openai":
			c.Summary.Model = "gpt-4o-mini"
		default:
			c.Summary.Model = "gemini-2.5-flash"
		}
	}

	if c.Metrics.Port == 0 {
		c.Metrics.Port = 9090
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "meetscribe"
	}
}
