package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the working directory and XDG config home
const FileName = "config.yaml"

// Default returns a configuration that runs without any config file
func Default() *Config {
	cfg := &Config{
		Scene: SceneConfig{
			Threshold:   0.35,
			MinInterval: 0.5,
		},
		Whisper: WhisperConfig{
			ModelPath:  "models/ggml-small.bin",
			BinaryPath: "whisper-cli",
			Language:   "auto",
		},
		FFmpeg: FFmpegConfig{
			Encoder: "libx264",
		},
		Paths: PathsConfig{
			Input:  "data/input",
			Output: "data/output",
		},
		Acquire: AcquireConfig{
			Private: PrivateSiteConfig{Headless: true},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML config file on top of Default and validates it
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Locate resolves the config file: an explicit path wins, then the working
// directory, then $XDG_CONFIG_HOME/meetscribe. An empty result means no file.
func Locate(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}

	if _, err := os.Stat(FileName); err == nil {
		return FileName, nil
	}

	path, err := xdg.SearchConfigFile(filepath.Join("meetscribe", FileName))
	if err != nil {
		return "", nil
	}
	return path, nil
}

// LoadOrDefault loads the located config file or falls back to Default
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Locate(explicit)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return Default(), "", nil
	}

	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), "", nil
		}
		return nil, path, err
	}
	return cfg, path, nil
}
