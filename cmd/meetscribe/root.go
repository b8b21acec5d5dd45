package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nguyentantai21042004/meetscribe/internal/config"
)

var (
	cfgFile string
	quiet   bool
	v       = config.NewViper()
)

var rootCmd = &cobra.Command{
	Use:   "meetscribe",
	Short: "Turn meeting recordings into captioned videos and documented reports",
	Long: `meetscribe fetches a meeting recording, finds the moments the picture
changes (slides, screen shares), transcribes the speech with whisper.cpp,
burns the subtitles into the video with ffmpeg and writes a DOCX report that
pairs every scene change with what was being said.

Configuration is read from --config, ./config.yaml or
$XDG_CONFIG_HOME/meetscribe/config.yaml. Flags and MEETSCRIBE_* environment
variables override file values.`,
	SilenceUsage: true,
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetContext(ctx)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// bindFlag exposes a flag under a dotted config key, e.g. scene.threshold
func bindFlag(flags *pflag.FlagSet, name, key string) {
	_ = v.BindPFlag(key, flags.Lookup(name))
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default ./config.yaml or $XDG_CONFIG_HOME/meetscribe/config.yaml)")
	pf.BoolVarP(&quiet, "quiet", "q", false, "Hide progress bars and the run summary")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("log-format", "", "Log encoding: console or json")
	pf.Float64("threshold", 0, "Scene-change dissimilarity threshold in [0,1]")
	pf.Float64("min-interval", 0, "Minimum seconds between two scene changes")
	pf.String("model", "", "Path of the whisper.cpp model file")
	pf.String("language", "", "Spoken language, or auto")

	bindFlag(pf, "log-level", "logging.level")
	bindFlag(pf, "log-format", "logging.format")
	bindFlag(pf, "threshold", "scene.threshold")
	bindFlag(pf, "min-interval", "scene.min_interval")
	bindFlag(pf, "model", "whisper.model_path")
	bindFlag(pf, "language", "whisper.language")
}
