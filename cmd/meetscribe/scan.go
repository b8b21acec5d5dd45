package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meetscribe/internal/scene"
)

var spikes bool

var scanCmd = &cobra.Command{
	Use:   "scan <video>",
	Short: "Detect scene changes in a local video and print them as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.close(ctx)

		proc := a.processor(ctx)
		var events []scene.Event
		if spikes {
			events, err = proc.DetectSpikes(ctx, args[0])
		} else {
			events, err = proc.DetectScenes(ctx, args[0])
		}
		if err != nil {
			return err
		}
		if events == nil {
			events = []scene.Event{}
		}

		data, err := json.MarshalIndent(events, "", "  ")
		if err != nil {
			return fmt.Errorf("encode events: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	scanCmd.Flags().BoolVar(&spikes, "spikes", false, "Use the click-spike detector instead of the scene scan")
	rootCmd.AddCommand(scanCmd)
}
