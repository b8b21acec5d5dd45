package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meetscribe/internal/mcpserver"
)

var (
	mcpTransport string
	mcpPort      int
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve scene detection and processing as MCP tools",
	Long: `Start a Model Context Protocol server exposing detect_scenes and
process_video. Over stdio, logs go to $XDG_CACHE_HOME/meetscribe/mcp.log so
stdout stays reserved for the protocol.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		quiet = true

		logPath, err := xdg.CacheFile(filepath.Join("meetscribe", "mcp.log"))
		if err != nil {
			return fmt.Errorf("resolve log path: %w", err)
		}
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer logFile.Close()

		a, err := newApp(ctx, logFile)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		srv := mcpserver.New(a.processor(ctx), version, a.log)
		return srv.Start(ctx, mcpTransport, mcpPort)
	},
}

func init() {
	f := mcpCmd.Flags()
	f.StringVar(&mcpTransport, "transport", "stdio", "Transport: stdio or http")
	f.IntVar(&mcpPort, "port", 8080, "Listen port for the http transport")
	rootCmd.AddCommand(mcpCmd)
}
