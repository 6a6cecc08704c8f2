package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crossvet/crossvet/internal/git"
	"github.com/crossvet/crossvet/internal/mcp"
	"github.com/crossvet/crossvet/internal/store"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP stdio server",
	Long: `Run crossvet as an MCP server over stdio.

The connected client supplies the reviewer model through MCP sampling.
Exposes the review_code, detect_model, and review_history tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcpRun()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func mcpRun() error {
	// Stdout carries the protocol, so logs go to stderr.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	var history store.Store
	if viper.GetBool("review.history") {
		s, err := getStore()
		if err != nil {
			// History is advisory; the server still reviews without it.
			slog.Warn("review history unavailable", "error", err)
		} else {
			history = s
		}
	}

	srv := mcp.NewServer(history, git.NewClient(), git.NewGitHubClient(), catalog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ServeStdio(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
