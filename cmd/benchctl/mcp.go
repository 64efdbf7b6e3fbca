package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yigit/benchtrack/internal/pkg/logger"
	"github.com/yigit/benchtrack/internal/pkg/mcp"
	"github.com/yigit/benchtrack/internal/pkg/resume"
	"github.com/yigit/benchtrack/internal/pkg/training"
)

const mcpVersion = "1.0.0"

var mcpLogLevel string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve BenchTrack tools over MCP (JSON-RPC 2.0 on stdin/stdout)",
	Long: `Serve the training or resume tools to an MCP client. Requests are read
one per line from stdin and responses written one per line to stdout.
Logs go to stderr.`,
}

var mcpTrainingCmd = &cobra.Command{
	Use:   "training",
	Short: "Serve training recommendation, skill gap and catalog tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		lgr := mcpLogger("training-recommendation-mcp")
		srv := mcp.NewServer("training-recommendation-mcp", mcpVersion, lgr,
			mcp.TrainingTools(training.NewEngine(nil))...)
		return serveStdio(cmd.Context(), srv)
	},
}

var mcpResumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Serve resume analysis tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		lgr := mcpLogger("resume-analyzer-mcp")
		srv := mcp.NewServer("resume-analyzer-mcp", mcpVersion, lgr,
			mcp.ResumeTools(resume.NewAnalyzer(), resume.PDFExtractor{MaxPages: 20})...)
		return serveStdio(cmd.Context(), srv)
	},
}

func init() {
	mcpCmd.PersistentFlags().StringVar(&mcpLogLevel, "log-level", "info", "Log level for stderr output")
	mcpCmd.AddCommand(mcpTrainingCmd)
	mcpCmd.AddCommand(mcpResumeCmd)
}

// mcpLogger writes to stderr; stdout carries the protocol
func mcpLogger(service string) zerolog.Logger {
	logger.Configure(logger.Config{
		Level:   logger.ParseLevel(mcpLogLevel),
		Output:  os.Stderr,
		Service: service,
	})
	return logger.Get()
}

func serveStdio(ctx context.Context, srv *mcp.Server) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		log := logger.Get()
		log.Error().Err(err).Msg("MCP server stopped")
		return err
	}
	return nil
}
