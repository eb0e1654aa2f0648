package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"oracle/internal/explain"
	"oracle/internal/lsp"
)

var lspCmd = &cobra.Command{
	Use:          "lsp",
	Short:        "Run the error oracle language server over stdio",
	SilenceUsage: true,
	RunE:         runLSP,
}

func init() {
	lspCmd.Flags().String("packs", "", "directory with additional rule packs")
	lspCmd.Flags().String("log-file", "", "tee the server log into this file")
}

func runLSP(cmd *cobra.Command, _ []string) error {
	packsDir, err := cmd.Flags().GetString("packs")
	if err != nil {
		return fmt.Errorf("failed to get packs flag: %w", err)
	}
	logFile, err := cmd.Flags().GetString("log-file")
	if err != nil {
		return fmt.Errorf("failed to get log-file flag: %w", err)
	}

	table, err := loadTable(packsDir, nil)
	if err != nil {
		return err
	}

	// stdout занят протоколом, лог всегда идёт в stderr; файл его
	// только дублирует.
	var logOut io.Writer = os.Stderr
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		logOut = io.MultiWriter(os.Stderr, f)
	}

	server := lsp.NewServer(os.Stdin, os.Stdout, lsp.ServerOptions{
		Resolver: explain.NewResolver(table),
		Log:      logOut,
	})
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}
