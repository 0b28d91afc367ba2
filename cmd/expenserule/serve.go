package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/expenserule/expenserule/internal/config"
	"github.com/expenserule/expenserule/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the expense tracking web server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			dir := dataDir()
			if !config.HasAPIKey(dir) {
				slog.Warn("no OpenAI API key configured; receipt parsing is disabled until setup",
					"hint", "run 'expenserule setup' or POST /setup")
			}

			srv := server.New(server.Config{
				Addr:    viper.GetString("server.addr"),
				DataDir: dir,
				LLM:     llmConfig(),
			}, store, slog.Default())

			if err := srv.ListenAndServe(ctx); err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().String("addr", "", "listen address (default 127.0.0.1:8765)")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}
