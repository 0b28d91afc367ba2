package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/expenserule/expenserule/internal/catalog"
	"github.com/expenserule/expenserule/internal/categorize"
	"github.com/expenserule/expenserule/internal/common"
	"github.com/expenserule/expenserule/internal/config"
	"github.com/expenserule/expenserule/internal/llm"
	"github.com/expenserule/expenserule/internal/service"
)

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify MERCHANT",
		Short: "Classify a single merchant name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			merchant := args[0]

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			key, err := config.LoadAPIKey(dataDir())
			if err != nil {
				if errors.Is(err, common.ErrMissingAPIKey) {
					return common.NewUserError("no OpenAI API key configured: run 'expenserule setup' first", err)
				}
				return err
			}

			cfg := llmConfig()
			cfg.APIKey = key
			client, err := llm.NewClient(cfg)
			if err != nil {
				return fmt.Errorf("failed to create LLM client: %w", err)
			}

			cat := catalog.Default()
			classifier := llm.NewClassifier(client, cat, slog.Default(), service.RetryOptions{
				MaxAttempts:  cfg.MaxRetries,
				InitialDelay: cfg.RetryDelay,
			})
			resolver := categorize.NewResolver(store, cat, classifier, slog.Default())

			result := resolver.Resolve(ctx, merchant)
			fmt.Printf("%s\n  category: %s\n  schedule C line: %s\n  source: %s\n",
				merchant, result.Category, result.ScheduleCLine, result.Source)
			return nil
		},
	}
}
