package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/expenserule/expenserule/internal/config"
)

func setupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup [API_KEY]",
		Short: "Store the OpenAI API key used for receipt parsing and classification",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				fmt.Fprint(cmd.OutOrStdout(), "OpenAI API key: ")
				reader := bufio.NewReader(cmd.InOrStdin())
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("failed to read API key: %w", err)
				}
				key = strings.TrimSpace(line)
			}

			if err := config.SaveAPIKey(dataDir(), key); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "API key saved.")
			return nil
		},
	}
}
