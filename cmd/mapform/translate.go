package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-mapform/pkg/options"
)

func newTranslateCommand(root *rootOptions) *cobra.Command {
	var convention string
	cmd := &cobra.Command{
		Use:   "translate [file]",
		Short: "Translate option keys between snake_case and camelCase",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var conv options.Convention
			switch convention {
			case "camel":
				conv = options.CamelCase
			case "snake":
				conv = options.SnakeCase
			default:
				return fmt.Errorf("mapform: unknown convention %q (camel or snake)", convention)
			}

			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			var raw options.Map
			if err := readDocument(cmd, path, &raw); err != nil {
				return err
			}
			translated, err := options.Translate(raw, conv)
			if err != nil {
				return err
			}
			root.logger.Debug("translated options", zap.String("convention", convention), zap.Int("keys", len(translated)))
			return writeJSON(cmd.OutOrStdout(), translated)
		},
	}
	cmd.Flags().StringVarP(&convention, "convention", "c", "camel", "Target convention: camel or snake")
	return cmd
}
