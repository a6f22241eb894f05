package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-mapform/pkg/geometry"
)

func newEWKTCommand(root *rootOptions) *cobra.Command {
	var (
		srid       int
		collection bool
	)
	cmd := &cobra.Command{
		Use:   "ewkt <geometry>...",
		Short: "Normalise WKT, EWKT or hex EWKB into SRID tagged text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if collection {
				values := make([]any, len(args))
				for idx, arg := range args {
					values[idx] = arg
				}
				text, err := geometry.ToCollectionText(values, srid)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, text)
				return err
			}
			for _, arg := range args {
				text, err := geometry.ToText(arg, srid)
				if err != nil {
					return err
				}
				root.logger.Debug("normalised geometry", zap.String("input", arg), zap.String("output", text))
				if _, err := fmt.Fprintln(out, text); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&srid, "srid", "s", geometry.DefaultSRID, "Output spatial reference")
	cmd.Flags().BoolVar(&collection, "collection", false, "Combine all inputs into one collection")
	return cmd
}
