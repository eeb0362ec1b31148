package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tordrt/modelflow/internal/erdl"
)

func newSampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Print a sample ERDL model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), erdl.Sample)
			return err
		},
	}
}
