package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tordrt/modelflow"
	"github.com/tordrt/modelflow/internal/erdl"
)

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse an ERDL file and print the model",
		Long: `Parse reads ERDL from a file, or from stdin when the file is "-" or omitted,
and prints the resulting tables. Lines that cannot be parsed are reported on
stderr; the remaining tables are still printed and the command fails.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return a.runParse(cmd, path)
		},
	}
}

func (a *app) runParse(cmd *cobra.Command, path string) error {
	var (
		res *erdl.Result
		err error
	)
	if path == "-" {
		res, err = modelflow.ParseReader(cmd.InOrStdin())
	} else {
		res, err = modelflow.ParseFile(path)
	}
	if err != nil {
		return err
	}

	a.logger.Debug("parsed ERDL", "path", path, "tables", len(res.Tables), "errors", len(res.Errors))

	for _, e := range res.Errors {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), e)
	}

	if err := a.writeTables(cmd, res.Tables); err != nil {
		return err
	}

	if !res.Success {
		return fmt.Errorf("%w: %d error(s) in %s", modelflow.ErrParseFailed, len(res.Errors), path)
	}
	return nil
}
