package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tordrt/modelflow"
	"github.com/tordrt/modelflow/internal/model"
)

func (a *app) writeTables(cmd *cobra.Command, tables []model.Table) error {
	return a.writeProject(cmd, &model.Project{Tables: tables, Relations: []model.Relation{}})
}

// writeProject writes to the configured directory, file or stdout.
func (a *app) writeProject(cmd *cobra.Command, p *model.Project) error {
	out := a.cfg.Output

	// Multi-file output only pays off above the split threshold
	shouldSplit := out.Dir != "" && (out.SplitThreshold == 0 || len(p.Tables) > out.SplitThreshold)
	if shouldSplit {
		a.logger.Debug("writing multi-file output", "dir", out.Dir, "tables", len(p.Tables))
		if err := modelflow.FormatProject(p, &modelflow.OutputOptions{Format: out.Format, OutputDir: out.Dir}); err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		return nil
	}

	var writer io.Writer = cmd.OutOrStdout()
	if out.File != "" {
		f, err := os.Create(out.File)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				a.logger.Warn("failed to close output file", "path", out.File, "error", err)
			}
		}()
		writer = f
	}

	if err := modelflow.FormatProject(p, &modelflow.OutputOptions{Format: out.Format, Writer: writer}); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return nil
}
