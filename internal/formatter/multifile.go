package formatter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tordrt/modelflow/internal/model"
)

// MultiFileFormatter writes the model to multiple files in a directory
type MultiFileFormatter struct {
	OutputDir    string
	OutputFormat string // "text" or "markdown"
}

// NewMultiFileFormatter creates a new multi-file formatter
func NewMultiFileFormatter(outputDir, format string) *MultiFileFormatter {
	return &MultiFileFormatter{
		OutputDir:    outputDir,
		OutputFormat: format,
	}
}

// Format writes an overview file plus one file per table
func (f *MultiFileFormatter) Format(p *model.Project) error {
	if f.OutputFormat != FormatText && f.OutputFormat != FormatMarkdown {
		return fmt.Errorf("invalid multi-file format: %s (must be 'text' or 'markdown')", f.OutputFormat)
	}

	names, err := fileNames(p.Tables)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(f.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := f.writeFile("_overview", func(w io.Writer) { f.writeOverview(w, p) }); err != nil {
		return fmt.Errorf("failed to write overview: %w", err)
	}

	for i := range p.Tables {
		table := &p.Tables[i]
		if err := f.writeFile(names[i], func(w io.Writer) { f.writeTable(w, p, table) }); err != nil {
			return fmt.Errorf("failed to write table file for %s: %w", qualifiedName(table), err)
		}
	}

	return nil
}

var pathSeparators = strings.NewReplacer("/", "_", `\`, "_")

// fileNames returns the base file name of each table, named after its
// schema-qualified name. Two tables may not share a file.
func fileNames(tables []model.Table) ([]string, error) {
	names := make([]string, len(tables))
	owners := make(map[string]string, len(tables))

	for i := range tables {
		qualified := qualifiedName(&tables[i])
		name := pathSeparators.Replace(qualified)
		key := strings.ToLower(name)
		if name == "" || key == "_overview" {
			return nil, fmt.Errorf("table %q cannot be written to its own file", qualified)
		}

		if other, ok := owners[key]; ok {
			return nil, fmt.Errorf("tables %q and %q would be written to the same file", other, qualified)
		}
		owners[key] = qualified
		names[i] = name
	}
	return names, nil
}

func (f *MultiFileFormatter) writeFile(name string, write func(io.Writer)) error {
	file, err := os.Create(filepath.Join(f.OutputDir, name+f.getFileExtension()))
	if err != nil {
		return err
	}
	write(file)
	return file.Close()
}

func (f *MultiFileFormatter) writeOverview(w io.Writer, p *model.Project) {
	sorted := make([]*model.Table, len(p.Tables))
	for i := range p.Tables {
		sorted[i] = &p.Tables[i]
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	if f.OutputFormat == FormatMarkdown {
		_, _ = fmt.Fprintf(w, "# Model Overview\n\n")
		_, _ = fmt.Fprintf(w, "Each table has a corresponding file: `<schema>.<table_name>%s`, or `<table_name>%s` without a schema\n\n", f.getFileExtension(), f.getFileExtension())
		_, _ = fmt.Fprintf(w, "## Tables\n\n")
	} else {
		_, _ = fmt.Fprintf(w, "MODEL OVERVIEW\n")
		_, _ = fmt.Fprintf(w, "Each table has a file: [<schema>.]<table_name>%s\n\n", f.getFileExtension())
	}

	for _, table := range sorted {
		if f.OutputFormat == FormatMarkdown {
			_, _ = fmt.Fprintf(w, "- **%s**", qualifiedName(table))
		} else {
			_, _ = fmt.Fprintf(w, "%s", qualifiedName(table))
		}

		if refs := outgoing(p, table); len(refs) > 0 {
			targets := make([]string, 0, len(refs))
			for _, ref := range refs {
				targets = append(targets, ref.TargetTable)
			}
			_, _ = fmt.Fprintf(w, " (references: %s)", strings.Join(targets, ", "))
		}
		_, _ = fmt.Fprintln(w)
	}
}

func (f *MultiFileFormatter) writeTable(w io.Writer, p *model.Project, table *model.Table) {
	if f.OutputFormat == FormatMarkdown {
		NewMarkdownFormatter(w).FormatTable(p, table)
	} else {
		NewTextFormatter(w).formatTable(p, table)
	}

	refs := incoming(p, table)
	if len(refs) == 0 {
		return
	}

	if f.OutputFormat == FormatMarkdown {
		_, _ = fmt.Fprintf(w, "### Referenced by\n\n")
		for _, ref := range refs {
			_, _ = fmt.Fprintf(w, "- %s.%s → %s (%s)\n", ref.SourceTable, ref.SourceColumn, ref.TargetColumn, ref.Type)
		}
		_, _ = fmt.Fprintln(w)
		return
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "  REFERENCED BY:")
	for _, ref := range refs {
		_, _ = fmt.Fprintf(w, "    %s.%s → %s (%s)\n", ref.SourceTable, ref.SourceColumn, ref.TargetColumn, ref.Type)
	}
}

func (f *MultiFileFormatter) getFileExtension() string {
	if f.OutputFormat == FormatMarkdown {
		return ".md"
	}
	return ".txt"
}
