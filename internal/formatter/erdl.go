package formatter

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/tordrt/modelflow/internal/model"
)

// ERDLFormatter writes tables back out as ERDL text that the parser accepts.
// Keys, nullability and relations are not part of the grammar and are not
// written.
type ERDLFormatter struct {
	writer io.Writer
}

// NewERDLFormatter creates a new ERDL formatter
func NewERDLFormatter(w io.Writer) *ERDLFormatter {
	return &ERDLFormatter{writer: w}
}

// Format writes one header per table followed by its columns. Nothing is
// written when a name or type cannot be expressed in the grammar.
func (f *ERDLFormatter) Format(p *model.Project) error {
	if err := checkERDL(p.Tables); err != nil {
		return err
	}

	for i := range p.Tables {
		table := &p.Tables[i]
		if i > 0 {
			_, _ = fmt.Fprintln(f.writer)
		}

		_, _ = fmt.Fprintf(f.writer, "%s-\n", qualifiedName(table))
		for _, col := range table.Columns {
			_, _ = fmt.Fprintf(f.writer, "%s %s\n", col.Name, col.Type)
		}
	}
	return nil
}

func checkERDL(tables []model.Table) error {
	var errs []error
	for i := range tables {
		table := &tables[i]
		if err := checkTableName(table); err != nil {
			errs = append(errs, err)
		}
		for _, col := range table.Columns {
			switch {
			case col.Name == "" || hasSpace(col.Name):
				errs = append(errs, fmt.Errorf("table %s, column %q: name must be non-empty and contain no whitespace", table.Name, col.Name))
			case strings.TrimSpace(col.Type) == "":
				errs = append(errs, fmt.Errorf("table %s, column %s: type is empty", table.Name, col.Name))
			case strings.HasSuffix(col.Type, "-"):
				errs = append(errs, fmt.Errorf("table %s, column %s: type must not end with '-'", table.Name, col.Name))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("model cannot be written as ERDL: %w", errors.Join(errs...))
	}
	return nil
}

// checkTableName rejects names the parser would read back as a different
// table: a dot in the name moves its prefix into the schema, and a
// surrounding pair of quotes is stripped.
func checkTableName(table *model.Table) error {
	qualified := qualifiedName(table)
	switch {
	case table.Name == "" || hasSpace(qualified):
		return fmt.Errorf("table %q: name must be non-empty and contain no whitespace", qualified)
	case strings.Contains(table.Name, "."):
		return fmt.Errorf("table %q: name must not contain '.'", qualified)
	case strings.HasPrefix(qualified, `"`) && strings.HasSuffix(qualified, `"`):
		return fmt.Errorf("table %q: name must not be wrapped in double quotes", qualified)
	}
	return nil
}

func hasSpace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}
