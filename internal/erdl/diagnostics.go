package erdl

import (
	"fmt"

	"github.com/tordrt/modelflow/internal/model"
)

// Kind classifies a parse diagnostic
type Kind int

const (
	// UnrecognizedSyntax is a line that is neither a header nor a column
	// declaration in its context.
	UnrecognizedSyntax Kind = iota + 1
	// MalformedColumnDefinition is a column line without a type.
	MalformedColumnDefinition
)

func (k Kind) String() string {
	switch k {
	case UnrecognizedSyntax:
		return "unrecognized syntax"
	case MalformedColumnDefinition:
		return "malformed column definition"
	default:
		return "unknown"
	}
}

// Diagnostic is a recoverable problem found on one source line
type Diagnostic struct {
	Kind Kind
	Line int
	Text string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s %q", d.Line, d.Kind, d.Text)
}

// diagnostics is the ordered list collected during one parse.
type diagnostics []Diagnostic

func (ds diagnostics) add(d Diagnostic) diagnostics {
	return append(ds, d)
}

func (ds diagnostics) result(tables []model.Table) *Result {
	if tables == nil {
		tables = []model.Table{}
	}

	errs := make([]string, len(ds))
	for i, d := range ds {
		errs[i] = d.String()
	}

	return &Result{
		Success:     len(ds) == 0,
		Tables:      tables,
		Errors:      errs,
		Diagnostics: ds,
	}
}
