// Package erdl parses ERDL, a line-oriented text grammar describing tables
// and their columns.
//
// A table opens with a header line ending in '-' and continues with one
// column declaration per line:
//
//	sales.Customer-
//	CustomerID int
//	Name varchar(100)
//
// Headers may be schema-qualified and wrapped in double quotes, but must not
// contain whitespace. Column types are normalized to canonical database
// types, and key and nullability flags are inferred from naming and type
// conventions.
package erdl

import (
	"fmt"
	"io"

	"github.com/tordrt/modelflow/internal/model"
)

// Result is the outcome of one parse.
//
// Success is true iff no diagnostics were reported, regardless of how many
// tables were produced.
type Result struct {
	Success     bool          `json:"success" yaml:"success"`
	Tables      []model.Table `json:"tables" yaml:"tables"`
	Errors      []string      `json:"errors" yaml:"errors"`
	Diagnostics []Diagnostic  `json:"-" yaml:"-"`
}

// Parse converts ERDL text into tables. It never fails: lines that cannot be
// understood are reported in the result and skipped.
func Parse(text string) *Result {
	var (
		tables []model.Table
		diags  diagnostics
		open   *accumulator
	)

	for _, l := range splitLines(text) {
		switch classify(l.text, open != nil) {
		case headerLine:
			if t, ok := open.finalize(); ok {
				tables = append(tables, t)
			}
			open = parseHeader(l.text)
		case columnLine:
			col, err := parseColumn(l)
			if err != nil {
				diags = diags.add(*err)
				continue
			}
			open.columns = append(open.columns, col)
		default:
			diags = diags.add(Diagnostic{Kind: UnrecognizedSyntax, Line: l.num, Text: l.text})
		}
	}

	if t, ok := open.finalize(); ok {
		tables = append(tables, t)
	}

	return diags.result(tables)
}

// ParseReader reads all of r and parses it.
func ParseReader(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return Parse(string(data)), nil
}

// Sample is a three-table model used as a starting point and in examples.
const Sample = `Customer-
CustomerID int
Name varchar(100)
Address1 string
Address2 string
City string

Order-
OrderID int
CustomerID int
OrderDate datetime
TotalAmount decimal

OrderItem-
OrderItemID int
OrderID int
ProductID int
Quantity int
UnitPrice decimal`
