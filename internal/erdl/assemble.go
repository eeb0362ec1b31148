package erdl

import (
	"strings"

	"github.com/tordrt/modelflow/internal/model"
)

// accumulator is the table being built between its header and the next
// header or the end of input.
type accumulator struct {
	name            string
	businessComment string
	columns         []model.Column
}

// parseHeader opens a table from a header line such as
// `"sales.Customer"-`.
func parseHeader(line string) *accumulator {
	name := strings.TrimSuffix(line, "-")

	if strings.HasPrefix(name, `"`) && strings.HasSuffix(name, `"`) {
		if len(name) >= 2 {
			name = name[1 : len(name)-1]
		} else {
			name = ""
		}
	}

	acc := &accumulator{name: name}
	if i := strings.LastIndex(name, "."); i >= 0 {
		acc.name = name[i+1:]
		acc.businessComment = model.SchemaCommentPrefix + name[:i]
	}
	return acc
}

// finalize turns the accumulator into a table. Accumulators without a name
// are discarded, along with any columns collected under them.
func (a *accumulator) finalize() (model.Table, bool) {
	if a == nil || a.name == "" {
		return model.Table{}, false
	}

	columns := a.columns
	if columns == nil {
		columns = []model.Column{}
	}

	return model.Table{
		ID:              model.NewID(),
		Name:            a.name,
		BusinessName:    a.name,
		BusinessComment: a.businessComment,
		Columns:         columns,
		Position:        model.Position{X: 0, Y: 0},
		Comments:        []model.Comment{},
	}, true
}

// parseColumn builds a column from a declaration such as `Name varchar(100)`.
func parseColumn(l sourceLine) (model.Column, *Diagnostic) {
	fields := strings.Fields(l.text)
	if len(fields) < 2 {
		return model.Column{}, &Diagnostic{Kind: MalformedColumnDefinition, Line: l.num, Text: l.text}
	}

	name := fields[0]
	typ := NormalizeType(strings.Join(fields[1:], " "))

	return model.Column{
		ID:              model.NewID(),
		Name:            name,
		Type:            typ,
		BusinessName:    name,
		BusinessComment: "",
		IsPrimaryKey:    IsPrimaryKey(name, typ),
		IsForeignKey:    IsForeignKey(name),
		IsRequired:      IsRequired(typ),
		Comments:        []model.Comment{},
	}, nil
}
