// Package model defines the table/column model produced by the ERDL parser
// and by database import.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies who wrote a comment
type Role string

// Comment roles
const (
	RoleBusiness  Role = "business"  // domain and naming questions
	RoleTechnical Role = "technical" // types, keys and constraints
)

// RelationType is the cardinality of a relation between two tables
type RelationType string

// Relation cardinalities. Database import only produces OneToMany.
const (
	OneToOne   RelationType = "1:1"
	OneToMany  RelationType = "1:N"
	ManyToMany RelationType = "N:N"
)

// Comment is a review note attached to a table or column
type Comment struct {
	ID        string    `json:"id" yaml:"id"`
	Content   string    `json:"content" yaml:"content"`
	Author    string    `json:"author" yaml:"author"`
	Role      Role      `json:"role" yaml:"role"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Resolved  bool      `json:"resolved" yaml:"resolved"`
}

// Column represents a table column
type Column struct {
	ID              string    `json:"id" yaml:"id"`
	Name            string    `json:"name" yaml:"name"`
	Type            string    `json:"type" yaml:"type"`
	BusinessName    string    `json:"businessName,omitempty" yaml:"businessName,omitempty"`
	BusinessComment string    `json:"businessComment,omitempty" yaml:"businessComment,omitempty"`
	IsPrimaryKey    bool      `json:"isPrimaryKey" yaml:"isPrimaryKey"`
	IsForeignKey    bool      `json:"isForeignKey" yaml:"isForeignKey"`
	IsRequired      bool      `json:"isRequired" yaml:"isRequired"`
	DefaultValue    *string   `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Comments        []Comment `json:"comments" yaml:"comments"`
}

// Position is the diagram coordinate of a table
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Table represents a modeled table
type Table struct {
	ID              string    `json:"id" yaml:"id"`
	Name            string    `json:"name" yaml:"name"`
	BusinessName    string    `json:"businessName" yaml:"businessName"`
	BusinessComment string    `json:"businessComment,omitempty" yaml:"businessComment,omitempty"`
	Columns         []Column  `json:"columns" yaml:"columns"`
	Position        Position  `json:"position" yaml:"position"`
	Comments        []Comment `json:"comments" yaml:"comments"`
}

// Relation links a column of one table to a column of another
type Relation struct {
	ID             string       `json:"id" yaml:"id"`
	SourceTableID  string       `json:"sourceTableId" yaml:"sourceTableId"`
	SourceColumnID string       `json:"sourceColumnId" yaml:"sourceColumnId"`
	TargetTableID  string       `json:"targetTableId" yaml:"targetTableId"`
	TargetColumnID string       `json:"targetColumnId" yaml:"targetColumnId"`
	Type           RelationType `json:"type" yaml:"type"`
}

// Project groups tables and the relations between them
type Project struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Tables      []Table    `json:"tables" yaml:"tables"`
	Relations   []Relation `json:"relations" yaml:"relations"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" yaml:"updatedAt"`
}

// NewID returns a fresh random identity for any model entity.
func NewID() string {
	return uuid.NewString()
}

// NewProject creates an empty project stamped with the current time.
func NewProject(name string) *Project {
	now := time.Now()
	return &Project{
		ID:        NewID(),
		Name:      name,
		Tables:    []Table{},
		Relations: []Relation{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SchemaCommentPrefix marks a business comment that records the schema a
// table was qualified with.
const SchemaCommentPrefix = "Schema: "

// Schema returns the schema recorded in the table's business comment, if any.
func (t *Table) Schema() string {
	if schema, ok := strings.CutPrefix(t.BusinessComment, SchemaCommentPrefix); ok {
		return schema
	}
	return ""
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// PrimaryKey lists the names of the columns flagged as primary key
func (t *Table) PrimaryKey() []string {
	var pk []string
	for _, col := range t.Columns {
		if col.IsPrimaryKey {
			pk = append(pk, col.Name)
		}
	}
	return pk
}

// Table returns the project table with the given name, or nil.
func (p *Project) Table(name string) *Table {
	for i := range p.Tables {
		if p.Tables[i].Name == name {
			return &p.Tables[i]
		}
	}
	return nil
}

// TableByID returns the project table with the given id, or nil.
func (p *Project) TableByID(id string) *Table {
	for i := range p.Tables {
		if p.Tables[i].ID == id {
			return &p.Tables[i]
		}
	}
	return nil
}
