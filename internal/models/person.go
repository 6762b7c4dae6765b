// Package models defines the shared domain types for the kingraph exporter.
package models

// Sex is a person's recorded sex. Unknown is the zero-ish default.
type Sex string

// Recognised sex values.
const (
	SexMale    Sex = "M"
	SexFemale  Sex = "F"
	SexUnknown Sex = "U"
)

// Person is a single individual in the genealogy registry.
// Persons are owned by the graph source and read-only to the traversal engine.
type Person struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Sex       Sex    `json:"sex"`
	BirthYear *int   `json:"birth_year,omitempty"`
	DeathYear *int   `json:"death_year,omitempty"`
	Private   bool   `json:"private,omitempty"`
	Living    bool   `json:"living,omitempty"`
}

// RelKind classifies a family link between two persons.
type RelKind string

// Relationship kinds, in traversal iteration order: parents and children share
// the parent-child kind; siblings and spouses keep the generation level.
const (
	RelParentChild RelKind = "parent-child"
	RelSibling     RelKind = "sibling"
	RelSpouse      RelKind = "spouse"
)

// PersonSummary is the lightweight listing shape returned by directory queries.
type PersonSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Sex       Sex    `json:"sex"`
	BirthYear *int   `json:"birth_year,omitempty"`
}

// Relatives partitions a person's immediate relatives by kind.
// Each slice holds person IDs in the source's stable order.
type Relatives struct {
	Parents  []string `json:"parents"`
	Children []string `json:"children"`
	Siblings []string `json:"siblings"`
	Spouses  []string `json:"spouses"`
}
