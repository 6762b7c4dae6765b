package models

// Link is one relationship edge between two included persons, identified by
// source IDs. Derived per traversal, never stored.
type Link struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Kind   RelKind `json:"kind"`
}

// Subgraph is the traversal result: included persons in visit order, their
// generation offsets, and the deduplicated relationship links between them.
type Subgraph struct {
	Persons     []Person       `json:"persons"`
	Generations map[string]int `json:"generations"`
	Links       []Link         `json:"links"`
}

// TAMNode is one node in the visualization document. IDs are dense 0-based
// indices because the TAM format uses positional references.
type TAMNode struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Generation int     `json:"generation"`
	Sex        *string `json:"sex"`
	BirthYear  *int    `json:"birth_year"`
	DeathYear  *int    `json:"death_year"`
}

// TAMLink is one link in the visualization document, referencing nodes by
// their dense index. Each undirected pair+kind appears at most once.
type TAMLink struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Kind   RelKind `json:"kind"`
}

// TAMDocument is the full export payload consumed by the visualization tool.
type TAMDocument struct {
	Nodes []TAMNode `json:"nodes"`
	Links []TAMLink `json:"links"`
}

// Stats holds aggregate registry counts.
type Stats struct {
	Persons  int `json:"persons"`
	Families int `json:"families"`
}
