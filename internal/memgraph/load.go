package memgraph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kinviz/kingraph/internal/models"
)

// Tree is the flat JSON description of a family tree, the file-based
// counterpart of the Postgres schema.
type Tree struct {
	Persons  []Person `json:"persons"`
	Families []Family `json:"families"`
}

// Person is one registry entry in a tree file.
type Person struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Sex       string `json:"sex,omitempty"`
	BirthYear *int   `json:"birth_year,omitempty"`
	DeathYear *int   `json:"death_year,omitempty"`
	Private   bool   `json:"private,omitempty"`
	Living    bool   `json:"living,omitempty"`
}

// Family is one couple-and-children unit in a tree file. Father and Mother
// may be empty; Children may reference persons missing from the registry.
type Family struct {
	ID       string   `json:"id"`
	Father   string   `json:"father,omitempty"`
	Mother   string   `json:"mother,omitempty"`
	Children []string `json:"children,omitempty"`
}

// toModel converts a tree-file person into the domain shape.
func (p Person) toModel() models.Person {
	sex := models.SexUnknown

	switch p.Sex {
	case "M", "m":
		sex = models.SexMale
	case "F", "f":
		sex = models.SexFemale
	}

	return models.Person{
		ID:        p.ID,
		Name:      p.Name,
		Sex:       sex,
		BirthYear: p.BirthYear,
		DeathYear: p.DeathYear,
		Private:   p.Private,
		Living:    p.Living,
	}
}

// Load reads a tree file from disk and builds a Graph from it.
func Load(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tree file: %w", err)
	}

	var tree Tree

	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parsing tree file %s: %w", path, err)
	}

	g, err := New(&tree)
	if err != nil {
		return nil, fmt.Errorf("building graph from %s: %w", path, err)
	}

	return g, nil
}
