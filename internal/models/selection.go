package models

// Selection configures one export run: who seeds the traversal, where it
// stops, and how the output is shaped. It replaces the original report
// dialog's checkbox state with an explicit, validated struct.
type Selection struct {
	// IncludeAll marks every person in the registry as interesting.
	// When set, EdgePeople is ignored and the traversal degenerates to
	// "all persons, all direct edges".
	IncludeAll bool `json:"include_all_people"`

	// Interesting seeds the traversal. Every member is always included
	// in the output.
	Interesting []string `json:"interesting_people"`

	// EdgePeople are boundaries: included when reached, never expanded.
	EdgePeople []string `json:"edge_people"`

	// Anchor is the reference person. Implicitly interesting and the
	// origin (offset 0) for generation numbering.
	Anchor string `json:"anchor_person"`

	// IncludePrivate includes persons flagged private. Off by default.
	IncludePrivate bool `json:"include_private"`

	// AnonymizeLiving replaces names and dates of living persons in the
	// output with placeholders.
	AnonymizeLiving bool `json:"anonymize_living"`

	// EstimateDates fills missing birth years from dated relatives.
	EstimateDates bool `json:"estimate_dates"`

	// MaxPersons caps the traversal. Zero means the server default.
	// Already-visited persons stay included when the cap is hit; only
	// further expansion stops.
	MaxPersons int `json:"max_persons,omitempty"`
}

// Validate checks that the selection can seed a traversal at all.
// An empty selection is the one error surfaced before traversal starts.
func (s *Selection) Validate() error {
	if s.IncludeAll {
		return nil
	}

	if len(s.Interesting) == 0 && s.Anchor == "" {
		return ErrSelectionEmpty
	}

	return nil
}

// Seeds returns the interesting set plus the anchor, deduplicated, with the
// anchor first so it is visited first and fixed at generation 0.
func (s *Selection) Seeds() []string {
	seen := make(map[string]struct{}, len(s.Interesting)+1)
	seeds := make([]string, 0, len(s.Interesting)+1)

	if s.Anchor != "" {
		seen[s.Anchor] = struct{}{}
		seeds = append(seeds, s.Anchor)
	}

	for _, id := range s.Interesting {
		if id == "" {
			continue
		}

		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		seeds = append(seeds, id)
	}

	return seeds
}

// EdgeSet returns the edge-person IDs as a set.
func (s *Selection) EdgeSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.EdgePeople))
	for _, id := range s.EdgePeople {
		if id != "" {
			set[id] = struct{}{}
		}
	}

	return set
}
