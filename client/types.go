package client

// Selection configures one export run.
type Selection struct {
	IncludeAll      bool     `json:"include_all_people,omitempty"`
	Interesting     []string `json:"interesting_people,omitempty"`
	EdgePeople      []string `json:"edge_people,omitempty"`
	Anchor          string   `json:"anchor_person,omitempty"`
	IncludePrivate  bool     `json:"include_private,omitempty"`
	AnonymizeLiving bool     `json:"anonymize_living,omitempty"`
	EstimateDates   bool     `json:"estimate_dates,omitempty"`
	MaxPersons      int      `json:"max_persons,omitempty"`
}

// TAMNode is one person in an exported document.
type TAMNode struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Generation int     `json:"generation"`
	Sex        *string `json:"sex"`
	BirthYear  *int    `json:"birth_year,omitempty"`
	DeathYear  *int    `json:"death_year,omitempty"`
}

// TAMLink is one relationship in an exported document. Source and Target are
// node indices.
type TAMLink struct {
	Source int    `json:"source"`
	Target int    `json:"target"`
	Kind   string `json:"kind"`
}

// TAMDocument is the complete export payload.
type TAMDocument struct {
	Nodes []TAMNode `json:"nodes"`
	Links []TAMLink `json:"links"`
}

// Person is one registry entry.
type Person struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Sex       string `json:"sex"`
	BirthYear *int   `json:"birth_year,omitempty"`
	DeathYear *int   `json:"death_year,omitempty"`
	Private   bool   `json:"private,omitempty"`
	Living    bool   `json:"living,omitempty"`
}

// PersonSummary is the lightweight listing shape.
type PersonSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Sex       string `json:"sex"`
	BirthYear *int   `json:"birth_year,omitempty"`
}

// ListPeopleResponse is one page of the person directory.
type ListPeopleResponse struct {
	People  []PersonSummary `json:"people"`
	HasMore bool            `json:"has_more"`
}

// Relatives partitions a person's immediate relatives by kind.
type Relatives struct {
	Parents  []string `json:"parents"`
	Children []string `json:"children"`
	Siblings []string `json:"siblings"`
	Spouses  []string `json:"spouses"`
}

// HealthResponse is the liveness check payload.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Source        string  `json:"source"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// StatsResponse reports registry size.
type StatsResponse struct {
	Persons  int `json:"persons"`
	Families int `json:"families"`
}
