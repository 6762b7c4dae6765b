package models

import (
	"errors"
	"reflect"
	"testing"
)

func TestSelection_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sel     Selection
		wantErr error
	}{
		{"empty", Selection{}, ErrSelectionEmpty},
		{"interesting only", Selection{Interesting: []string{"I1"}}, nil},
		{"anchor only", Selection{Anchor: "I1"}, nil},
		{"include all", Selection{IncludeAll: true}, nil},
		{"edges without seeds", Selection{EdgePeople: []string{"E1"}}, ErrSelectionEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sel.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSelection_Seeds(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
		want []string
	}{
		{
			"anchor first",
			Selection{Anchor: "A", Interesting: []string{"I1", "I2"}},
			[]string{"A", "I1", "I2"},
		},
		{
			"anchor deduplicated against interesting",
			Selection{Anchor: "I1", Interesting: []string{"I1", "I2", "I2"}},
			[]string{"I1", "I2"},
		},
		{
			"empty ids dropped",
			Selection{Interesting: []string{"", "I1", ""}},
			[]string{"I1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.Seeds(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Seeds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelection_EdgeSet(t *testing.T) {
	sel := Selection{EdgePeople: []string{"E1", "E2", "E1", ""}}

	set := sel.EdgeSet()
	if len(set) != 2 {
		t.Fatalf("EdgeSet() has %d members, want 2", len(set))
	}

	for _, id := range []string{"E1", "E2"} {
		if _, ok := set[id]; !ok {
			t.Errorf("EdgeSet() missing %s", id)
		}
	}
}
