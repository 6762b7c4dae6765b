package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kinviz/kingraph/internal/domain"
	"github.com/kinviz/kingraph/internal/models"
)

// birtherAge is the assumed minimum age at which a person becomes a parent,
// used when a birth year has to be inferred from a parent or child alone.
const birtherAge = 20

// estimateBirthYears fills in missing birth years for the included persons,
// using only dated relatives that are themselves included.
//
// Known years seed the table (birth year, falling back to death year as a
// rough lifetime marker). Undated persons are then estimated in passes until
// a pass learns nothing new: each pass tries, in order, the midpoint between
// the youngest dated parent and the oldest dated child, then oldest child
// minus birtherAge, then youngest parent plus birtherAge, then the mean of
// dated siblings, then the mean of dated spouses.
func estimateBirthYears(ctx context.Context, source domain.GraphSource, persons []models.Person) (map[string]int, error) {
	years := make(map[string]int, len(persons))

	var missing []string

	for _, p := range persons {
		switch {
		case p.BirthYear != nil:
			years[p.ID] = *p.BirthYear
		case p.DeathYear != nil:
			years[p.ID] = *p.DeathYear
		default:
			missing = append(missing, p.ID)
		}
	}

	for len(missing) > 0 {
		var still []string

		for _, id := range missing {
			year, ok, err := estimateFromPeers(ctx, source, years, id)
			if err != nil {
				return nil, err
			}

			if ok {
				years[id] = year
			} else {
				still = append(still, id)
			}
		}

		if len(still) == len(missing) {
			break
		}

		missing = still
	}

	return years, nil
}

// estimateFromPeers derives one person's birth year from already-dated
// relatives. Returns ok=false when no relative carries a usable year yet.
func estimateFromPeers(ctx context.Context, source domain.GraphSource, years map[string]int, id string) (int, bool, error) { //nolint:gocyclo // the fallback ladder mirrors the estimation rules one by one.
	parents, err := relativeYears(ctx, source.Parents, years, id)
	if err != nil {
		return 0, false, err
	}

	children, err := relativeYears(ctx, source.Children, years, id)
	if err != nil {
		return 0, false, err
	}

	parentBirth, hasParent := maxYear(parents)
	childBirth, hasChild := minYear(children)

	if hasParent && hasChild {
		return (parentBirth + childBirth) / 2, true, nil
	}

	if hasChild {
		return childBirth - birtherAge, true, nil
	}

	if hasParent {
		return parentBirth + birtherAge, true, nil
	}

	siblings, err := relativeYears(ctx, source.Siblings, years, id)
	if err != nil {
		return 0, false, err
	}

	if mean, ok := meanYear(siblings); ok {
		return mean, true, nil
	}

	spouses, err := relativeYears(ctx, source.Spouses, years, id)
	if err != nil {
		return 0, false, err
	}

	if mean, ok := meanYear(spouses); ok {
		return mean, true, nil
	}

	return 0, false, nil
}

// relativeYears fetches one relative list and projects it through the known
// years table. Unresolvable references contribute nothing.
func relativeYears(ctx context.Context, fetch func(context.Context, string) ([]string, error), years map[string]int, id string) ([]int, error) {
	ids, err := fetch(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrPersonNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("fetching relatives of %s for date estimation: %w", id, err)
	}

	dated := make([]int, 0, len(ids))

	for _, rel := range ids {
		if y, ok := years[rel]; ok {
			dated = append(dated, y)
		}
	}

	return dated, nil
}

func maxYear(ys []int) (int, bool) {
	if len(ys) == 0 {
		return 0, false
	}

	m := ys[0]
	for _, y := range ys[1:] {
		if y > m {
			m = y
		}
	}

	return m, true
}

func minYear(ys []int) (int, bool) {
	if len(ys) == 0 {
		return 0, false
	}

	m := ys[0]
	for _, y := range ys[1:] {
		if y < m {
			m = y
		}
	}

	return m, true
}

func meanYear(ys []int) (int, bool) {
	if len(ys) == 0 {
		return 0, false
	}

	sum := 0
	for _, y := range ys {
		sum += y
	}

	return sum / len(ys), true
}
