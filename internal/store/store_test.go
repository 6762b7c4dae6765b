package store_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kinviz/kingraph/internal/db"
	"github.com/kinviz/kingraph/internal/db/migrations"
	"github.com/kinviz/kingraph/internal/dbpool"
	"github.com/kinviz/kingraph/internal/models"
	"github.com/kinviz/kingraph/internal/store"
)

// testEnv holds shared test infrastructure (single pool across all tests).
type testEnv struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

var sharedEnv *testEnv

func getTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if sharedEnv != nil {
		return sharedEnv
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	pool, err := dbpool.NewPool(ctx, dbURL)
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	sharedEnv = &testEnv{pool: pool, log: log}

	return sharedEnv
}

// seedFamily inserts a three-person family with unique IDs and returns them:
// father, mother, child. Rows are cleaned up when the test finishes.
func seedFamily(t *testing.T, env *testEnv) (string, string, string) {
	t.Helper()

	ctx := context.Background()
	suffix := uuid.New().String()[:8]
	father := "F-" + suffix
	mother := "M-" + suffix
	child := "C-" + suffix
	family := "FAM-" + suffix

	for _, row := range []struct {
		id, name, sex string
		birth         int
	}{
		{father, "Father " + suffix, "M", 1900},
		{mother, "Mother " + suffix, "F", 1905},
		{child, "Child " + suffix, "U", 1930},
	} {
		_, err := env.pool.Exec(ctx,
			`INSERT INTO persons (id, name, sex, birth_year) VALUES ($1, $2, $3, $4)`,
			row.id, row.name, row.sex, row.birth)
		if err != nil {
			t.Fatalf("seeding person %s: %v", row.id, err)
		}
	}

	if _, err := env.pool.Exec(ctx,
		`INSERT INTO families (id, father_id, mother_id) VALUES ($1, $2, $3)`,
		family, father, mother); err != nil {
		t.Fatalf("seeding family: %v", err)
	}

	if _, err := env.pool.Exec(ctx,
		`INSERT INTO family_children (family_id, child_id) VALUES ($1, $2)`,
		family, child); err != nil {
		t.Fatalf("seeding child link: %v", err)
	}

	t.Cleanup(func() {
		ctx := context.Background()
		env.pool.Exec(ctx, `DELETE FROM families WHERE id = $1`, family)                          //nolint:errcheck
		env.pool.Exec(ctx, `DELETE FROM persons WHERE id IN ($1, $2, $3)`, father, mother, child) //nolint:errcheck
	})

	return father, mother, child
}

func TestGraphStore_GetPerson(t *testing.T) {
	env := getTestEnv(t)
	father, _, _ := seedFamily(t, env)

	graph := store.NewGraphStore(store.Base{Pool: env.pool, Log: env.log})

	p, err := graph.GetPerson(context.Background(), father)
	if err != nil {
		t.Fatalf("GetPerson: %v", err)
	}

	if p.ID != father || p.Sex != models.SexMale || p.BirthYear == nil || *p.BirthYear != 1900 {
		t.Errorf("unexpected person: %+v", p)
	}

	_, err = graph.GetPerson(context.Background(), "missing-"+uuid.New().String())
	if !errors.Is(err, models.ErrPersonNotFound) {
		t.Errorf("expected ErrPersonNotFound, got %v", err)
	}
}

func TestGraphStore_Adjacency(t *testing.T) {
	env := getTestEnv(t)
	father, mother, child := seedFamily(t, env)

	graph := store.NewGraphStore(store.Base{Pool: env.pool, Log: env.log})
	ctx := context.Background()

	parents, err := graph.Parents(ctx, child)
	if err != nil {
		t.Fatalf("Parents: %v", err)
	}

	wantParents := []string{father, mother}
	if father > mother {
		wantParents = []string{mother, father}
	}

	if !reflect.DeepEqual(parents, wantParents) {
		t.Errorf("parents = %v, want %v", parents, wantParents)
	}

	children, err := graph.Children(ctx, father)
	if err != nil {
		t.Fatalf("Children: %v", err)
	}

	if !reflect.DeepEqual(children, []string{child}) {
		t.Errorf("children = %v, want [%s]", children, child)
	}

	spouses, err := graph.Spouses(ctx, father)
	if err != nil {
		t.Fatalf("Spouses: %v", err)
	}

	if !reflect.DeepEqual(spouses, []string{mother}) {
		t.Errorf("spouses = %v, want [%s]", spouses, mother)
	}

	siblings, err := graph.Siblings(ctx, child)
	if err != nil {
		t.Fatalf("Siblings: %v", err)
	}

	if len(siblings) != 0 {
		t.Errorf("siblings = %v, want none", siblings)
	}

	if _, err := graph.Parents(ctx, "missing-"+uuid.New().String()); !errors.Is(err, models.ErrPersonNotFound) {
		t.Errorf("expected ErrPersonNotFound for unknown person, got %v", err)
	}
}

func TestDirectoryStore_ListAndRelatives(t *testing.T) {
	env := getTestEnv(t)
	father, mother, child := seedFamily(t, env)

	dir := store.NewDirectoryStore(store.Base{Pool: env.pool, Log: env.log})
	ctx := context.Background()

	// The seeded names share their unique suffix, so filtering on it
	// returns exactly this family.
	suffix := father[len("F-"):]

	people, hasMore, err := dir.ListPeople(ctx, suffix, 10, 0)
	if err != nil {
		t.Fatalf("ListPeople: %v", err)
	}

	if len(people) != 3 || hasMore {
		t.Errorf("expected 3 matches without more, got %d (hasMore=%v)", len(people), hasMore)
	}

	rel, err := dir.GetRelatives(ctx, child)
	if err != nil {
		t.Fatalf("GetRelatives: %v", err)
	}

	if len(rel.Parents) != 2 || len(rel.Children) != 0 {
		t.Errorf("unexpected relatives: %+v", rel)
	}

	// Adjacency is ordered by id, so the father's F- prefix sorts first.
	if len(rel.Parents) == 2 && (rel.Parents[0] != father || rel.Parents[1] != mother) {
		t.Errorf("parents = %v, want [%s %s]", rel.Parents, father, mother)
	}

	_, _, err = dir.ListPeople(ctx, fmt.Sprintf("no-such-person-%s", uuid.New()), 10, 0)
	if err != nil {
		t.Errorf("empty result should not error: %v", err)
	}
}

func TestDirectoryStore_Stats(t *testing.T) {
	env := getTestEnv(t)
	seedFamily(t, env)

	dir := store.NewDirectoryStore(store.Base{Pool: env.pool, Log: env.log})

	stats, err := dir.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if stats.Persons < 3 || stats.Families < 1 {
		t.Errorf("stats too small for seeded data: %+v", stats)
	}
}
