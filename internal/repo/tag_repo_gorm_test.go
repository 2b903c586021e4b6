package repo

import (
	"strings"
	"testing"

	"urbanvibe-api/internal/domain"
	"urbanvibe-api/internal/feature/tag"
)

func TestTagsQueryOptionalPredicates(t *testing.T) {
	db := dryDB(t)
	var rows []tag.TagModel

	b := capture(tagsQuery(db, domain.TagQuery{}, &rows))
	if strings.Contains(b.SQL, "WHERE") {
		t.Fatalf("no filters should mean no WHERE: %s", b.SQL)
	}
	if !strings.HasSuffix(strings.TrimSpace(b.SQL), "ORDER BY t.category, t.name") {
		t.Fatalf("catalog ordering: %s", b.SQL)
	}

	b = capture(tagsQuery(db, domain.TagQuery{Category: "dieta", Text: "ve"}, &rows))
	where := whereOf(t, b.SQL)
	if !strings.Contains(where, "t.category = $1") || !strings.Contains(where, "t.name ILIKE $2 OR t.slug ILIKE $3") {
		t.Fatalf("unexpected predicate %q", where)
	}
	if b.Vars[0] != "dieta" || b.Vars[1] != "%ve%" || b.Vars[2] != "%ve%" {
		t.Fatalf("unexpected vars %v", b.Vars)
	}
}

func TestTagsQueryEscapesLikeWildcards(t *testing.T) {
	var rows []tag.TagModel
	b := capture(tagsQuery(dryDB(t), domain.TagQuery{Text: `50%_off\`}, &rows))
	if want := `%50\%\_off\\%`; b.Vars[0] != want {
		t.Fatalf("like pattern = %v, want %v", b.Vars[0], want)
	}
}
