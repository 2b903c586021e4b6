package domain

import "testing"

func TestGroupTagsByCategoryKeepsStreamOrder(t *testing.T) {
	tags := []Tag{
		{ID: 3, Slug: "bar", Name: "Bar", Category: "tipo_local"},
		{ID: 1, Slug: "cafe", Name: "Café", Category: "tipo_local"},
		{ID: 7, Slug: "vegan", Name: "Vegano", Category: "dieta"},
		{ID: 9, Slug: "afterwork", Name: "After", Category: "contexto"},
	}
	groups := GroupTagsByCategory(tags)
	if len(groups) != 3 {
		t.Fatalf("want 3 groups, got %d", len(groups))
	}
	if groups[0].Category != "tipo_local" || groups[1].Category != "dieta" || groups[2].Category != "contexto" {
		t.Fatalf("unexpected group order: %+v", groups)
	}
	if groups[0].Tags[0].Slug != "bar" || groups[0].Tags[1].Slug != "cafe" {
		t.Fatalf("tags reordered inside group: %+v", groups[0].Tags)
	}
}

func TestGroupTagsByCategoryEmpty(t *testing.T) {
	groups := GroupTagsByCategory(nil)
	if groups == nil || len(groups) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", groups)
	}
}
