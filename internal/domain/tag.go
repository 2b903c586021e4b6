package domain

import "context"

type Tag struct {
	ID          int64   `json:"id"`
	Slug        string  `json:"slug"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description *string `json:"description,omitempty"`
	IconURL     *string `json:"icon_url,omitempty"`
}

type TagGroup struct {
	Category string `json:"category"`
	Tags     []Tag  `json:"tags"`
}

type TagQuery struct {
	Category string
	Text     string
}

type TagRepository interface {
	// List returns matching tags ordered by category, then name.
	List(ctx context.Context, q TagQuery) ([]Tag, error)
}

// GroupTagsByCategory folds an ordered tag stream into groups. Groups appear
// in first-seen order and tags keep their stream order inside a group.
func GroupTagsByCategory(tags []Tag) []TagGroup {
	out := make([]TagGroup, 0)
	idx := make(map[string]int)
	for _, t := range tags {
		i, ok := idx[t.Category]
		if !ok {
			i = len(out)
			idx[t.Category] = i
			out = append(out, TagGroup{Category: t.Category})
		}
		out[i].Tags = append(out[i].Tags, t)
	}
	return out
}
