package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"urbanvibe-api/internal/core/database"
	"urbanvibe-api/internal/domain"
	"urbanvibe-api/internal/feature/tag"
)

type TagRepo struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewTagRepo(db *gorm.DB, timeout time.Duration) *TagRepo {
	return &TagRepo{db: db, timeout: timeout}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func tagsQuery(tx *gorm.DB, q domain.TagQuery, rows *[]tag.TagModel) *gorm.DB {
	tx = tx.Table("public.tags AS t").
		Select("t.id, t.slug, t.name, t.category, t.description, t.icon_url")
	if q.Category != "" {
		tx = tx.Where("t.category = ?", q.Category)
	}
	if q.Text != "" {
		like := "%" + likeEscaper.Replace(q.Text) + "%"
		tx = tx.Where("(t.name ILIKE ? OR t.slug ILIKE ?)", like, like)
	}
	return tx.Order("t.category, t.name").Find(rows)
}

func (r *TagRepo) List(ctx context.Context, q domain.TagQuery) (tags []domain.Tag, err error) {
	start := time.Now()
	defer func() { database.Observe("tags.list", start, err) }()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var rows []tag.TagModel
	if err = tagsQuery(r.db.WithContext(ctx), q, &rows).Error; err != nil {
		return nil, database.Classify("list tags", err)
	}
	tags = make([]domain.Tag, 0, len(rows))
	for i := range rows {
		tags = append(tags, toTag(&rows[i]))
	}
	return tags, nil
}
