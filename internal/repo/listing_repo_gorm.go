package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"urbanvibe-api/internal/core/database"
	"urbanvibe-api/internal/domain"
	"urbanvibe-api/internal/feature/local"
	"urbanvibe-api/internal/feature/tag"
)

const (
	localsTable = "public.locals AS l"

	localColumns = `l.id, l.name, l.description, l.menu_url, l.social_url, l.phone, l.email,
l.logo_url, l.cover_url, l.founder_badge, l.is_verified, l.is_active, l.status,
l.lat, l.lon, l.visits_count, l.favorites_count, l.updates_count, l.tags_slug_array,
l.created_at, l.updated_at`

	mapColumns = "l.id, l.name, ST_AsGeoJSON(l.geom) AS geometry, l.lat, l.lon, l.logo_url"
)

var readOnly = &sql.TxOptions{Isolation: sql.LevelReadCommitted, ReadOnly: true}

type ListingRepo struct {
	db      *gorm.DB
	log     *zap.Logger
	timeout time.Duration
}

// NewListingRepo returns a repository whose logical operations are bounded by
// timeout (0 disables the bound).
func NewListingRepo(db *gorm.DB, log *zap.Logger, timeout time.Duration) *ListingRepo {
	return &ListingRepo{db: db, log: log, timeout: timeout}
}

// listingScope is the single predicate shared by the count, page and map
// queries. Disabled filters add nothing.
func listingScope(q domain.ListingQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("l.status = ?", string(domain.StatusPublished))
		if q.Text != "" {
			db = db.Where("l.fts @@ plainto_tsquery('spanish', ?)", q.Text)
		}
		if len(q.Tags) > 0 {
			db = db.Where("l.tags_slug_array && ?::text[]", pq.Array(q.Tags))
		}
		if b := q.BBox; b != nil {
			db = db.Where("ST_Intersects(l.geom, ST_MakeEnvelope(?, ?, ?, ?, 4326))",
				b.Left(), b.Bottom(), b.Right(), b.Top())
		}
		return db
	}
}

func countQuery(tx *gorm.DB, q domain.ListingQuery, total *int64) *gorm.DB {
	return tx.Table(localsTable).Scopes(listingScope(q)).Count(total)
}

func pageQuery(tx *gorm.DB, q domain.ListingQuery, rows *[]local.LocalModel) *gorm.DB {
	return tx.Table(localsTable).
		Select(localColumns).
		Scopes(listingScope(q)).
		Order("l.created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(rows)
}

func mapQuery(tx *gorm.DB, q domain.MapQuery, rows *[]local.MapPointRow) *gorm.DB {
	return tx.Table(localsTable).
		Select(mapColumns).
		Scopes(listingScope(domain.ListingQuery{Tags: q.Tags, BBox: q.BBox})).
		Order("l.created_at DESC").
		Limit(q.Limit).
		Find(rows)
}

func detailQuery(tx *gorm.DB, id uuid.UUID, row *local.LocalModel) *gorm.DB {
	return tx.Table(localsTable).
		Select(localColumns).
		Where("l.id = ? AND l.status = ?", id, string(domain.StatusPublished)).
		Take(row)
}

func detailTagsQuery(tx *gorm.DB, id uuid.UUID, rows *[]tag.TagModel) *gorm.DB {
	return tx.Table("public.local_tags AS lt").
		Select("t.id, t.slug, t.name, t.category, t.description, t.icon_url").
		Joins("JOIN public.tags AS t ON t.id = lt.tag_id").
		Where("lt.local_id = ?", id).
		Order("t.name").
		Find(rows)
}

func (r *ListingRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// List evaluates the filter twice on one connection: once for the total and
// once for the requested page.
func (r *ListingRepo) List(ctx context.Context, q domain.ListingQuery) (page domain.ListingsPage, err error) {
	start := time.Now()
	defer func() { database.Observe("locals.list", start, err) }()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var (
		total int64
		rows  []local.LocalModel
	)
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := countQuery(tx, q, &total).Error; err != nil {
			return err
		}
		return pageQuery(tx, q, &rows).Error
	}, readOnly)
	if err != nil {
		return domain.ListingsPage{}, database.Classify("list locals", err)
	}

	items := make([]domain.Listing, 0, len(rows))
	for i := range rows {
		items = append(items, toListing(&rows[i]))
	}
	return domain.ListingsPage{Items: items, Limit: q.Limit, Offset: q.Offset, Total: total}, nil
}

func (r *ListingRepo) Map(ctx context.Context, q domain.MapQuery) (points []domain.GeoPoint, err error) {
	start := time.Now()
	defer func() { database.Observe("locals.map", start, err) }()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rows []local.MapPointRow
	if err = mapQuery(r.db.WithContext(ctx), q, &rows).Error; err != nil {
		return nil, database.Classify("map locals", err)
	}

	points = make([]domain.GeoPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, domain.GeoPoint{
			ID:       row.ID,
			Name:     row.Name,
			Geometry: r.decodeGeometry(row.ID, row.Geometry),
			Lat:      row.Lat,
			Lon:      row.Lon,
			LogoURL:  row.LogoURL,
		})
	}
	return points, nil
}

// decodeGeometry degrades to nil on a bad payload so one row cannot fail the batch.
func (r *ListingRepo) decodeGeometry(id uuid.UUID, raw *string) *geojson.Geometry {
	if raw == nil || *raw == "" {
		return nil
	}
	g, err := geojson.UnmarshalGeometry([]byte(*raw))
	if err != nil {
		r.log.Warn("undecodable geometry", zap.String("local_id", id.String()), zap.Error(err))
		return nil
	}
	return g
}

// Detail reads the listing and its tags inside one read-only transaction.
func (r *ListingRepo) Detail(ctx context.Context, id uuid.UUID) (out *domain.ListingDetail, err error) {
	start := time.Now()
	defer func() { database.Observe("locals.detail", start, err) }()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var (
		row  local.LocalModel
		tags []tag.TagModel
	)
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := detailQuery(tx, id, &row).Error; err != nil {
			return err
		}
		return detailTagsQuery(tx, id, &tags).Error
	}, readOnly)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, database.Classify("local detail", err)
	}

	out = &domain.ListingDetail{Listing: toListing(&row), Tags: make([]domain.Tag, 0, len(tags))}
	for i := range tags {
		out.Tags = append(out.Tags, toTag(&tags[i]))
	}
	return out, nil
}

func toListing(m *local.LocalModel) domain.Listing {
	slugs := []string(m.TagsSlugArray)
	if slugs == nil {
		slugs = []string{}
	}
	return domain.Listing{
		ID:             m.ID,
		Name:           m.Name,
		Description:    m.Description,
		MenuURL:        m.MenuURL,
		SocialURL:      m.SocialURL,
		Phone:          m.Phone,
		Email:          m.Email,
		LogoURL:        m.LogoURL,
		CoverURL:       m.CoverURL,
		FounderBadge:   m.FounderBadge,
		IsVerified:     m.IsVerified,
		IsActive:       m.IsActive,
		Status:         domain.ListingStatus(m.Status),
		Lat:            m.Lat,
		Lon:            m.Lon,
		VisitsCount:    derefCount(m.VisitsCount),
		FavoritesCount: derefCount(m.FavoritesCount),
		UpdatesCount:   derefCount(m.UpdatesCount),
		TagsSlugArray:  slugs,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toTag(m *tag.TagModel) domain.Tag {
	return domain.Tag{
		ID:          m.ID,
		Slug:        m.Slug,
		Name:        m.Name,
		Category:    m.Category,
		Description: m.Description,
		IconURL:     m.IconURL,
	}
}

// counters are NOT NULL DEFAULT 0 in the current schema; older rows may still be NULL.
func derefCount(p *int64) int64 {
	if p == nil || *p < 0 {
		return 0
	}
	return *p
}
