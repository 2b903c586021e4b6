package local

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// LocalModel is the row shape of public.locals as read by the API. The
// geom and fts columns are only referenced from SQL and never scanned.
type LocalModel struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description"`
	MenuURL     *string   `gorm:"column:menu_url"`
	SocialURL   *string   `gorm:"column:social_url"`
	Phone       *string   `gorm:"column:phone"`
	Email       *string   `gorm:"column:email"`
	LogoURL     *string   `gorm:"column:logo_url"`
	CoverURL    *string   `gorm:"column:cover_url"`

	FounderBadge bool   `gorm:"column:founder_badge;not null;default:false"`
	IsVerified   bool   `gorm:"column:is_verified;not null;default:false"`
	IsActive     bool   `gorm:"column:is_active;not null;default:true"`
	Status       string `gorm:"column:status;not null;default:draft"`

	Lat *float64 `gorm:"column:lat"`
	Lon *float64 `gorm:"column:lon"`

	VisitsCount    *int64 `gorm:"column:visits_count"`
	FavoritesCount *int64 `gorm:"column:favorites_count"`
	UpdatesCount   *int64 `gorm:"column:updates_count"`

	TagsSlugArray pq.StringArray `gorm:"column:tags_slug_array;type:text[]"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (LocalModel) TableName() string { return "public.locals" }

// MapPointRow is the map projection; Geometry holds ST_AsGeoJSON output.
type MapPointRow struct {
	ID       uuid.UUID `gorm:"column:id"`
	Name     string    `gorm:"column:name"`
	Geometry *string   `gorm:"column:geometry"`
	Lat      *float64  `gorm:"column:lat"`
	Lon      *float64  `gorm:"column:lon"`
	LogoURL  *string   `gorm:"column:logo_url"`
}

type LocalTagModel struct {
	LocalID uuid.UUID `gorm:"column:local_id;type:uuid;primaryKey"`
	TagID   int64     `gorm:"column:tag_id;primaryKey"`
}

func (LocalTagModel) TableName() string { return "public.local_tags" }
