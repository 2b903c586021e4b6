package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type ListingStatus string

const (
	StatusDraft     ListingStatus = "draft"
	StatusPublished ListingStatus = "published"
	StatusArchived  ListingStatus = "archived"
)

// Listing is a venue ("local") as exposed by the listing and detail routes.
type Listing struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	MenuURL     *string   `json:"menu_url,omitempty"`
	SocialURL   *string   `json:"social_url,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Email       *string   `json:"email,omitempty"`
	LogoURL     *string   `json:"logo_url,omitempty"`
	CoverURL    *string   `json:"cover_url,omitempty"`

	FounderBadge bool          `json:"founder_badge"`
	IsVerified   bool          `json:"is_verified"`
	IsActive     bool          `json:"is_active"`
	Status       ListingStatus `json:"status"`

	Lat *float64 `json:"lat,omitempty"`
	Lon *float64 `json:"lon,omitempty"`

	VisitsCount    int64 `json:"visits_count"`
	FavoritesCount int64 `json:"favorites_count"`
	UpdatesCount   int64 `json:"updates_count"`

	TagsSlugArray []string `json:"tags_slug_array"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListingDetail struct {
	Listing
	Tags []Tag `json:"tags"`
}

// GeoPoint is the map projection of a listing. Geometry is nil when the
// stored geometry could not be decoded.
type GeoPoint struct {
	ID       uuid.UUID         `json:"id"`
	Name     string            `json:"name"`
	Geometry *geojson.Geometry `json:"geometry"`
	Lat      *float64          `json:"lat,omitempty"`
	Lon      *float64          `json:"lon,omitempty"`
	LogoURL  *string           `json:"logo_url,omitempty"`
}

type ListingsPage struct {
	Items  []Listing `json:"items"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
	Total  int64     `json:"total"`
}

// ListingQuery holds already-normalized filters. Zero values mean "disabled".
type ListingQuery struct {
	Text   string
	Tags   []string
	BBox   *orb.Bound
	Limit  int
	Offset int
}

type MapQuery struct {
	Tags  []string
	BBox  *orb.Bound
	Limit int
}

type ListingRepository interface {
	List(ctx context.Context, q ListingQuery) (ListingsPage, error)
	Map(ctx context.Context, q MapQuery) ([]GeoPoint, error)
	Detail(ctx context.Context, id uuid.UUID) (*ListingDetail, error)
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}
