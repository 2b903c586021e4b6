package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"urbanvibe-api/internal/domain"
	"urbanvibe-api/internal/transport/http/ez"
)

// Locals serves listing search, the map projection and listing detail.
type Locals struct {
	Repo domain.ListingRepository
}

// Raw strings so malformed numbers clamp instead of failing the bind.
type listLocalsIn struct {
	Q      string   `form:"q"`
	Tags   []string `form:"tags"`
	BBox   string   `form:"bbox"`
	Limit  string   `form:"limit"`
	Offset string   `form:"offset"`
}

type mapLocalsIn struct {
	Tags  []string `form:"tags"`
	BBox  string   `form:"bbox"`
	Limit string   `form:"limit"`
}

type localIDIn struct {
	ID string `uri:"id"`
}

func (h Locals) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[listLocalsIn, domain.ListingsPage]{
		Method:  http.MethodGet,
		Path:    "/locals",
		Binder:  ez.BindQuery,
		Handler: h.list,
	})
	ez.RegisterAction(e, ez.Action[mapLocalsIn, []domain.GeoPoint]{
		Method:  http.MethodGet,
		Path:    "/locals/map",
		Binder:  ez.BindQuery,
		Handler: h.mapPoints,
	})
	ez.RegisterAction(e, ez.Action[localIDIn, *domain.ListingDetail]{
		Method:  http.MethodGet,
		Path:    "/locals/:id",
		Binder:  ez.BindURI,
		Handler: h.detail,
	})
}

func (h Locals) Priority() int { return 10 }

func (h Locals) list(c *gin.Context, in *listLocalsIn) (domain.ListingsPage, error) {
	q := domain.ListingQuery{
		Text:   domain.NormalizeText(in.Q, domain.MinLocalsQueryLen),
		Tags:   domain.NormalizeTags(in.Tags),
		BBox:   domain.ParseBBox(in.BBox),
		Limit:  domain.ClampLimit(in.Limit, domain.DefaultListLimit, domain.MaxListLimit),
		Offset: domain.ClampOffset(in.Offset),
	}
	page, err := h.Repo.List(c.Request.Context(), q)
	if err != nil {
		return domain.ListingsPage{}, err
	}
	if page.Items == nil {
		page.Items = []domain.Listing{}
	}
	return page, nil
}

func (h Locals) mapPoints(c *gin.Context, in *mapLocalsIn) ([]domain.GeoPoint, error) {
	pts, err := h.Repo.Map(c.Request.Context(), domain.MapQuery{
		Tags:  domain.NormalizeTags(in.Tags),
		BBox:  domain.ParseBBox(in.BBox),
		Limit: domain.ClampLimit(in.Limit, domain.DefaultMapLimit, domain.MaxMapLimit),
	})
	if err != nil {
		return nil, err
	}
	if pts == nil {
		pts = []domain.GeoPoint{}
	}
	return pts, nil
}

func (h Locals) detail(c *gin.Context, in *localIDIn) (*domain.ListingDetail, error) {
	id, err := uuid.Parse(in.ID)
	if err != nil {
		return nil, ez.BadRequest("invalid id")
	}
	d, err := h.Repo.Detail(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if d.Tags == nil {
		d.Tags = []domain.Tag{}
	}
	return d, nil
}
