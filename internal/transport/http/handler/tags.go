package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"urbanvibe-api/internal/domain"
	"urbanvibe-api/internal/transport/http/ez"
)

// Tags serves the grouped tag catalog.
type Tags struct {
	Repo domain.TagRepository
}

type listTagsIn struct {
	Category string `form:"categoria"`
	Q        string `form:"q"`
}

func (h Tags) MountAPI(g *gin.RouterGroup) {
	ez.RegisterAction(ez.New(g), ez.Action[listTagsIn, []domain.TagGroup]{
		Method:  http.MethodGet,
		Path:    "/tags",
		Binder:  ez.BindQuery,
		Handler: h.list,
	})
}

func (h Tags) list(c *gin.Context, in *listTagsIn) ([]domain.TagGroup, error) {
	tags, err := h.Repo.List(c.Request.Context(), domain.TagQuery{
		Category: strings.TrimSpace(in.Category),
		Text:     domain.NormalizeText(in.Q, domain.MinTagsQueryLen),
	})
	if err != nil {
		return nil, err
	}
	return domain.GroupTagsByCategory(tags), nil
}
