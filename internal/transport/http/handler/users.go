package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"urbanvibe-api/internal/core/auth"
	"urbanvibe-api/internal/domain"
	"urbanvibe-api/internal/transport/http/ez"
	mdw "urbanvibe-api/internal/transport/http/middleware"
)

// Users serves the authenticated caller's own profile.
type Users struct {
	Repo domain.UserRepository
	IdP  auth.IdentityProvider
}

type meOut struct {
	User *domain.UserProfile `json:"user"`
}

func (h Users) MountAPI(g *gin.RouterGroup) {
	authed := g.Group("/users", mdw.AuthJWT(h.IdP))
	ez.RegisterAction(ez.New(authed), ez.Action[struct{}, meOut]{
		Method:  http.MethodGet,
		Path:    "/me",
		Binder:  ez.BindNone,
		Handler: h.me,
	})
}

func (h Users) me(c *gin.Context, _ *struct{}) (meOut, error) {
	id, ok := mdw.IdentityFrom(c)
	if !ok {
		return meOut{}, ez.Unauthorized("unauthorized")
	}
	p, err := h.Repo.FindProfile(c.Request.Context(), id.UserID)
	if err != nil {
		return meOut{}, err
	}
	if p.IsBlocked {
		return meOut{}, domain.ErrBlocked
	}
	if p.Badges == nil {
		p.Badges = []string{}
	}
	if p.Preferences == nil {
		p.Preferences = map[string]any{}
	}
	return meOut{User: p}, nil
}
