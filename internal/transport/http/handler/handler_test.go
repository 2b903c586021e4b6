package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"urbanvibe-api/internal/core/auth"
	"urbanvibe-api/internal/domain"
)

func init() { gin.SetMode(gin.TestMode) }

type fakeListings struct {
	page   domain.ListingsPage
	points []domain.GeoPoint
	detail *domain.ListingDetail
	err    error

	gotList domain.ListingQuery
	gotMap  domain.MapQuery
	gotID   uuid.UUID
}

func (f *fakeListings) List(_ context.Context, q domain.ListingQuery) (domain.ListingsPage, error) {
	f.gotList = q
	if f.err != nil {
		return domain.ListingsPage{}, f.err
	}
	p := f.page
	p.Limit, p.Offset = q.Limit, q.Offset
	return p, nil
}

func (f *fakeListings) Map(_ context.Context, q domain.MapQuery) ([]domain.GeoPoint, error) {
	f.gotMap = q
	return f.points, f.err
}

func (f *fakeListings) Detail(_ context.Context, id uuid.UUID) (*domain.ListingDetail, error) {
	f.gotID = id
	if f.err != nil {
		return nil, f.err
	}
	if f.detail == nil {
		return nil, domain.ErrNotFound
	}
	return f.detail, nil
}

type fakeTags struct {
	tags []domain.Tag
	got  domain.TagQuery
}

func (f *fakeTags) List(_ context.Context, q domain.TagQuery) ([]domain.Tag, error) {
	f.got = q
	return f.tags, nil
}

type fakeUsers struct {
	profile *domain.UserProfile
}

func (f *fakeUsers) FindProfile(_ context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	if f.profile == nil || f.profile.ID != id {
		return nil, domain.ErrNotFound
	}
	cp := *f.profile
	return &cp, nil
}

type fakeIdP struct{ id auth.Identity }

func (f fakeIdP) Identify(_ context.Context, tok string) (auth.Identity, error) {
	if tok != "good" {
		return auth.Identity{}, auth.ErrUnauthenticated
	}
	return f.id, nil
}

type fakePing struct{ err error }

func (f fakePing) Ping(context.Context) error { return f.err }

type mounter interface{ MountAPI(*gin.RouterGroup) }

func newEngine(mods ...mounter) *gin.Engine {
	r := gin.New()
	g := r.Group("/api/v1")
	for _, m := range mods {
		m.MountAPI(g)
	}
	return r
}

func get(t *testing.T, r http.Handler, url string, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListLocalsEmptyStore(t *testing.T) {
	r := newEngine(Locals{Repo: &fakeListings{}})
	w := get(t, r, "/api/v1/locals")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	want := `{"items":[],"limit":50,"offset":0,"total":0}`
	if w.Body.String() != want {
		t.Fatalf("body = %s, want %s", w.Body.String(), want)
	}
}

func TestListLocalsNormalizesFilters(t *testing.T) {
	f := &fakeListings{}
	r := newEngine(Locals{Repo: f})

	get(t, r, "/api/v1/locals?q=ab&tags=vegan&tags=+vegan+&tags=bar&bbox=1,2,3&limit=500&offset=-4")
	got := f.gotList
	if got.Text != "" {
		t.Errorf("short q not ignored: %q", got.Text)
	}
	if !reflect.DeepEqual(got.Tags, []string{"vegan", "bar"}) {
		t.Errorf("tags = %v", got.Tags)
	}
	if got.BBox != nil {
		t.Errorf("malformed bbox not ignored: %v", got.BBox)
	}
	if got.Limit != domain.MaxListLimit || got.Offset != 0 {
		t.Errorf("limit/offset = %d/%d", got.Limit, got.Offset)
	}

	get(t, r, "/api/v1/locals?q=++cafe++&bbox=-70.7,-33.5,-70.5,-33.4&limit=abc&offset=20")
	got = f.gotList
	if got.Text != "cafe" || got.BBox == nil || got.Limit != domain.DefaultListLimit || got.Offset != 20 {
		t.Errorf("unexpected query %+v", got)
	}
}

func TestListLocalsUnavailable(t *testing.T) {
	r := newEngine(Locals{Repo: &fakeListings{err: domain.ErrUnavailable}})
	w := get(t, r, "/api/v1/locals")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Code != http.StatusServiceUnavailable || body.Msg == "" {
		t.Fatalf("body = %+v", body)
	}
}

func TestListLocalsHidesInternalErrors(t *testing.T) {
	r := newEngine(Locals{Repo: &fakeListings{err: errors.New("pq: relation does not exist")}})
	w := get(t, r, "/api/v1/locals")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if want := `{"code":500,"msg":"Internal Server Error","data":{}}`; w.Body.String() != want {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestMapLocals(t *testing.T) {
	f := &fakeListings{}
	r := newEngine(Locals{Repo: f})

	w := get(t, r, "/api/v1/locals/map?tags=vegan&limit=99999")
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if f.gotMap.Limit != domain.MaxMapLimit || len(f.gotMap.Tags) != 1 {
		t.Fatalf("map query = %+v", f.gotMap)
	}

	get(t, r, "/api/v1/locals/map")
	if f.gotMap.Limit != domain.DefaultMapLimit || f.gotMap.Tags != nil || f.gotMap.BBox != nil {
		t.Fatalf("defaults not applied: %+v", f.gotMap)
	}
}

func TestLocalDetail(t *testing.T) {
	id := uuid.New()
	f := &fakeListings{detail: &domain.ListingDetail{
		Listing: domain.Listing{ID: id, Name: "Café Uno", Status: domain.StatusPublished},
	}}
	r := newEngine(Locals{Repo: f})

	w := get(t, r, "/api/v1/locals/"+id.String())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got domain.ListingDetail
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.ID != id || got.Tags == nil {
		t.Fatalf("detail = %+v", got)
	}

	if w := get(t, r, "/api/v1/locals/not-a-uuid"); w.Code != http.StatusBadRequest {
		t.Fatalf("malformed id status = %d", w.Code)
	}

	f.detail = nil
	if w := get(t, r, "/api/v1/locals/"+uuid.NewString()); w.Code != http.StatusNotFound {
		t.Fatalf("absent status = %d", w.Code)
	}
}

func TestTagsGrouped(t *testing.T) {
	f := &fakeTags{tags: []domain.Tag{
		{ID: 1, Slug: "bar", Name: "Bar", Category: "ambiente"},
		{ID: 2, Slug: "pub", Name: "Pub", Category: "ambiente"},
		{ID: 3, Slug: "vegan", Name: "Vegano", Category: "dieta"},
	}}
	r := newEngine(Tags{Repo: f})

	w := get(t, r, "/api/v1/tags?categoria=+ambiente+&q=b")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if f.got.Category != "ambiente" || f.got.Text != "" {
		t.Fatalf("tag query = %+v", f.got)
	}
	var groups []domain.TagGroup
	if err := json.Unmarshal(w.Body.Bytes(), &groups); err != nil {
		t.Fatal(err)
	}
	if len(groups) != 2 || groups[0].Category != "ambiente" || len(groups[0].Tags) != 2 || groups[1].Category != "dieta" {
		t.Fatalf("groups = %+v", groups)
	}

	f.tags = nil
	if w := get(t, r, "/api/v1/tags?q=ve"); w.Body.String() != "[]" || f.got.Text != "ve" {
		t.Fatalf("body = %s query = %+v", w.Body.String(), f.got)
	}
}

func TestUsersMe(t *testing.T) {
	uid := uuid.New()
	users := &fakeUsers{profile: &domain.UserProfile{ID: uid, Email: "ana@example.com", Role: domain.RoleUser}}
	r := newEngine(Users{Repo: users, IdP: fakeIdP{id: auth.Identity{UserID: uid}}})

	if w := get(t, r, "/api/v1/users/me"); w.Code != http.StatusUnauthorized {
		t.Fatalf("no token status = %d", w.Code)
	}
	if w := get(t, r, "/api/v1/users/me", "Authorization", "Bearer bad"); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token status = %d", w.Code)
	}

	w := get(t, r, "/api/v1/users/me", "Authorization", "Bearer good")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var out struct {
		User domain.UserProfile `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.User.ID != uid || out.User.Badges == nil || out.User.Preferences == nil {
		t.Fatalf("user = %+v", out.User)
	}

	users.profile.IsBlocked = true
	if w := get(t, r, "/api/v1/users/me", "Authorization", "Bearer good"); w.Code != http.StatusForbidden {
		t.Fatalf("blocked status = %d", w.Code)
	}

	users.profile = nil
	if w := get(t, r, "/api/v1/users/me", "Authorization", "Bearer good"); w.Code != http.StatusNotFound {
		t.Fatalf("missing profile status = %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	r := gin.New()
	h := &Health{DB: fakePing{}}
	r.GET("/health", func(c *gin.Context) { h.Handle(c) })

	w := get(t, r, "/health")
	if w.Code != http.StatusOK || w.Body.String() != `{"status":"ok","db":"ok"}` {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}

	h.DB = fakePing{err: errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")}
	w = get(t, r, "/health")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("degraded status = %d", w.Code)
	}
	var out healthOut
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Status != "degraded" || out.Detail != "database unreachable" {
		t.Fatalf("body = %+v", out)
	}
}
