package recommendations

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/spire/internal/features/places"
	"github.com/xyz-asif/spire/internal/pkg/validator"
	apperrors "github.com/xyz-asif/spire/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memStore struct {
	recs     []*UserRecommendation
	feedback []Feedback
}

func (m *memStore) ListForUser(_ context.Context, userID primitive.ObjectID, _, _ int64) ([]UserRecommendation, int64, error) {
	out := []UserRecommendation{}
	for _, r := range m.recs {
		if r.UserID == userID && !r.Dismissed {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memStore) GetForUser(_ context.Context, userID, id primitive.ObjectID) (*UserRecommendation, error) {
	for _, r := range m.recs {
		if r.ID == id && r.UserID == userID {
			return r, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memStore) MarkViewed(ctx context.Context, userID, id primitive.ObjectID) error {
	r, err := m.GetForUser(ctx, userID, id)
	if err != nil {
		return err
	}
	r.Viewed = true
	return nil
}

func (m *memStore) Dismiss(ctx context.Context, userID, id primitive.ObjectID) error {
	r, err := m.GetForUser(ctx, userID, id)
	if err != nil {
		return err
	}
	r.Dismissed = true
	return nil
}

func (m *memStore) CreateFeedback(_ context.Context, fb *Feedback) error {
	fb.ID = primitive.NewObjectID()
	m.feedback = append(m.feedback, *fb)
	return nil
}

func (m *memStore) ListFeedback(_ context.Context, userID primitive.ObjectID, _, _ int64) ([]Feedback, int64, error) {
	out := []Feedback{}
	for _, f := range m.feedback {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, int64(len(out)), nil
}

type placeMap map[primitive.ObjectID]places.Place

func (p placeMap) GetMany(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]places.Place, error) {
	out := map[primitive.ObjectID]places.Place{}
	for _, id := range ids {
		if place, ok := p[id]; ok {
			out[id] = place
		}
	}
	return out, nil
}

type stubEngine struct {
	limit      int
	categories []string
}

func (e *stubEngine) GenerateForUser(_ context.Context, userID primitive.ObjectID, limit int) (RunResult, error) {
	e.limit = limit
	return RunResult{UserID: userID, Path: "profile", Created: 3}, nil
}

func (e *stubEngine) RefreshFavoriteCategories(context.Context, primitive.ObjectID) ([]string, error) {
	return e.categories, nil
}

type fixture struct {
	router *gin.Engine
	store  *memStore
	engine *stubEngine
	user   primitive.ObjectID
	place  places.Place
	rec    *UserRecommendation
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validator.Register())

	f := &fixture{
		store:  &memStore{},
		engine: &stubEngine{categories: []string{"cozy"}},
		user:   primitive.NewObjectID(),
		place:  places.Place{ID: primitive.NewObjectID(), Name: "Studio", IsActive: true},
	}
	f.rec = &UserRecommendation{ID: primitive.NewObjectID(), UserID: f.user, PlaceID: f.place.ID, Score: 42, MatchReasons: []string{ReasonAesthetic}}
	f.store.recs = append(f.store.recs, f.rec)

	h := NewHandler(f.store, placeMap{f.place.ID: f.place}, f.engine, 0)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if user := c.GetHeader("X-Test-User"); user != "" {
			c.Set("userID", user)
		}
		c.Next()
	})
	r.GET("/recommendations", h.List)
	r.POST("/recommendations/generate", h.Generate)
	r.GET("/recommendations/feedback", h.ListFeedback)
	r.POST("/recommendations/feedback", h.CreateFeedback)
	r.POST("/recommendations/:id/viewed", h.MarkViewed)
	r.POST("/recommendations/:id/dismiss", h.Dismiss)
	r.POST("/users/me/preferences/refresh", h.RefreshPreferences)
	f.router = r
	return f
}

func (f *fixture) do(method, path, body string, user primitive.ObjectID) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if !user.IsZero() {
		req.Header.Set("X-Test-User", user.Hex())
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestList_EmbedsPlace(t *testing.T) {
	f := newFixture(t)

	w := f.do("GET", "/recommendations", "", f.user)

	require.Equal(t, 200, w.Code)
	var body struct {
		Data  []RecommendationView `json:"data"`
		Total int64                `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, int64(1), body.Total)
	require.NotNil(t, body.Data[0].Place)
	assert.Equal(t, "Studio", body.Data[0].Place.Name)
	assert.Equal(t, 42.0, body.Data[0].Score)
}

func TestList_RequiresUser(t *testing.T) {
	f := newFixture(t)
	w := f.do("GET", "/recommendations", "", primitive.NilObjectID)
	assert.Equal(t, 401, w.Code)
}

func TestGenerate_UsesDefaultAndQueryLimit(t *testing.T) {
	f := newFixture(t)

	w := f.do("POST", "/recommendations/generate", "", f.user)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, DefaultLimit, f.engine.limit)

	w = f.do("POST", "/recommendations/generate?limit=500", "", f.user)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, MaxLimit, f.engine.limit)

	w = f.do("POST", "/recommendations/generate?limit=abc", "", f.user)
	assert.Equal(t, 400, w.Code)
}

func TestDismiss_HidesFromList(t *testing.T) {
	f := newFixture(t)

	w := f.do("POST", "/recommendations/"+f.rec.ID.Hex()+"/dismiss", "", f.user)
	require.Equal(t, 200, w.Code)
	assert.True(t, f.rec.Dismissed)

	w = f.do("GET", "/recommendations", "", f.user)
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestMarkViewed_OtherUsersRecommendation(t *testing.T) {
	f := newFixture(t)

	w := f.do("POST", "/recommendations/"+f.rec.ID.Hex()+"/viewed", "", primitive.NewObjectID())
	assert.Equal(t, 404, w.Code)
	assert.False(t, f.rec.Viewed)

	w = f.do("POST", "/recommendations/not-an-id/viewed", "", f.user)
	assert.Equal(t, 400, w.Code)

	w = f.do("POST", "/recommendations/"+f.rec.ID.Hex()+"/viewed", "", f.user)
	assert.Equal(t, 200, w.Code)
	assert.True(t, f.rec.Viewed)
}

func TestCreateFeedback(t *testing.T) {
	f := newFixture(t)

	body := `{"recommendationId":"` + f.rec.ID.Hex() + `","feedbackType":"visited"}`
	w := f.do("POST", "/recommendations/feedback", body, f.user)
	require.Equal(t, 201, w.Code)
	require.Len(t, f.store.feedback, 1)
	assert.Equal(t, FeedbackVisited, f.store.feedback[0].FeedbackType)

	w = f.do("GET", "/recommendations/feedback", "", f.user)
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestCreateFeedback_Rejects(t *testing.T) {
	f := newFixture(t)

	w := f.do("POST", "/recommendations/feedback", `{"recommendationId":"`+f.rec.ID.Hex()+`","feedbackType":"meh"}`, f.user)
	assert.Equal(t, 422, w.Code)

	w = f.do("POST", "/recommendations/feedback", `{"recommendationId":"`+primitive.NewObjectID().Hex()+`","feedbackType":"saved"}`, f.user)
	assert.Equal(t, 404, w.Code)

	assert.Empty(t, f.store.feedback)
}

func TestRefreshPreferences(t *testing.T) {
	f := newFixture(t)

	w := f.do("POST", "/users/me/preferences/refresh", "", f.user)

	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"favoriteCategories":["cozy"]`)
}
