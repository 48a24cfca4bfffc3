package users

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/xyz-asif/spire/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memStore struct {
	users map[primitive.ObjectID]*User
}

func (m *memStore) GetByID(_ context.Context, id primitive.ObjectID) (*User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrNotFound
}

func (m *memStore) GetByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func newTestRouter(store Store, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(store)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("userID", userID)
		}
		c.Next()
	})
	r.GET("/users/me", h.GetMe)
	r.GET("/users/username/:username", h.GetUserByUsername)
	return r
}

func TestGetMe(t *testing.T) {
	id := primitive.NewObjectID()
	store := &memStore{users: map[primitive.ObjectID]*User{
		id: {ID: id, Username: "maya", Email: "maya@example.com", FavoriteCategories: []string{"cozy", "vintage"}},
	}}

	w := httptest.NewRecorder()
	newTestRouter(store, id.Hex()).ServeHTTP(w, httptest.NewRequest("GET", "/users/me", nil))

	require.Equal(t, 200, w.Code)
	var body struct {
		Data User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "maya", body.Data.Username)
	assert.Equal(t, []string{"cozy", "vintage"}, body.Data.FavoriteCategories)
}

func TestGetMe_UnknownUser(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(&memStore{}, primitive.NewObjectID().Hex()).
		ServeHTTP(w, httptest.NewRequest("GET", "/users/me", nil))
	assert.Equal(t, 404, w.Code)

	w = httptest.NewRecorder()
	newTestRouter(&memStore{}, "").ServeHTTP(w, httptest.NewRequest("GET", "/users/me", nil))
	assert.Equal(t, 401, w.Code)
}

func TestGetUserByUsername_HidesEmail(t *testing.T) {
	id := primitive.NewObjectID()
	store := &memStore{users: map[primitive.ObjectID]*User{
		id: {ID: id, Username: "maya", Email: "maya@example.com"},
	}}

	w := httptest.NewRecorder()
	newTestRouter(store, "").ServeHTTP(w, httptest.NewRequest("GET", "/users/username/maya", nil))

	require.Equal(t, 200, w.Code)
	assert.NotContains(t, w.Body.String(), "maya@example.com")
}
