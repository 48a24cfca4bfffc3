package content

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/spire/internal/pkg/validator"
	apperrors "github.com/xyz-asif/spire/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore mirrors the unique-index behaviour of Repository in memory
type memStore struct {
	mu         sync.Mutex
	posts      map[primitive.ObjectID]*Post
	boards     map[primitive.ObjectID]*Board
	boardPosts map[[2]primitive.ObjectID]bool
	likes      map[[2]primitive.ObjectID]bool
}

func newMemStore() *memStore {
	return &memStore{
		posts:      map[primitive.ObjectID]*Post{},
		boards:     map[primitive.ObjectID]*Board{},
		boardPosts: map[[2]primitive.ObjectID]bool{},
		likes:      map[[2]primitive.ObjectID]bool{},
	}
}

func (m *memStore) CreatePost(_ context.Context, p *Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = primitive.NewObjectID()
	m.posts[p.ID] = p
	return nil
}

func (m *memStore) CreateBoard(_ context.Context, b *Board) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = primitive.NewObjectID()
	m.boards[b.ID] = b
	return nil
}

func (m *memStore) GetPost(_ context.Context, id primitive.ObjectID) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, apperrors.ErrNotFound
}

func (m *memStore) GetBoard(_ context.Context, id primitive.ObjectID) (*Board, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.boards[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, apperrors.ErrNotFound
}

func (m *memStore) VisibleBoards(_ context.Context, viewer primitive.ObjectID, _, _ int64) ([]Board, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Board{}
	for _, b := range m.boards {
		if b.IsVisibleTo(viewer) {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memStore) AddPostToBoard(_ context.Context, boardID, postID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]primitive.ObjectID{boardID, postID}
	if m.boardPosts[key] {
		return false, nil
	}
	m.boardPosts[key] = true
	m.boards[boardID].PostCount++
	return true, nil
}

func (m *memStore) LikePost(_ context.Context, userID, postID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]primitive.ObjectID{userID, postID}
	if m.likes[key] {
		return false, nil
	}
	m.likes[key] = true
	m.posts[postID].LikesCount++
	return true, nil
}

func (m *memStore) UnlikePost(_ context.Context, userID, postID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]primitive.ObjectID{userID, postID}
	if !m.likes[key] {
		return false, nil
	}
	delete(m.likes, key)
	if m.posts[postID].LikesCount > 0 {
		m.posts[postID].LikesCount--
	}
	return true, nil
}

func newTestRouter(t *testing.T, store Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validator.Register())

	h := NewHandler(store)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set("userID", id)
		}
		c.Next()
	})
	r.POST("/posts", h.CreatePost)
	r.GET("/posts/:id", h.GetPost)
	r.POST("/posts/:id/like", h.LikePost)
	r.DELETE("/posts/:id/like", h.UnlikePost)
	r.POST("/boards", h.CreateBoard)
	r.GET("/boards", h.ListBoards)
	r.POST("/boards/:id/posts", h.AddPostToBoard)
	return r
}

func do(r *gin.Engine, method, path, user, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePost_NormalizesTags(t *testing.T) {
	store := newMemStore()
	r := newTestRouter(t, store)
	user := primitive.NewObjectID()

	w := do(r, "POST", "/posts", user.Hex(), `{
		"title": "Morning light",
		"contentType": "image",
		"mediaUrl": "https://cdn.example.com/a.jpg",
		"tags": [" Minimalist", "minimalist", "Bright "],
		"mood": "Peaceful",
		"aesthetic": "Clean"
	}`)
	require.Equal(t, 201, w.Code, w.Body.String())

	var body struct {
		Data Post `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"minimalist", "bright"}, body.Data.Tags)
	assert.Equal(t, "peaceful", body.Data.Mood)
	assert.Equal(t, "clean", body.Data.Aesthetic)
	assert.Equal(t, user, body.Data.UserID)
}

func TestCreatePost_Validation(t *testing.T) {
	r := newTestRouter(t, newMemStore())
	user := primitive.NewObjectID().Hex()

	w := do(r, "POST", "/posts", user, `{"title":"x","contentType":"gif","mediaUrl":"https://cdn.example.com/a.gif"}`)
	assert.Equal(t, 422, w.Code)

	w = do(r, "POST", "/posts", user, `{"title":"x","contentType":"image","mediaUrl":"https://cdn.example.com/a.jpg","tags":["#nope"]}`)
	assert.Equal(t, 422, w.Code)

	w = do(r, "POST", "/posts", "", `{}`)
	assert.Equal(t, 401, w.Code)
}

func TestLikePost_IsIdempotent(t *testing.T) {
	store := newMemStore()
	r := newTestRouter(t, store)
	post := &Post{Title: "p"}
	require.NoError(t, store.CreatePost(context.Background(), post))
	user := primitive.NewObjectID().Hex()
	path := "/posts/" + post.ID.Hex() + "/like"

	assert.Equal(t, 201, do(r, "POST", path, user, "").Code)
	assert.Equal(t, 200, do(r, "POST", path, user, "").Code)
	assert.Equal(t, 1, store.posts[post.ID].LikesCount)

	assert.Equal(t, 200, do(r, "DELETE", path, user, "").Code)
	assert.Equal(t, 404, do(r, "DELETE", path, user, "").Code)
	assert.Equal(t, 0, store.posts[post.ID].LikesCount)

	assert.Equal(t, 404, do(r, "POST", "/posts/"+primitive.NewObjectID().Hex()+"/like", user, "").Code)
	assert.Equal(t, 400, do(r, "POST", "/posts/not-an-id/like", user, "").Code)
}

func TestBoards_VisibilityAndOwnership(t *testing.T) {
	store := newMemStore()
	r := newTestRouter(t, store)
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()

	private := &Board{UserID: owner, Title: "secret", IsPrivate: true}
	public := &Board{UserID: owner, Title: "open"}
	require.NoError(t, store.CreateBoard(context.Background(), private))
	require.NoError(t, store.CreateBoard(context.Background(), public))
	post := &Post{UserID: owner, Title: "p"}
	require.NoError(t, store.CreatePost(context.Background(), post))

	var list struct {
		Data  []Board `json:"data"`
		Total int64   `json:"total"`
	}
	w := do(r, "GET", "/boards", "", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, int64(1), list.Total)

	w = do(r, "GET", "/boards", owner.Hex(), "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, int64(2), list.Total)

	body := `{"postId":"` + post.ID.Hex() + `"}`
	assert.Equal(t, 404, do(r, "POST", "/boards/"+private.ID.Hex()+"/posts", other.Hex(), body).Code)
	assert.Equal(t, 403, do(r, "POST", "/boards/"+public.ID.Hex()+"/posts", other.Hex(), body).Code)
	assert.Equal(t, 201, do(r, "POST", "/boards/"+public.ID.Hex()+"/posts", owner.Hex(), body).Code)
	assert.Equal(t, 200, do(r, "POST", "/boards/"+public.ID.Hex()+"/posts", owner.Hex(), body).Code)
	assert.Equal(t, 1, store.boards[public.ID].PostCount)
}
