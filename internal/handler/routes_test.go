package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/inkstream/inkstream-go/internal/apperr"
	"github.com/inkstream/inkstream-go/internal/authority"
	"github.com/inkstream/inkstream-go/internal/crypto"
	"github.com/inkstream/inkstream-go/internal/middleware"
	"github.com/inkstream/inkstream-go/internal/model"
	"github.com/inkstream/inkstream-go/internal/payment"
	"github.com/inkstream/inkstream-go/internal/response"
	"github.com/inkstream/inkstream-go/internal/service"
)

type testEnv struct {
	router   chi.Router
	users    *fakeUserStore
	articles *fakeArticleStore
	comments *fakeCommentStore
	sessions authority.Store
}

// newTestEnv wires the fakes through the real services, handlers and
// middleware into the production route layout.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := newFakeUserStore()
	articles := newFakeArticleStore()
	categories := newFakeCategoryStore()
	comments := newFakeCommentStore()
	sessions := authority.NewMemoryStore(time.Hour)

	codec, err := payment.New(payment.Config{
		MerchantID: "MS000000001",
		HashKey:    "abcdefghijklmnopqrstuvwxyz123456",
		HashIV:     "1234567890abcdef",
		Version:    "2.0",
	})
	require.NoError(t, err)

	authService := service.NewAuthService(users, sessions, "test-secret", 15*time.Minute)
	userService := service.NewUserService(users)
	articleService := service.NewArticleService(articles, categories, comments)
	categoryService := service.NewCategoryService(categories)
	commentService := service.NewCommentService(comments)

	authHandler := NewAuthHandler(authService, "http://localhost:3000")
	userHandler := NewUserHandler(userService, articleService, nil, codec)
	articleHandler := NewArticleHandler(articleService, userService)
	categoryHandler := NewCategoryHandler(categoryService)
	commentHandler := NewCommentHandler(commentService)

	auth := middleware.NewAuth(sessions)

	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, apperr.RouteNotFound())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(auth.Required)
			r.Post("/auth/logout", authHandler.HandleLogout)
			r.Post("/user/{userId}/follow", userHandler.HandleFollow)
			r.Delete("/user/{userId}/follow", userHandler.HandleUnfollow)
			r.Post("/article", articleHandler.HandleCreate)
			r.Patch("/article/{articleId}", articleHandler.HandleUpdate)
			r.Delete("/article/{articleId}", articleHandler.HandleDelete)
			r.Post("/article/{articleId}/like", articleHandler.HandleLike)
			r.Patch("/comment/{commentId}", commentHandler.HandleUpdate)
			r.Post("/category", categoryHandler.HandleCreate)
			r.Put("/category/{categoryId}", categoryHandler.HandleUpdate)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Optional)
			r.Get("/article/{articleId}", articleHandler.HandleGet)
		})

		r.Get("/hot-articles", articleHandler.HandleListHot)
	})

	return &testEnv{router: r, users: users, articles: articles, comments: comments, sessions: sessions}
}

// sessionFor opens a session for the user and returns its bearer token.
func (e *testEnv) sessionFor(t *testing.T, user *model.User) string {
	t.Helper()

	token, err := crypto.GenerateSessionToken()
	require.NoError(t, err)
	require.NoError(t, e.sessions.Set(context.Background(), token, authority.Record{ID: user.ID, Email: user.Email}))
	return token
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

func (e *testEnv) do(t *testing.T, method, target, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(t, http.MethodPost, "/api/v1/auth/register", "",
		`{"email":"reader@example.com","password":"password123","displayName":"Reader"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := env.do(t, http.MethodPost, "/api/v1/auth/login", "",
		`{"email":"reader@example.com","password":"wrong-password"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, 2008, body.StatusCode)
	require.Equal(t, "User not found or wrong password", body.Message)
}

func TestLogin_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodPost, "/api/v1/auth/login", "",
		`{"email":"nobody@example.com","password":"password123"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, 2001, body.StatusCode)
	require.Equal(t, "User not found or wrong password", body.Message)
}

func TestRegister_InvalidBody(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodPost, "/api/v1/auth/register", "",
		`{"email":"not-an-email","password":"short"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, 1003, body.StatusCode)
	require.Equal(t, "Invalid field (body)", body.Message)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(body.Data, &fields))
	require.Contains(t, fields, "email")
	require.Contains(t, fields, "password")
	require.Contains(t, fields, "displayName")
}

func TestGetArticle_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodGet, "/api/v1/article/0e6f16c2-54a8-4a24-bf70-a01c4b6951a4", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, 1007, body.StatusCode)
	require.Equal(t, "Article not found", body.Message)
}

func TestGetArticle_InvalidID(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodGet, "/api/v1/article/not-a-uuid", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, 1006, body.StatusCode)
	require.Equal(t, "Invalid param: articleId", body.Message)
}

func TestGetArticle_PaidContentPreview(t *testing.T) {
	env := newTestEnv(t)
	creator := env.users.add("creator@example.com", "Creator")

	full := strings.Repeat("a", 500)
	article := env.articles.add(model.Article{
		CreatorID: creator.ID,
		Title:     "Paid piece",
		Content:   full,
		IsNeedPay: true,
	})

	// Anonymous readers get the preview.
	rec, body := env.do(t, http.MethodGet, "/api/v1/article/"+article.ID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Article
	require.NoError(t, json.Unmarshal(body.Data, &got))
	require.Len(t, got.Content, 100)

	// The creator reads the full content.
	token := env.sessionFor(t, creator)
	_, body = env.do(t, http.MethodGet, "/api/v1/article/"+article.ID, token, "")
	require.NoError(t, json.Unmarshal(body.Data, &got))
	require.Equal(t, full, got.Content)
}

func TestFollow_Self(t *testing.T) {
	env := newTestEnv(t)
	user := env.users.add("reader@example.com", "Reader")
	token := env.sessionFor(t, user)

	rec, body := env.do(t, http.MethodPost, "/api/v1/user/"+user.ID+"/follow", token, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, 1005, body.StatusCode)
	require.Equal(t, "You cannot follow yourself", body.Message)
	require.Empty(t, env.users.follows)
}

func TestFollow(t *testing.T) {
	env := newTestEnv(t)
	follower := env.users.add("reader@example.com", "Reader")
	creator := env.users.add("creator@example.com", "Creator")
	token := env.sessionFor(t, follower)

	rec, _ := env.do(t, http.MethodPost, "/api/v1/user/"+creator.ID+"/follow", token, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.True(t, env.users.follows[follower.ID+"/"+creator.ID])
}

func TestFollow_UnknownTarget(t *testing.T) {
	env := newTestEnv(t)
	follower := env.users.add("reader@example.com", "Reader")
	token := env.sessionFor(t, follower)

	rec, body := env.do(t, http.MethodPost, "/api/v1/user/cb09a66a-54b2-41d4-b381-0b717710e087/follow", token, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, 2001, body.StatusCode)
	require.Equal(t, "User not found", body.Message)
}

func TestLike_Twice(t *testing.T) {
	env := newTestEnv(t)
	user := env.users.add("reader@example.com", "Reader")
	article := env.articles.add(model.Article{CreatorID: user.ID, Title: "Liked"})
	token := env.sessionFor(t, user)

	rec, _ := env.do(t, http.MethodPost, "/api/v1/article/"+article.ID+"/like", token, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec, body := env.do(t, http.MethodPost, "/api/v1/article/"+article.ID+"/like", token, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, 1003, body.StatusCode)
	require.Equal(t, "Article already liked", body.Message)
}

func TestUpdateArticle_NotOwner(t *testing.T) {
	env := newTestEnv(t)
	creator := env.users.add("creator@example.com", "Creator")
	other := env.users.add("other@example.com", "Other")
	article := env.articles.add(model.Article{CreatorID: creator.ID, Title: "Original"})
	token := env.sessionFor(t, other)

	rec, body := env.do(t, http.MethodPatch, "/api/v1/article/"+article.ID, token,
		`{"title":"Hijacked"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, 1007, body.StatusCode)
	require.Equal(t, "Article not found or you are not the creator of this article", body.Message)

	// The article is untouched.
	require.Equal(t, "Original", env.articles.articles[article.ID].Title)
}

func TestDeleteArticle_NotOwner(t *testing.T) {
	env := newTestEnv(t)
	creator := env.users.add("creator@example.com", "Creator")
	other := env.users.add("other@example.com", "Other")
	article := env.articles.add(model.Article{CreatorID: creator.ID, Title: "Kept"})
	token := env.sessionFor(t, other)

	rec, body := env.do(t, http.MethodDelete, "/api/v1/article/"+article.ID, token, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, 1007, body.StatusCode)
	require.Equal(t, "Article not found or you are not the creator of this article", body.Message)
	require.Contains(t, env.articles.articles, article.ID)
}

func TestDeleteArticle_Absent(t *testing.T) {
	env := newTestEnv(t)
	user := env.users.add("creator@example.com", "Creator")
	token := env.sessionFor(t, user)

	rec, body := env.do(t, http.MethodDelete, "/api/v1/article/44b5ab0e-9702-4035-9b35-6aee871a08e2", token, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, 1007, body.StatusCode)
}

func TestUpdateComment_NotAuthor(t *testing.T) {
	env := newTestEnv(t)
	author := env.users.add("author@example.com", "Author")
	other := env.users.add("other@example.com", "Other")
	article := env.articles.add(model.Article{CreatorID: author.ID, Title: "Discussed"})
	require.NoError(t, env.comments.Create(context.Background(), author.ID, article.ID, "first"))

	var commentID string
	for id := range env.comments.comments {
		commentID = id
	}

	token := env.sessionFor(t, other)
	rec, body := env.do(t, http.MethodPatch, "/api/v1/comment/"+commentID, token,
		`{"content":"rewritten"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, 1007, body.StatusCode)
	require.Equal(t, "Comment not found or you are not the author of this comment", body.Message)
	require.Equal(t, "first", env.comments.comments[commentID].Content)
}

func TestUpdateCategory_Absent(t *testing.T) {
	env := newTestEnv(t)
	user := env.users.add("editor@example.com", "Editor")
	token := env.sessionFor(t, user)

	rec, body := env.do(t, http.MethodPut, "/api/v1/category/3d1a3bb2-61f0-4f0e-96be-3bb926df1872", token,
		`{"name":"Tech","path":"/tech"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, 1007, body.StatusCode)
	require.Equal(t, "Category not found", body.Message)
}

func TestHotArticles_BadCount(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodGet, "/api/v1/hot-articles?count=ten", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, 1004, body.StatusCode)
	require.Equal(t, "Count must be a number.", body.Message)
}

func TestHotArticles_ZeroCount(t *testing.T) {
	env := newTestEnv(t)

	// Numeric but non-positive counts are valid and just select nothing.
	rec, body := env.do(t, http.MethodGet, "/api/v1/hot-articles?count=0", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 0, body.StatusCode)

	rec, _ = env.do(t, http.MethodGet, "/api/v1/hot-articles?count=-3", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCategoryCreate_Duplicate(t *testing.T) {
	env := newTestEnv(t)
	user := env.users.add("editor@example.com", "Editor")
	token := env.sessionFor(t, user)

	rec, _ := env.do(t, http.MethodPost, "/api/v1/category", token,
		`{"name":"Tech","path":"/tech"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := env.do(t, http.MethodPost, "/api/v1/category", token,
		`{"name":"Tech","path":"/tech"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, 1003, body.StatusCode)
	require.Equal(t, "Category name already exists", body.Message)
}

func TestLogout_InvalidatesSession(t *testing.T) {
	env := newTestEnv(t)
	user := env.users.add("reader@example.com", "Reader")
	token := env.sessionFor(t, user)

	rec, _ := env.do(t, http.MethodPost, "/api/v1/auth/logout", token, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec, body := env.do(t, http.MethodPost, "/api/v1/auth/logout", token, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, 2003, body.StatusCode)
	require.Equal(t, "Token is invalid", body.Message)
}

func TestRouteNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodGet, "/api/v1/no-such-route", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, 1001, body.StatusCode)
	require.Equal(t, "Route Not Found", body.Message)
}
