package validate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/inkstream/inkstream-go/internal/model"
)

func TestBody_Valid(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(
		`{"email":"a@b.com","password":"longenough","displayName":"Writer"}`))

	var req model.RegisterRequest
	require.Nil(t, Body(r, &req))
	require.Equal(t, "a@b.com", req.Email)
	require.Equal(t, "Writer", req.DisplayName)
}

func TestBody_FieldReport(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(
		`{"email":"not-an-email","password":"short","displayName":""}`))

	var req model.RegisterRequest
	appErr := Body(r, &req)
	require.NotNil(t, appErr)
	require.Equal(t, 400, appErr.HTTPCode)
	require.Equal(t, "Invalid field (body)", appErr.Message)

	fields, ok := appErr.Data.(map[string]string)
	require.True(t, ok)
	require.Equal(t, "must be a valid email address", fields["email"])
	require.Equal(t, "must be at least 8 characters", fields["password"])
	require.Equal(t, "is required", fields["displayName"])
}

func TestBody_MalformedJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))

	var req model.LoginRequest
	appErr := Body(r, &req)
	require.NotNil(t, appErr)
	require.Equal(t, "Invalid request body", appErr.Message)
}

func TestBody_StartsWith(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(
		`{"name":"tech","path":"no-leading-slash"}`))

	var req model.CategoryRequest
	appErr := Body(r, &req)
	require.NotNil(t, appErr)

	fields := appErr.Data.(map[string]string)
	require.Equal(t, `must start with "/"`, fields["path"])
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestUUIDParams(t *testing.T) {
	t.Run("valid uuid", func(t *testing.T) {
		r := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil),
			"articleId", "7d444840-9dc0-11d1-b245-5ffdce74fad2")
		require.Nil(t, UUIDParams(r, "articleId"))
	})

	t.Run("malformed uuid", func(t *testing.T) {
		r := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "articleId", "abc123")
		appErr := UUIDParams(r, "articleId")
		require.NotNil(t, appErr)
		require.Equal(t, 400, appErr.HTTPCode)
		require.Equal(t, "Invalid param: articleId", appErr.Message)
	})
}

func TestPagination(t *testing.T) {
	cases := []struct {
		name     string
		query    string
		page     int
		pageSize int
	}{
		{"defaults when absent", "", 1, 10},
		{"explicit values", "page=3&pageSize=25", 3, 25},
		{"page zero falls back", "page=0&pageSize=5", 1, 5},
		{"negative page falls back", "page=-2", 1, 10},
		{"non-numeric pageSize falls back", "page=2&pageSize=abc", 2, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil)
			p := Pagination(r)
			require.Equal(t, tc.page, p.Page)
			require.Equal(t, tc.pageSize, p.PageSize)
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	require.Equal(t, 0, model.Pagination{Page: 1, PageSize: 10}.Offset())
	require.Equal(t, 40, model.Pagination{Page: 5, PageSize: 10}.Offset())
}
