package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikipath/wikipath/internal/api"
	"github.com/wikipath/wikipath/internal/models"
)

func articleRouter(svc api.ArticleService) *gin.Engine {
	h := api.NewArticleHandler(svc, testLogger())
	s := api.NewStatsHandler(svc, testLogger())

	r := gin.New()
	r.GET("/articles", h.Resolve)
	r.GET("/articles/:id", h.Get)
	r.GET("/stats", s.GetStats)

	return r
}

func TestArticleGet_Found(t *testing.T) {
	t.Parallel()

	svc := &mockArticleService{
		getFn: func(_ context.Context, id int64) (*models.Article, error) {
			return &models.Article{ID: id, Title: "Alpha"}, nil
		},
	}

	w := doRequest(articleRouter(svc), http.MethodGet, "/articles/42", "")
	require.Equal(t, http.StatusOK, w.Code)

	var a models.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &a))
	assert.Equal(t, models.Article{ID: 42, Title: "Alpha"}, a)
}

func TestArticleGet_InvalidID(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"abc", "0", "-3"} {
		w := doRequest(articleRouter(&mockArticleService{}), http.MethodGet, "/articles/"+id, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "id %q", id)
	}
}

func TestArticleGet_NotFound(t *testing.T) {
	t.Parallel()

	svc := &mockArticleService{
		getFn: func(_ context.Context, id int64) (*models.Article, error) {
			return nil, fmt.Errorf("article %d: %w", id, models.ErrNodeNotFound)
		},
	}

	w := doRequest(articleRouter(svc), http.MethodGet, "/articles/7", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, api.ErrCodeNotFound, decodeError(t, w.Body.Bytes()).Code)
}

func TestArticleResolve(t *testing.T) {
	t.Parallel()

	svc := &mockArticleService{
		resolveFn: func(_ context.Context, title string) (*models.Article, error) {
			if title == "Twin" {
				return nil, fmt.Errorf("%q matches articles [6 7]: %w", title, models.ErrAmbiguousTitle)
			}
			return &models.Article{ID: 3, Title: title}, nil
		},
	}
	r := articleRouter(svc)

	w := doRequest(r, http.MethodGet, "/articles?title=Gamma", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/articles?title=Twin", "")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decodeError(t, w.Body.Bytes()).Message, "[6 7]")

	w = doRequest(r, http.MethodGet, "/articles", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStats(t *testing.T) {
	t.Parallel()

	svc := &mockArticleService{
		statsFn: func(context.Context) (*models.Stats, error) {
			return &models.Stats{Articles: 8, Links: 6}, nil
		},
	}

	w := doRequest(articleRouter(svc), http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"articles":8,"links":6}`, w.Body.String())
}

func TestStats_Error(t *testing.T) {
	t.Parallel()

	svc := &mockArticleService{
		statsFn: func(context.Context) (*models.Stats, error) { return nil, errBoom },
	}

	w := doRequest(articleRouter(svc), http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decodeError(t, w.Body.Bytes()).Message)
}
