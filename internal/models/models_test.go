package models_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/wikipath/wikipath/internal/models"
)

func assertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func assertErrorIs(t *testing.T, err, want error) {
	t.Helper()

	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestCreateArticleRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CreateArticleRequest
		wantErr error
	}{
		{name: "valid", req: models.CreateArticleRequest{ID: 1, Title: "Alpha"}},
		{name: "zero id", req: models.CreateArticleRequest{Title: "Alpha"}, wantErr: models.ErrInvalidID},
		{name: "negative id", req: models.CreateArticleRequest{ID: -4, Title: "Alpha"}, wantErr: models.ErrInvalidID},
		{name: "missing title", req: models.CreateArticleRequest{ID: 1}, wantErr: models.ErrMissingTitle},
		{name: "title too long", req: models.CreateArticleRequest{ID: 1, Title: strings.Repeat("x", 1025)}, wantErr: models.ErrTooLong},
		{name: "title at limit", req: models.CreateArticleRequest{ID: 1, Title: strings.Repeat("x", 1024)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == nil {
				assertNoError(t, err)
				return
			}

			assertErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestErrFieldTooLongMessage(t *testing.T) {
	err := models.ErrFieldTooLong("title", 1024)

	if !strings.Contains(err.Error(), "title exceeds maximum length of 1024") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestCreateLinkRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CreateLinkRequest
		wantErr error
	}{
		{name: "valid", req: models.CreateLinkRequest{Src: 1, Dst: 2}},
		{name: "self link", req: models.CreateLinkRequest{Src: 3, Dst: 3}},
		{name: "missing src", req: models.CreateLinkRequest{Dst: 2}, wantErr: models.ErrMissingSrc},
		{name: "missing dst", req: models.CreateLinkRequest{Src: 1}, wantErr: models.ErrMissingDst},
		{name: "negative src", req: models.CreateLinkRequest{Src: -1, Dst: 2}, wantErr: models.ErrInvalidID},
		{name: "negative dst", req: models.CreateLinkRequest{Src: 1, Dst: -2}, wantErr: models.ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == nil {
				assertNoError(t, err)
				return
			}

			assertErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseAlgorithm(t *testing.T) {
	got, err := models.ParseAlgorithm("", models.AlgorithmBFS)
	assertNoError(t, err)

	if got != models.AlgorithmBFS {
		t.Errorf("empty name: got %q, want default", got)
	}

	got, err = models.ParseAlgorithm("bidirectional", models.AlgorithmBFS)
	assertNoError(t, err)

	if got != models.AlgorithmBidirectional {
		t.Errorf("got %q", got)
	}

	_, err = models.ParseAlgorithm("dijkstra", models.AlgorithmBFS)
	assertErrorIs(t, err, models.ErrUnknownAlgorithm)
}

func TestArticlePath(t *testing.T) {
	var empty *models.ArticlePath
	if empty.Clicks() != 0 || empty.Titles() != nil {
		t.Errorf("nil path: clicks %d titles %v", empty.Clicks(), empty.Titles())
	}

	single := &models.ArticlePath{Articles: []models.ArticleWrapper{{ID: 1, Title: "Alpha"}}}
	if single.Clicks() != 0 {
		t.Errorf("single article path: clicks = %d", single.Clicks())
	}

	p := &models.ArticlePath{Articles: []models.ArticleWrapper{
		{ID: 1, Title: "Alpha"},
		{ID: 2, Title: "Beta"},
		{ID: 3, Title: "Gamma"},
	}}

	if p.Clicks() != 2 {
		t.Errorf("clicks = %d, want 2", p.Clicks())
	}

	if got := strings.Join(p.Titles(), ","); got != "Alpha,Beta,Gamma" {
		t.Errorf("titles = %q", got)
	}
}
