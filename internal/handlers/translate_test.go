package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
)

type stubTranslateService struct {
	texts  []string
	target string
}

func (s *stubTranslateService) TranslateAll(_ context.Context, texts []string, target string) ([]string, error) {
	s.texts, s.target = texts, target
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = strings.ToUpper(t)
	}
	return out, nil
}

func translateRoutes(svc *stubTranslateService) http.Handler {
	deps := testDeps()
	deps.TranslateSvc = svc
	return NewTranslateHandlers(deps).TranslateRoutes()
}

func TestTranslateSingleText(t *testing.T) {
	svc := &stubTranslateService{}
	rr := serve(translateRoutes(svc), jsonRequest(t, http.MethodPost, "/", dto.TranslateRequest{Text: "namaste", Target: "en"}))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp dto.TranslateResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &resp))
	assert.Equal(t, "en", resp.Target)
	assert.Equal(t, []string{"NAMASTE"}, resp.Translations)
	assert.Equal(t, "en", svc.target)
}

func TestTranslateBatchKeepsOrder(t *testing.T) {
	svc := &stubTranslateService{}
	rr := serve(translateRoutes(svc), jsonRequest(t, http.MethodPost, "/", dto.TranslateRequest{Texts: []string{"a", "b", "c"}, Target: "ne"}))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp dto.TranslateResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &resp))
	assert.Equal(t, []string{"A", "B", "C"}, resp.Translations)
}

func TestTranslateRejectsBadInput(t *testing.T) {
	tooMany := make([]string, maxTranslateTexts+1)
	for i := range tooMany {
		tooMany[i] = "x"
	}
	cases := map[string]any{
		"empty":         dto.TranslateRequest{Target: "en"},
		"too many":      dto.TranslateRequest{Texts: tooMany, Target: "en"},
		"missing body":  "",
		"unknown field": `{"text":"a","lang":"en"}`,
		"text too long": dto.TranslateRequest{Texts: []string{"ok", strings.Repeat("क", maxTranslateTextLen+1)}, Target: "en"},
		"body too big":  `{"text":"` + strings.Repeat("a", maxJSONBody) + `","target":"en"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &stubTranslateService{}
			rr := serve(translateRoutes(svc), jsonRequest(t, http.MethodPost, "/", body))
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Nil(t, svc.texts)
		})
	}
}

func TestTranslateAcceptsTextAtLimit(t *testing.T) {
	svc := &stubTranslateService{}
	text := strings.Repeat("क", maxTranslateTextLen)
	rr := serve(translateRoutes(svc), jsonRequest(t, http.MethodPost, "/", dto.TranslateRequest{Text: text, Target: "en"}))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{text}, svc.texts)
}
