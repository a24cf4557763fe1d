package handlers

import (
	"context"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/errs"
	"github.com/GregMSThompson/sahakari-backend/internal/response"
)

const (
	// texts accepted in one translate request
	maxTranslateTexts = 100
	// characters accepted per text
	maxTranslateTextLen = 5000
)

type translateService interface {
	TranslateAll(ctx context.Context, texts []string, target string) ([]string, error)
}

type translateHandlers struct {
	ResponseHandler response.ResponseHandler
	TranslateSvc    translateService
}

func NewTranslateHandlers(deps *Deps) *translateHandlers {
	return &translateHandlers{
		ResponseHandler: deps.ResponseHandler,
		TranslateSvc:    deps.TranslateSvc,
	}
}

func (h *translateHandlers) TranslateRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Translate)
	return r
}

// Translate never fails on provider errors; untranslatable texts come back
// unchanged.
func (h *translateHandlers) Translate(w http.ResponseWriter, r *http.Request) {
	var req dto.TranslateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	texts := req.Texts
	if len(texts) == 0 && req.Text != "" {
		texts = []string{req.Text}
	}
	if len(texts) == 0 {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("text or texts is required"))
		return
	}
	if len(texts) > maxTranslateTexts {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError(fmt.Sprintf("at most %d texts per request", maxTranslateTexts)))
		return
	}
	for _, text := range texts {
		if utf8.RuneCountInString(text) > maxTranslateTextLen {
			h.ResponseHandler.HandleError(w, r, errs.NewValidationError(fmt.Sprintf("texts are limited to %d characters", maxTranslateTextLen)))
			return
		}
	}

	out, err := h.TranslateSvc.TranslateAll(r.Context(), texts, req.Target)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.TranslateResponse{Target: req.Target, Translations: out})
}
