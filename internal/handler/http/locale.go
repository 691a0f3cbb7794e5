package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront/internal/locale"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/validator"
)

// LocaleHandler serves the active language and its translations.
type LocaleHandler struct {
	language *service.LanguageService
	logger   *slog.Logger
}

// NewLocaleHandler creates a new locale HTTP handler.
func NewLocaleHandler(language *service.LanguageService, logger *slog.Logger) *LocaleHandler {
	return &LocaleHandler{language: language, logger: logger}
}

// ChangeLanguageRequest is the JSON request body for switching language.
type ChangeLanguageRequest struct {
	Language string `json:"language" validate:"required,bcp47_language_tag"`
}

type languageOption struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type localeResponse struct {
	Language     string                  `json:"language"`
	Supported    []languageOption        `json:"supported"`
	Translations map[string]any          `json:"translations"`
	StoreError   *httputil.ErrorResponse `json:"storeError,omitempty"`
}

// GetLocale handles GET /api/v1/locale
func (h *LocaleHandler) GetLocale(w http.ResponseWriter, r *http.Request) {
	h.writeLocale(w)
}

// ChangeLanguage handles PUT /api/v1/locale
func (h *LocaleHandler) ChangeLanguage(w http.ResponseWriter, r *http.Request) {
	var req ChangeLanguageRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.language.ChangeLanguage(r.Context(), req.Language); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeLocale(w)
}

func (h *LocaleHandler) writeLocale(w http.ResponseWriter) {
	dict := h.language.Translations()
	supported := make([]languageOption, 0, len(locale.Codes))
	for _, code := range locale.Codes {
		supported = append(supported, languageOption{
			Code: code,
			Name: dict.Text("language.names."+code, code),
		})
	}

	httputil.WriteData(w, http.StatusOK, localeResponse{
		Language:     dict.Language(),
		Supported:    supported,
		Translations: dict.Tree(),
		StoreError:   storeErrorView(h.language.LastError()),
	})
}
