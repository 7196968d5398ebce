package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agrox/fieldops/internal/dto"
	"github.com/agrox/fieldops/internal/http/handlers/common"
	"github.com/agrox/fieldops/internal/http/middleware"
	"github.com/agrox/fieldops/internal/i18n"
	"github.com/agrox/fieldops/internal/validation"
)

// languageCookieAge keeps the choice for a year.
const languageCookieAge = 365 * 24 * 60 * 60

type LanguageHandler struct {
	secureCookie bool
}

func NewLanguageHandler(secureCookie bool) *LanguageHandler {
	return &LanguageHandler{secureCookie: secureCookie}
}

// ListLanguages handles GET /api/languages.
func (h *LanguageHandler) ListLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, dto.LanguageResponse{
		Current: middleware.Lang(c),
		Options: i18n.Languages(),
	})
}

// SetLanguage handles PUT /api/language and stores the choice in the lang cookie.
func (h *LanguageHandler) SetLanguage(c *gin.Context) {
	var req dto.LanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, i18n.KeyLanguageInvalid)
		return
	}

	lang, err := validation.Language(req.Language)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(i18n.CookieName, string(lang), languageCookieAge, "/", "", h.secureCookie, false)
	c.Set(middleware.ContextLangKey, lang)

	c.JSON(http.StatusOK, dto.LanguageResponse{
		Current: lang,
		Options: i18n.Languages(),
	})
}
