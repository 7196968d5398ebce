package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/agrox/fieldops/internal/i18n"
)

// ContextLangKey holds the negotiated i18n.Lang.
const ContextLangKey = "lang"

// Language negotiates the response language from the lang cookie and
// Accept-Language.
func Language() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(i18n.CookieName)
		lang := i18n.Negotiate(cookie, c.GetHeader("Accept-Language"))

		c.Set(ContextLangKey, lang)
		c.Header("Content-Language", string(lang))
		c.Next()
	}
}

// Lang returns the request language, Default when Language did not run.
func Lang(c *gin.Context) i18n.Lang {
	if raw, ok := c.Get(ContextLangKey); ok {
		if lang, ok := raw.(i18n.Lang); ok {
			return lang
		}
	}
	return i18n.Default
}
