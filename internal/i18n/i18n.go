// Package i18n holds the user-facing strings in Portuguese and English and
// picks the language of a request.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Lang is a supported interface language.
type Lang string

const (
	PT Lang = "pt"
	EN Lang = "en"

	// Default is used when nothing in the request matches.
	Default = PT
)

// CookieName is the cookie that stores the chosen language.
const CookieName = "lang"

// Option is one entry of the language picker.
type Option struct {
	Code  Lang   `json:"code"`
	Label string `json:"label"`
	Tag   string `json:"tag"`
}

var options = []Option{
	{Code: PT, Label: "Português (Portugal)", Tag: "pt-PT"},
	{Code: EN, Label: "English", Tag: "en"},
}

// pt-PT first so it wins ties and is the matcher fallback.
var matcher = language.NewMatcher([]language.Tag{
	language.EuropeanPortuguese,
	language.English,
})

// Languages lists the picker options.
func Languages() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

// Parse accepts a language code or tag ("pt", "pt-BR", "en-US").
func Parse(s string) (Lang, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	switch base.String() {
	case "pt":
		return PT, true
	case "en":
		return EN, true
	}
	return "", false
}

// Negotiate picks the language from the cookie value, then the Accept-Language header.
func Negotiate(cookie, acceptLanguage string) Lang {
	if lang, ok := Parse(cookie); ok {
		return lang
	}
	if acceptLanguage == "" {
		return Default
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return options[idx].Code
}

// T returns the message for key, falling back to Portuguese and then to the key itself.
func T(lang Lang, key string) string {
	if msg, ok := catalog[lang][key]; ok {
		return msg
	}
	if msg, ok := catalog[Default][key]; ok {
		return msg
	}
	return key
}

// Has reports whether key exists in the default catalog.
func Has(key string) bool {
	_, ok := catalog[Default][key]
	return ok
}
