// Package i18n contient le catalogue de traductions de la boutique
// (anglais, français, arabe) et la négociation de langue.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

type Language string

const (
	English Language = "en"
	French  Language = "fr"
	Arabic  Language = "ar"
)

const Default = English

type LanguageInfo struct {
	Code Language `json:"code"`
	Name string   `json:"name"`
	Flag string   `json:"flag"`
	RTL  bool     `json:"rtl"`
}

var languages = []LanguageInfo{
	{Code: English, Name: "English", Flag: "https://flagcdn.com/24x18/us.png"},
	{Code: French, Name: "Français", Flag: "https://flagcdn.com/24x18/fr.png"},
	{Code: Arabic, Name: "العربية", Flag: "https://flagcdn.com/24x18/sa.png", RTL: true},
}

func Languages() []LanguageInfo {
	out := make([]LanguageInfo, len(languages))
	copy(out, languages)
	return out
}

// Parse accepte "fr", "FR", "fr-TN"...
func Parse(s string) (Language, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	switch Language(s) {
	case English, French, Arabic:
		return Language(s), true
	}
	return "", false
}

func (l Language) RTL() bool {
	return l == Arabic
}

func (l Language) orDefault() Language {
	if _, ok := Parse(string(l)); ok {
		return l
	}
	return Default
}

// T retourne la chaîne traduite, ou la clé elle-même si elle est absente.
func T(lang Language, key string) string {
	entry, ok := messages[key]
	if !ok {
		return key
	}
	if s := entry.get(lang.orDefault()); s != "" {
		return s
	}
	return key
}

// Dictionary retourne toutes les chaînes d'une langue (clé → texte).
func Dictionary(lang Language) map[string]string {
	lang = lang.orDefault()
	out := make(map[string]string, len(messages))
	for key, entry := range messages {
		if s := entry.get(lang); s != "" {
			out[key] = s
		}
	}
	return out
}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.French,
	language.Arabic,
})

// Negotiate choisit la langue à partir d'un en-tête Accept-Language.
func Negotiate(acceptLanguage string) Language {
	if strings.TrimSpace(acceptLanguage) == "" {
		return Default
	}
	tag, _ := language.MatchStrings(matcher, acceptLanguage)
	base, _ := tag.Base()
	if lang, ok := Parse(base.String()); ok {
		return lang
	}
	return Default
}
