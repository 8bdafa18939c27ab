package portfolio

import "strings"

// Language is the language a PostContent is written in.
type Language string

const (
	LanguageNone    Language = ""
	LanguageEnglish Language = "eng"
	LanguageSpanish Language = "esp"
)

// Languages lists every accepted language.
func Languages() []Language {
	return []Language{LanguageEnglish, LanguageSpanish}
}

// IsValid reports whether l is one of Languages.
func (l Language) IsValid() bool {
	for _, accepted := range Languages() {
		if l == accepted {
			return true
		}
	}
	return false
}

// AcceptedLanguages renders Languages as "eng, esp".
func AcceptedLanguages() string {
	names := make([]string, 0, len(Languages()))
	for _, l := range Languages() {
		names = append(names, string(l))
	}
	return strings.Join(names, ", ")
}
