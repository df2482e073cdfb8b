package vocabulary

import "strings"

// Language selects which natural language's vocabulary to fetch. Values match
// the `language` property stored on Term nodes.
type Language string

const (
	English    Language = "EN"
	German     Language = "DE"
	French     Language = "FR"
	Spanish    Language = "ES"
	Italian    Language = "IT"
	Portuguese Language = "PT"
	Japanese   Language = "JA"
	Chinese    Language = "ZH"
	Korean     Language = "KO"
	Russian    Language = "RU"
)

var languageNames = map[Language]string{
	English:    "English",
	German:     "German",
	French:     "French",
	Spanish:    "Spanish",
	Italian:    "Italian",
	Portuguese: "Portuguese",
	Japanese:   "Japanese",
	Chinese:    "Chinese",
	Korean:     "Korean",
	Russian:    "Russian",
}

// Languages returns every recognized language in declaration order
func Languages() []Language {
	return []Language{English, German, French, Spanish, Italian, Portuguese, Japanese, Chinese, Korean, Russian}
}

// ParseLanguage normalizes user input into a Language. The second result
// reports whether the code is recognized; unrecognized codes are still
// returned so callers may query them and get an empty vocabulary.
func ParseLanguage(s string) (Language, bool) {
	lang := Language(strings.ToUpper(strings.TrimSpace(s)))
	return lang, lang.Known()
}

// Known reports whether l is one of the recognized languages
func (l Language) Known() bool {
	_, ok := languageNames[l]
	return ok
}

// Name returns the display name, or the raw code if unrecognized
func (l Language) Name() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return string(l)
}

func (l Language) String() string {
	return string(l)
}
