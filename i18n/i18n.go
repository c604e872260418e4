package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLocale is the code every unsupported or missing choice falls back to.
const DefaultLocale = "en"

var supported = []string{"en", "hi", "kn"}

// Store holds one translation table per supported locale. Tables are loaded
// once at startup and never mutated afterwards, so concurrent reads are safe.
type Store struct {
	tables map[string]map[string]string
}

func NewStore() (*Store, error) {
	s := &Store{tables: make(map[string]map[string]string, len(supported))}
	for _, code := range supported {
		raw, err := localeFS.ReadFile("locales/" + code + ".json")
		if err != nil {
			return nil, fmt.Errorf("load locale %s: %w", code, err)
		}
		table := make(map[string]string)
		if err := json.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", code, err)
		}
		s.tables[code] = table
	}
	return s, nil
}

func (s *Store) Supported() []string {
	out := make([]string, len(supported))
	copy(out, supported)
	return out
}

func (s *Store) IsSupported(code string) bool {
	_, ok := s.tables[code]
	return ok
}

// Normalize maps any code onto a supported one. Unsupported codes fall back
// to the default silently.
func (s *Store) Normalize(code string) string {
	if s.IsSupported(code) {
		return code
	}
	return DefaultLocale
}

// Translate returns the translation for key in the given locale. A miss in a
// non-default table falls through to the default table, then to the caller's
// fallback text, then to the key itself. It never returns an empty string.
func (s *Store) Translate(code, key, fallback string) string {
	code = s.Normalize(code)
	if v, ok := s.tables[code][key]; ok && v != "" {
		return v
	}
	if code != DefaultLocale {
		if v, ok := s.tables[DefaultLocale][key]; ok && v != "" {
			return v
		}
	}
	if fallback != "" {
		return fallback
	}
	return key
}

// Detect picks the locale for a first request: a persisted choice wins, then
// the browser's Accept-Language preference, then the default.
func (s *Store) Detect(saved, acceptLanguage string) string {
	if s.IsSupported(saved) {
		return saved
	}
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if i := strings.IndexByte(tag, '-'); i > 0 {
			tag = tag[:i]
		}
		tag = strings.ToLower(tag)
		if s.IsSupported(tag) {
			return tag
		}
	}
	return DefaultLocale
}

// DisplayName returns the native name of a locale for the language selector.
func DisplayName(code string) string {
	switch code {
	case "hi":
		return "हिंदी"
	case "kn":
		return "ಕನ್ನಡ"
	default:
		return "English"
	}
}
