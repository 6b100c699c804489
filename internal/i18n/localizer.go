package i18n

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

//go:embed translations.json
var translationsJSON []byte

const fallbackLanguage = "english"

// Localizer resolves display strings from the embedded translation table.
// Missing languages fall back to English; a missing key is returned verbatim
// so a gap in the table degrades to something visible instead of an error.
type Localizer struct {
	language     string
	logger       zerolog.Logger
	translations map[string]map[string]string
}

// New parses the embedded translations and fixes the bot display language.
func New(language string, logger zerolog.Logger) (*Localizer, error) {
	translations := map[string]map[string]string{}
	if err := json.Unmarshal(translationsJSON, &translations); err != nil {
		return nil, fmt.Errorf("decode translations: %w", err)
	}
	if _, ok := translations[fallbackLanguage]; !ok {
		return nil, fmt.Errorf("translations missing %q table", fallbackLanguage)
	}

	if language == "" {
		language = fallbackLanguage
	}
	return &Localizer{
		language:     language,
		logger:       logger.With().Str("component", "localizer").Logger(),
		translations: translations,
	}, nil
}

// Text returns the translated string for the key, substituting {name}
// placeholders from params.
func (l *Localizer) Text(key string, params map[string]string) string {
	text, ok := l.translations[l.language][key]
	if !ok {
		if text, ok = l.translations[fallbackLanguage][key]; !ok {
			l.logger.Warn().Str("key", key).Msg("no translation for key")
			return key
		}
		l.logger.Warn().Str("key", key).Str("language", l.language).Msg("falling back to english")
	}

	for name, value := range params {
		text = strings.ReplaceAll(text, "{"+name+"}", value)
	}
	return text
}
