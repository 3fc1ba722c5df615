package render

import (
	"errors"
	"strings"
)

// ErrMissingTranslator is reported to OnMissing handlers when a locale-aware
// render runs without a configured Translator.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a source string (or catalog key) into localized text
// for the given locale. Implementations live outside this package; pkg/i18n
// ships a YAML-catalog implementation.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides what a failed translation renders as.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// missingTranslationDefault falls back to the source string, which keeps
// untranslated pages readable in the base language.
func missingTranslationDefault(_, key string, _ []any, _ error) string {
	return key
}

// TemplateFuncsConfig configures the translation helpers injected into page
// templates.
type TemplateFuncsConfig struct {
	// FuncName customizes the translator helper name (defaults to "_", the
	// conventional gettext-style alias).
	FuncName string
	// OnMissing controls the string returned when a translation is missing.
	OnMissing MissingTranslationHandler
}

// TemplateI18nFuncs returns helper functions for injection into the template
// engine's global context. The main helper is
//
//	_(key, ...args) string
//
// which translates using the render's locale.
func TemplateI18nFuncs(locale string, t Translator, cfg TemplateFuncsConfig) map[string]any {
	name := strings.TrimSpace(cfg.FuncName)
	if name == "" {
		name = "_"
	}

	onMissing := cfg.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	return map[string]any{
		name: func(key string, args ...any) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return ""
			}
			return TranslateOrFallback(locale, key, t, onMissing, args...)
		},
		"current_locale": func() string {
			return locale
		},
	}
}

// TranslateOrFallback runs one translation through the configured translator,
// routing failures and empty results to the handler.
func TranslateOrFallback(locale, key string, t Translator, onMissing MissingTranslationHandler, args ...any) string {
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	if t == nil {
		return onMissing(locale, key, args, ErrMissingTranslator)
	}
	msg, err := t.Translate(locale, key, args...)
	if err != nil || strings.TrimSpace(msg) == "" {
		return onMissing(locale, key, args, err)
	}
	return msg
}
