// Package i18n traduce los textos visibles al usuario con golang.org/x/text.
// Las claves son los textos en inglés; un texto sin traducción se devuelve tal cual.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Translator resuelve el idioma de cada petición y entrega un Localizer.
type Translator struct {
	supported []language.Tag
	matcher   language.Matcher
	catalog   *catalog.Builder
}

// New construye el traductor con defaultLang como idioma de respaldo.
func New(defaultLang string) (*Translator, error) {
	def, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("idioma por defecto inválido %q: %w", defaultLang, err)
	}
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, entries := range translations {
		for key, msg := range entries {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("catálogo %s: %w", tag, err)
			}
		}
	}

	// El primer tag es el que el matcher devuelve cuando nada coincide.
	supported := []language.Tag{def}
	for _, t := range []language.Tag{language.English, language.German, language.Spanish} {
		if t != def {
			supported = append(supported, t)
		}
	}
	return &Translator{
		supported: supported,
		matcher:   language.NewMatcher(supported),
		catalog:   b,
	}, nil
}

// For devuelve el Localizer para un encabezado Accept-Language (vacío = idioma por defecto).
func (t *Translator) For(acceptLanguage string) *Localizer {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return t.localizer(t.supported[0])
	}
	_, idx, _ := t.matcher.Match(tags...)
	return t.localizer(t.supported[idx])
}

// Default Localizer del idioma por defecto.
func (t *Translator) Default() *Localizer {
	return t.localizer(t.supported[0])
}

func (t *Translator) localizer(tag language.Tag) *Localizer {
	return &Localizer{tag: tag, printer: message.NewPrinter(tag, message.Catalog(t.catalog))}
}

// Localizer traduce claves a un idioma concreto. Implementa domain.Translator.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// T traduce key y aplica args como formato (estilo fmt).
func (l *Localizer) T(key string, args ...any) string {
	if key == "" {
		return ""
	}
	return l.printer.Sprintf(key, args...)
}

// Language tag BCP 47 resuelto (ej. "es").
func (l *Localizer) Language() string { return l.tag.String() }
