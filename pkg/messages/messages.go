// Package messages resolves the stable error codes carried by field
// errors into human readable text, per language, from TOML catalogs.
package messages

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"kyri56xcaesar/teamdash/internal/schema"
)

const (
	LanguageEn = "en"
	LanguageFr = "fr"
)

type Catalog struct {
	bundle      *i18n.Bundle
	defaultLang string
}

// NewCatalog loads every *.toml message file found in dir. Missing or
// unreadable catalogs are not fatal: unresolved codes fall back to the
// code itself.
func NewCatalog(dir, defaultLang string) *Catalog {
	if defaultLang == "" {
		defaultLang = LanguageEn
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("failed to list the messages folder %s: %v", dir, err)

		return &Catalog{bundle: bundle, defaultLang: defaultLang}
	}

	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".toml") {
			continue
		}
		if _, err := bundle.LoadMessageFile(filepath.Join(dir, f.Name())); err != nil {
			log.Printf("failed to load message file %s: %v", f.Name(), err)
		}
	}

	return &Catalog{bundle: bundle, defaultLang: defaultLang}
}

// Localize resolves one error code for the given language.
func (c *Catalog) Localize(lang, code, field string) string {
	localizer := i18n.NewLocalizer(c.bundle, lang, c.defaultLang)

	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    code,
		TemplateData: map[string]string{"Field": field},
	})
	if err != nil {
		return code
	}

	return msg
}

// Fill replaces the message of every field error with its localized
// text, leaving the stable codes untouched.
func (c *Catalog) Fill(lang string, errs []schema.FieldError) []schema.FieldError {
	out := make([]schema.FieldError, len(errs))
	for i, e := range errs {
		e.Message = c.Localize(lang, e.Code, e.Field)
		out[i] = e
	}

	return out
}
