// Package i18n holds the message catalogs for view text and footer labels.
package i18n

import (
	"embed"
	"fmt"
	"path"

	"mvncli/internal/ui"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var locales embed.FS

// Supported lists the languages with a catalog, default first.
var Supported = []language.Tag{language.English, language.German}

// Catalog translates message IDs for one language.
type Catalog struct {
	tag       language.Tag
	localizer *goi18n.Localizer
}

// New returns a catalog for lang, a BCP 47 tag such as "de" or "de-AT".
// Unknown or unsupported languages fall back to English.
func New(lang string) (*Catalog, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := locales.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		name := path.Join("locales", e.Name())
		data, err := locales.ReadFile(name)
		if err != nil {
			return nil, err
		}
		if _, err := bundle.ParseMessageFileBytes(data, name); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", name, err)
		}
	}

	tag := Match(lang)
	return &Catalog{
		tag:       tag,
		localizer: goi18n.NewLocalizer(bundle, tag.String()),
	}, nil
}

// Match picks the supported language closest to lang.
func Match(lang string) language.Tag {
	requested, _, err := language.ParseAcceptLanguage(lang)
	if err != nil || len(requested) == 0 {
		return language.English
	}
	_, idx, conf := language.NewMatcher(Supported).Match(requested...)
	if conf == language.No {
		return language.English
	}
	return Supported[idx]
}

// Language returns the catalog's language.
func (c *Catalog) Language() language.Tag {
	return c.tag
}

// T returns the message for id. Missing messages render as the id so a
// gap in a catalog is visible rather than fatal.
func (c *Catalog) T(id string) string {
	return c.Tf(id, nil)
}

// Tf is T with template data.
func (c *Catalog) Tf(id string, data map[string]any) string {
	msg, err := c.localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil || msg == "" {
		return id
	}
	return msg
}

// Labels returns the footer hint labels in the catalog's language.
func (c *Catalog) Labels() ui.Labels {
	return ui.Labels{
		Move:   c.T("HintMove"),
		Select: c.T("HintSelect"),
		Toggle: c.T("HintToggle"),
		Run:    c.T("HintRun"),
		Back:   c.T("HintBack"),
		Quit:   c.T("HintQuit"),
	}
}
