// Package i18n prints the user-facing lines of the CLI in English or
// Russian through golang.org/x/text/message.
//
//	p := i18n.NewPrinter(os.Stdout, "ru")
//	p.Println(i18n.MsgChunkCreated, 1, 4) // Создана часть 1/4
package i18n

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported lists the locales with a catalog, default first.
var Supported = []language.Tag{language.English, language.Russian}

var (
	matcher = language.NewMatcher(Supported)
	cat     = newCatalog()
)

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range russian {
		if err := b.SetString(language.Russian, key, msg); err != nil {
			panic(fmt.Sprintf("i18n: invalid message %q: %v", key, err))
		}
	}
	return b
}

// Match returns the supported tag closest to locale. Unknown or malformed
// locales fall back to English.
func Match(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.English
	}
	return Supported[idx]
}

// Printer writes localized lines to w.
type Printer struct {
	w   io.Writer
	p   *message.Printer
	tag language.Tag
}

// NewPrinter creates a Printer for locale writing to w.
func NewPrinter(w io.Writer, locale string) *Printer {
	tag := Match(locale)
	return &Printer{
		w:   w,
		p:   message.NewPrinter(tag, message.Catalog(cat)),
		tag: tag,
	}
}

// Language returns the tag the printer resolved to.
func (p *Printer) Language() language.Tag { return p.tag }

// Sprintf formats the message for key.
func (p *Printer) Sprintf(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}

// Println writes the message for key followed by a newline.
func (p *Printer) Println(key string, args ...any) {
	fmt.Fprintln(p.w, p.p.Sprintf(key, args...))
}

// Print writes the message for key without a newline, as for prompts.
func (p *Printer) Print(key string, args ...any) {
	fmt.Fprint(p.w, p.p.Sprintf(key, args...))
}
