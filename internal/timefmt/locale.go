package timefmt

import (
	"strings"
	"time"

	"github.com/goodsign/monday"
	golocale "github.com/jeandeaual/go-locale"
)

// Locale formats calendar dates for one language/region.
type Locale struct {
	Tag   string
	id    monday.Locale
	long  string
	short string
}

var locales = map[string]Locale{
	"en_US": {Tag: "en-US", id: monday.LocaleEnUS, long: "Monday, January 2, 2006", short: "1/2/2006"},
	"en_GB": {Tag: "en-GB", id: monday.LocaleEnGB, long: "Monday, 2 January 2006", short: "02/01/2006"},
	"de_DE": {Tag: "de-DE", id: monday.LocaleDeDE, long: "Monday, 2. January 2006", short: "02.01.2006"},
	"fr_FR": {Tag: "fr-FR", id: monday.LocaleFrFR, long: "Monday 2 January 2006", short: "02/01/2006"},
	"es_ES": {Tag: "es-ES", id: monday.LocaleEsES, long: "Monday, 2 de January de 2006", short: "02/01/2006"},
	"it_IT": {Tag: "it-IT", id: monday.LocaleItIT, long: "Monday 2 January 2006", short: "02/01/2006"},
	"nl_NL": {Tag: "nl-NL", id: monday.LocaleNlNL, long: "Monday 2 January 2006", short: "02-01-2006"},
	"pt_BR": {Tag: "pt-BR", id: monday.LocalePtBR, long: "Monday, 2 de January de 2006", short: "02/01/2006"},
	"ru_RU": {Tag: "ru-RU", id: monday.LocaleRuRU, long: "Monday, 2 January 2006", short: "02.01.2006"},
	"ja_JP": {Tag: "ja-JP", id: monday.LocaleJaJP, long: "2006年1月2日 Monday", short: "2006/01/02"},
}

// DefaultLocale is used when neither configuration nor the host name a supported locale.
var DefaultLocale = locales["en_US"]

// LookupLocale finds a supported locale by tag. "en-US", "en_US" and
// "en_US.UTF-8" all name the same locale.
func LookupLocale(tag string) (Locale, bool) {
	key := normalizeTag(tag)
	if key == "" {
		return Locale{}, false
	}
	if l, ok := locales[key]; ok {
		return l, true
	}
	// Language-only match, e.g. "de" or "de_AT".
	lang, _, _ := strings.Cut(key, "_")
	for _, k := range []string{"en_US", "en_GB", "de_DE", "fr_FR", "es_ES", "it_IT", "nl_NL", "pt_BR", "ru_RU", "ja_JP"} {
		if strings.HasPrefix(k, lang+"_") {
			return locales[k], true
		}
	}
	return Locale{}, false
}

// ResolveLocale picks the configured locale, then the host locale, then DefaultLocale.
func ResolveLocale(configured string) Locale {
	if l, ok := LookupLocale(configured); ok {
		return l
	}
	if host, err := golocale.GetLocale(); err == nil {
		if l, ok := LookupLocale(host); ok {
			return l
		}
	}
	return DefaultLocale
}

// LongDate renders weekday, day, month and year, e.g. "Monday, October 19, 2026".
func (l Locale) LongDate(t time.Time) string {
	if l.long == "" {
		l = DefaultLocale
	}
	return monday.Format(t, l.long, l.id)
}

// ShortDate renders a numeric date, e.g. "10/19/2026".
func (l Locale) ShortDate(t time.Time) string {
	if l.short == "" {
		l = DefaultLocale
	}
	return monday.Format(t, l.short, l.id)
}

func normalizeTag(tag string) string {
	tag = strings.TrimSpace(tag)
	if i := strings.IndexAny(tag, ".@"); i >= 0 {
		tag = tag[:i]
	}
	if tag == "" || tag == "C" || tag == "POSIX" {
		return ""
	}
	tag = strings.ReplaceAll(tag, "-", "_")
	lang, region, found := strings.Cut(tag, "_")
	if !found {
		return strings.ToLower(lang)
	}
	return strings.ToLower(lang) + "_" + strings.ToUpper(region)
}
