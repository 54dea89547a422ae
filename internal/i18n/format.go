package i18n

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printers = map[string]*message.Printer{
	"fr": message.NewPrinter(language.French),
	"en": message.NewPrinter(language.English),
}

func printer(lang string) *message.Printer {
	if p, ok := printers[lang]; ok {
		return p
	}
	return printers[DefaultLang]
}

// Price formats a sale price with locale digit grouping, e.g. 15999.0
// becomes "15 999 €" in French.
func Price(lang string, amount float64) string {
	return printer(lang).Sprintf("%.0f €", amount)
}

// DailyRate formats a rental rate, e.g. "49 €/jour".
func DailyRate(lang string, amount float64) string {
	suffix := map[string]string{"fr": "/jour", "en": "/day"}[lang]
	if suffix == "" {
		suffix = "/jour"
	}
	return printer(lang).Sprintf("%.0f €", amount) + suffix
}

// Mileage formats a kilometer count, e.g. "45 000 km".
func Mileage(lang string, km int) string {
	return printer(lang).Sprintf("%d km", km)
}

var frMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// Date renders an ISO date string ("2026-09-01" or RFC 3339) in long
// form, e.g. "1 septembre 2026". Unparseable input comes back verbatim.
func Date(lang, iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, iso); err != nil {
			return iso
		}
	}
	if lang == "en" {
		return t.Format("January 2, 2006")
	}
	return fmt.Sprintf("%d %s %d", t.Day(), frMonths[t.Month()-1], t.Year())
}
