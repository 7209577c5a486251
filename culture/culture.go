// Package culture centralizes the engine's one external collaborator for
// locale-aware formatting. It wraps bojanz/currency for currency
// formatting, golang.org/x/text for culture-aware grouped numbers, and
// osteele/tuesday for legacy strftime-style date formatting, behind a
// single lookup keyed by BCP-47-style culture identifiers.
package culture

import (
	"time"

	"github.com/bojanz/currency"
	"github.com/osteele/tuesday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Printer returns a message.Printer for a BCP-47 culture tag, falling
// back to English for an unrecognized or empty tag.
func Printer(cultureTag string) *message.Printer {
	tag, err := language.Parse(cultureTag)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// FormatNumber renders f with culture-appropriate digit grouping and a
// fixed number of fraction digits.
func FormatNumber(cultureTag string, f float64, decimals int) string {
	p := Printer(cultureTag)
	return p.Sprintf("%v", number.Decimal(f, number.MaxFractionDigits(decimals), number.MinFractionDigits(decimals)))
}

// defaultCurrencyByRegion maps a BCP-47 region subtag to the currency code
// in common use there. Covers the cultures a host is likely to configure as
// DefaultCulture; an unlisted region falls back to USD.
var defaultCurrencyByRegion = map[string]string{
	"US": "USD",
	"GB": "GBP",
	"CA": "CAD",
	"AU": "AUD",
	"NZ": "NZD",
	"FR": "EUR",
	"DE": "EUR",
	"ES": "EUR",
	"IT": "EUR",
	"NL": "EUR",
	"IE": "EUR",
	"PT": "EUR",
	"JP": "JPY",
	"CN": "CNY",
	"IN": "INR",
	"BR": "BRL",
	"MX": "MXN",
	"CH": "CHF",
	"SE": "SEK",
	"NO": "NOK",
	"DK": "DKK",
}

// DefaultCurrencyForTag returns the currency code conventionally used in
// cultureTag's region (e.g. "fr-FR" -> "EUR"), falling back to "USD" for an
// unparseable tag or a region this table doesn't list.
func DefaultCurrencyForTag(cultureTag string) string {
	tag, err := language.Parse(cultureTag)
	if err != nil {
		return "USD"
	}
	region, conf := tag.Region()
	if conf == language.No {
		return "USD"
	}
	if code, ok := defaultCurrencyByRegion[region.String()]; ok {
		return code
	}
	return "USD"
}

// FormatCurrency renders amount (as a decimal string, e.g. "19.99") in
// currencyCode under cultureTag's display conventions.
func FormatCurrency(cultureTag, currencyCode, amount string) (string, error) {
	amt, err := currency.NewAmount(amount, currencyCode)
	if err != nil {
		return "", err
	}
	tag, err := language.Parse(cultureTag)
	if err != nil {
		tag = language.English
	}
	locale := currency.NewLocale(tag.String())
	formatter := currency.NewFormatter(locale)
	return formatter.Format(amt), nil
}

// Strftime renders t with a strftime-style format string (e.g.
// "%a, %b %d, %Y"), the legacy date-format surface bojanz/currency and
// golang.org/x/text don't cover.
func Strftime(format string, t time.Time) (string, error) {
	return tuesday.Format(format, t)
}
