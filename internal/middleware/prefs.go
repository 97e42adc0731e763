// Package middleware carries per-request preferences used for display
// formatting.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type ctxKey string

const (
	ctxLocale   ctxKey = "pref_locale"
	ctxCurrency ctxKey = "pref_currency"
)

// Prefs extracts locale/currency preferences (cookie > query > header) and
// stores them in context. Query-provided prefs persist in cookies for ~30
// days.
func Prefs(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale := ""
		if c, err := r.Cookie("locale"); err == nil && c.Value != "" {
			locale = c.Value
		}
		if ql := r.URL.Query().Get("locale"); ql != "" {
			locale = ql
			http.SetCookie(w, &http.Cookie{Name: "locale", Value: locale, Path: "/", MaxAge: 86400 * 30})
		}
		if locale == "" {
			locale = detectLocale(r.Header.Get("Accept-Language"))
		}

		currency := "UGX"
		if c, err := r.Cookie("currency"); err == nil && c.Value != "" {
			currency = c.Value
		}
		if qc := r.URL.Query().Get("currency"); qc != "" {
			currency = strings.ToUpper(qc)
			http.SetCookie(w, &http.Cookie{Name: "currency", Value: currency, Path: "/", MaxAge: 86400 * 30})
		}

		ctx := context.WithValue(r.Context(), ctxLocale, locale)
		ctx = context.WithValue(ctx, ctxCurrency, currency)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func detectLocale(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return "en"
	}
	return tags[0].String()
}

// LocaleFrom returns the locale preference as a language tag, falling back
// to English.
func LocaleFrom(r *http.Request) language.Tag {
	if v, ok := r.Context().Value(ctxLocale).(string); ok && v != "" {
		if tag, err := language.Parse(v); err == nil {
			return tag
		}
	}
	return language.English
}

// CurrencyFrom returns the currency preference or the shop default.
func CurrencyFrom(r *http.Request) string {
	if v, ok := r.Context().Value(ctxCurrency).(string); ok && v != "" {
		return v
	}
	return "UGX"
}
