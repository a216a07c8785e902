package chronotext

import (
	"fmt"
	"time"

	"github.com/goodsign/monday"
)

// Millis returns a signed Unix-millisecond instant usable for total
// ordering across the BCE/CE boundary.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// Display renders a parsed date for presentation. BCE dates reconstruct
// "[Month] [Day,] {year} BCE" from the literal author-written year, never
// the converted internal year. CE dates use locale-aware medium formatting
// with the weekday.
func Display(pd ParsedDate, locale string) string {
	if !pd.Valid() {
		return ""
	}
	start := *pd.Start

	if pd.IsBCE {
		switch pd.Precision {
		case PrecisionDay, PrecisionTime:
			return fmt.Sprintf("%s %d, %d BCE", start.Month(), start.Day(), pd.OriginalYear)
		case PrecisionMonth:
			return fmt.Sprintf("%s %d BCE", start.Month(), pd.OriginalYear)
		default:
			return fmt.Sprintf("%d BCE", pd.OriginalYear)
		}
	}

	return monday.Format(start, "Monday, Jan 2, 2006", displayLocale(locale))
}

func displayLocale(locale string) monday.Locale {
	switch locale {
	case "", "en-US", "en":
		return monday.LocaleEnUS
	case "en-GB":
		return monday.LocaleEnGB
	case "fr-FR", "fr":
		return monday.LocaleFrFR
	case "de-DE", "de":
		return monday.LocaleDeDE
	case "es-ES", "es":
		return monday.LocaleEsES
	case "pt-BR":
		return monday.LocalePtBR
	case "it-IT", "it":
		return monday.LocaleItIT
	case "ja-JP", "ja":
		return monday.LocaleJaJP
	case "ru-RU", "ru":
		return monday.LocaleRuRU
	default:
		return monday.LocaleEnUS
	}
}
