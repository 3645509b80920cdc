// Package locale renders domain values for display. The domain itself only
// knows numeric weekdays (time.Weekday).
package locale

import "time"

const (
	Romanian = "ro"
	English  = "en"
)

var dayNames = map[string][7]string{
	Romanian: {"Duminică", "Luni", "Marți", "Miercuri", "Joi", "Vineri", "Sâmbătă"},
	English:  {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
}

// Supported reports whether lang has a translation table.
func Supported(lang string) bool {
	_, ok := dayNames[lang]
	return ok
}

// DayName returns the localized name of wd. Unknown languages fall back to English.
func DayName(lang string, wd time.Weekday) string {
	names, ok := dayNames[lang]
	if !ok {
		names = dayNames[English]
	}
	return names[int(wd)%7]
}

// NotAvailableMessage is the reason shown when a worker has no window on a day.
func NotAvailableMessage(lang string, wd time.Weekday) string {
	day := DayName(lang, wd)
	if lang == Romanian {
		return "Lucrătorul nu este disponibil " + day
	}
	return "worker is not available on " + day
}
