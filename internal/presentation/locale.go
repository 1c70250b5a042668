package presentation

import "time"

const (
	LocalePolish  = "pl"
	LocaleEnglish = "en"
)

type locale struct {
	today         string
	weekdays      [7]string
	feelsLike     string
	rangeText     string
	humidity      string
	wind          string
	windWithGusts string
}

// Weekday names are indexed by time.Weekday, Sunday first.
var locales = map[string]locale{
	LocalePolish: {
		today:         "dziś",
		weekdays:      [7]string{"niedziela", "poniedziałek", "wtorek", "środa", "czwartek", "piątek", "sobota"},
		feelsLike:     "Temperatura odczuwalna: %s",
		rangeText:     "Od %s do %s",
		humidity:      "wilgotność %d%%, ciśnienie %d hPa",
		wind:          "wiatr %s",
		windWithGusts: "wiatr %s, w porywach do %s",
	},
	LocaleEnglish: {
		today:         "today",
		weekdays:      [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		feelsLike:     "Feels like: %s",
		rangeText:     "%s to %s",
		humidity:      "humidity %d%%, pressure %d hPa",
		wind:          "wind %s",
		windWithGusts: "wind %s, gusts up to %s",
	},
}

func (l locale) weekday(d time.Weekday) string {
	return l.weekdays[d]
}

// SupportedLocale reports whether name has label tables.
func SupportedLocale(name string) bool {
	_, ok := locales[name]
	return ok
}
