package conversationService

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "02-01-2006"

var (
	datePattern      = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2,4})$`)
	dateSeparators   = strings.NewReplacer(".", "/", "-", "/")
	allowedCities    = []string{"Delhi", "Noida", "Greater Noida", "Gurugram", "Ghaziabad"}
	minTimeLength    = 2
	minPickupLength  = 3
	minDetailsLength = 2
)

// ParseFutureDate accepts DD-MM-YYYY, DD/MM/YYYY and DD.MM.YYYY (two digit
// years count from 2000) and requires a real calendar day after today.
func ParseFutureDate(input string, now time.Time) (time.Time, bool) {
	m := datePattern.FindStringSubmatch(dateSeparators.Replace(strings.TrimSpace(input)))
	if m == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 100 {
		year += 2000
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
	// time.Date normalizes overflow, so 31-02 comes back as a March date
	if date.Day() != day || int(date.Month()) != month || date.Year() != year {
		return time.Time{}, false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !date.After(today) {
		return time.Time{}, false
	}
	return date, true
}

// MatchCity returns the canonical city name for a case-insensitive exact match.
func MatchCity(input string) (string, bool) {
	candidate := strings.TrimSpace(input)
	for _, city := range allowedCities {
		if strings.EqualFold(candidate, city) {
			return city, true
		}
	}
	return "", false
}

func hasMinLength(input string, n int) bool {
	return len([]rune(strings.TrimSpace(input))) >= n
}
