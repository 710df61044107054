package astro

import "github.com/zvezde365/zvezde-api/internal/pkg/logger"

// DefaultSign is returned by GetZodiacSign when no range matches.
const DefaultSign = Aries

// ResolveSign finds the sun sign for a calendar day. The second return is
// false when no range matched, which only happens for invalid dates.
func ResolveSign(month, day int) (SignID, bool) {
	md := MonthDay{Month: month, Day: day}
	for _, s := range zodiacSigns {
		if s.Start.Month > s.End.Month {
			if (month == s.Start.Month && day >= s.Start.Day) ||
				(month == s.End.Month && day <= s.End.Day) {
				return s.ID, true
			}
			continue
		}
		if !md.before(s.Start) && !s.End.before(md) {
			return s.ID, true
		}
	}
	return "", false
}

// GetZodiacSign is ResolveSign with the default-sign fallback applied.
// A fallback is logged because it means the caller passed an impossible date.
func GetZodiacSign(month, day int) SignID {
	if id, ok := ResolveSign(month, day); ok {
		return id
	}
	logger.Warn("zodiac lookup fell back to default sign",
		"month", month, "day", day, "default", DefaultSign)
	return DefaultSign
}
