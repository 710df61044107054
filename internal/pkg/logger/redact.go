// Package logger is the process-wide structured logger. It wraps zap and
// masks email addresses in logged values unless redaction is switched off.
package logger

import "strings"

// RedactEmail keeps the first two characters of the local part and the
// domain: "marija@example.com" → "ma***@example.com". Local parts of two
// characters or fewer are masked entirely.
func RedactEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || strings.Count(email, "@") != 1 {
		return "***@***"
	}
	local, domain := []rune(email[:at]), email[at+1:]
	if len(local) > 2 {
		return string(local[:2]) + "***@" + domain
	}
	return "***@" + domain
}
