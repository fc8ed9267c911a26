package respond

import (
	"regexp"
)

var (
	// bearer tokens quoted in upstream errors
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9\-_=]+\.[A-Za-z0-9\-_=]+\.?[A-Za-z0-9\-_.+/=]*`)

	// password inside a URL style DSN
	dbPasswordPattern = regexp.MustCompile(`://([^:/@]+):([^@]+)@`)

	// password in a key=value DSN
	kvPasswordPattern = regexp.MustCompile(`(?i)password=\S+`)
)

// SanitizeError returns the error message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = kvPasswordPattern.ReplaceAllString(msg, "password=****")
	return msg
}
