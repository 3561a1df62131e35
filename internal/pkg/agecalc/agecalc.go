package agecalc

import "time"

// DateLayout is the wire format for dates of birth
const DateLayout = "2006-01-02"

// AgeAt returns the whole years between dob and now, decrementing by one
// when now's month/day falls before the birthday in the year.
func AgeAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()

	m := int(now.Month()) - int(dob.Month())
	if m < 0 || (m == 0 && now.Day() < dob.Day()) {
		age--
	}

	return age
}

// Age returns the current age for the given date of birth
func Age(dob time.Time) int {
	return AgeAt(dob, time.Now())
}

// ParseDOB parses a YYYY-MM-DD date of birth
func ParseDOB(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}
