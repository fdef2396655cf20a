package client

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fitbook/fitbook/internal/errors"
)

// Constraint messages shown when a field value is rejected.
const (
	MessageName         = "Names should only contain alphanumeric characters and spaces, and it should not be blank"
	MessagePhone        = "Phone numbers should only contain numbers, and it should be at least 3 digits long"
	MessageEmail        = "Emails should be of the format local-part@domain. The local-part should only contain alphanumeric characters and +_.- and may not start or end with a special character. The domain is made of labels separated by periods; each label starts and ends with an alphanumeric character, may contain hyphens, and the last label is at least 2 characters long"
	MessageAddress      = "Addresses can take any value, but should not start with whitespace"
	MessageTag          = "Tag names should be alphanumeric"
	MessageWeight       = "Weight should be a number greater than 0 and at most 1000 (kg)"
	MessageHeight       = "Height should be a number greater than 0 and at most 300 (cm)"
	MessageExerciseName = "Exercise names should only contain alphanumeric characters and spaces, and it should not be blank"
	MessageSets         = "Sets should be a whole number between 1 and 1000"
	MessageReps         = "Reps should be a whole number between 1 and 1000"
	MessageRest         = "Rest should be a whole number of seconds between 0 and 3600"
)

// Numeric limits.
const (
	MaxWeight = 1000.0
	MaxHeight = 300.0
	MaxSets   = 1000
	MaxReps   = 1000
	MaxRest   = 3600
)

var (
	nameRegex  = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ]*$`)
	phoneRegex = regexp.MustCompile(`^[0-9]{3,}$`)
	tagRegex   = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	emailRegex = regexp.MustCompile(
		`^[A-Za-z0-9]+([+_.-][A-Za-z0-9]+)*@` +
			`([A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?\.)*` +
			`[A-Za-z0-9][A-Za-z0-9-]*[A-Za-z0-9]$`)
)

// ValidateName checks a client name.
func ValidateName(s string) error {
	if !nameRegex.MatchString(s) {
		return errors.NewInvalidValue("name", MessageName)
	}
	return nil
}

// ValidatePhone checks a phone number.
func ValidatePhone(s string) error {
	if !phoneRegex.MatchString(s) {
		return errors.NewInvalidValue("phone", MessagePhone)
	}
	return nil
}

// ValidateEmail checks an email address. Empty means "not provided" and passes.
func ValidateEmail(s string) error {
	if s == "" {
		return nil
	}
	if !emailRegex.MatchString(s) {
		return errors.NewInvalidValue("email", MessageEmail)
	}
	return nil
}

// ValidateAddress checks an address. Empty means "not provided" and passes.
func ValidateAddress(s string) error {
	if s == "" {
		return nil
	}
	r, _ := utf8.DecodeRuneInString(s)
	if unicode.IsSpace(r) {
		return errors.NewInvalidValue("address", MessageAddress)
	}
	return nil
}

// ValidateTag checks a single tag name.
func ValidateTag(s string) error {
	if !tagRegex.MatchString(s) {
		return errors.NewInvalidValue("tag", MessageTag)
	}
	return nil
}

// ValidateExerciseName checks an exercise name.
func ValidateExerciseName(s string) error {
	if !nameRegex.MatchString(strings.TrimSpace(s)) {
		return errors.NewInvalidValue("exercise", MessageExerciseName)
	}
	return nil
}

// ParseWeight parses a weight in kilograms within (0, MaxWeight].
func ParseWeight(raw string) (float64, error) {
	v, ok := parseFloat(raw)
	if !ok {
		return 0, errors.NewInvalidValue("weight", MessageWeight)
	}
	if err := CheckWeight(v); err != nil {
		return 0, err
	}
	return v, nil
}

// CheckWeight checks a weight value already in numeric form.
func CheckWeight(v float64) error {
	if v <= 0 || v > MaxWeight {
		return errors.NewInvalidValue("weight", MessageWeight)
	}
	return nil
}

// ParseHeight parses a height in centimetres within (0, MaxHeight].
func ParseHeight(raw string) (float64, error) {
	v, ok := parseFloat(raw)
	if !ok {
		return 0, errors.NewInvalidValue("height", MessageHeight)
	}
	if err := CheckHeight(v); err != nil {
		return 0, err
	}
	return v, nil
}

// CheckHeight checks a height value already in numeric form.
func CheckHeight(v float64) error {
	if v <= 0 || v > MaxHeight {
		return errors.NewInvalidValue("height", MessageHeight)
	}
	return nil
}

// ParseSets parses a set count within [1, MaxSets].
func ParseSets(raw string) (int, error) {
	return parseBoundedInt(raw, 1, MaxSets, "sets", MessageSets)
}

// ParseReps parses a repetition count within [1, MaxReps].
func ParseReps(raw string) (int, error) {
	return parseBoundedInt(raw, 1, MaxReps, "reps", MessageReps)
}

// ParseRest parses a rest period in seconds within [0, MaxRest].
func ParseRest(raw string) (int, error) {
	return parseBoundedInt(raw, 0, MaxRest, "rest", MessageRest)
}

// IsZeroMeasurement reports whether raw is blank or parses to exactly zero.
// Zero is the removal sentinel for weight and height edits.
func IsZeroMeasurement(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return true
	}
	v, ok := parseFloat(raw)
	return ok && v == 0
}

func parseFloat(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseBoundedInt(raw string, lo, hi int, field, msg string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < lo || v > hi {
		return 0, errors.NewInvalidValue(field, msg)
	}
	return v, nil
}
