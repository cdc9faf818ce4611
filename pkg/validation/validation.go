package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/OldStager01/gpa-tracker/internal/prediction"
)

const (
	MaxCourseNameLength = 200
	MinCredits          = 1
	MaxCredits          = 12
	MaxSemesterLength   = 50
)

var (
	// ErrInvalidInput indicates the input failed validation
	ErrInvalidInput = errors.New("invalid input")

	// Program is a lowercase slug, e.g. software_engineering
	programRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]{1,99}$`)
)

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// SanitizeString removes potentially dangerous characters and trims whitespace
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters except newline and tab
	var builder strings.Builder
	for _, r := range input {
		if !unicode.IsControl(r) || r == '\n' || r == '\t' {
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

func ValidateCourseName(name string) error {
	name = SanitizeString(name)

	if name == "" {
		return invalid("course name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxCourseNameLength {
		return invalid("course name must not exceed %d characters", MaxCourseNameLength)
	}

	return nil
}

func ValidateCredits(credits int) error {
	if credits < MinCredits || credits > MaxCredits {
		return invalid("credits must be between %d and %d", MinCredits, MaxCredits)
	}
	return nil
}

// NormalizeGrade trims and upper-cases a letter grade so "a-" matches "A-".
func NormalizeGrade(grade string) string {
	return strings.ToUpper(strings.TrimSpace(grade))
}

// ValidateGrade accepts only letters present in the grade table.
func ValidateGrade(grade string) error {
	if grade == "" {
		return invalid("grade cannot be empty")
	}
	if !prediction.IsKnownGrade(NormalizeGrade(grade)) {
		return invalid("unknown grade %q", grade)
	}
	return nil
}

func ValidateSemester(semester string) error {
	semester = SanitizeString(semester)

	if semester == "" {
		return invalid("semester cannot be empty")
	}
	if utf8.RuneCountInString(semester) > MaxSemesterLength {
		return invalid("semester must not exceed %d characters", MaxSemesterLength)
	}

	return nil
}

// ValidateProgram allows an empty program, which means the default one.
func ValidateProgram(program string) error {
	if program == "" {
		return nil
	}
	if !programRegex.MatchString(program) {
		return invalid("program must be a lowercase slug of letters, numbers, hyphens and underscores")
	}
	return nil
}

// ValidateUsername checks if a username is valid
func ValidateUsername(username string) error {
	username = SanitizeString(username)

	if username == "" {
		return invalid("username cannot be empty")
	}
	if len(username) < 3 {
		return invalid("username must be at least 3 characters")
	}
	if len(username) > 50 {
		return invalid("username must not exceed 50 characters")
	}

	return nil
}

// ValidatePassword checks if a password meets security requirements
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return invalid("password must be at least 8 characters")
	}
	if len(password) > 72 {
		// bcrypt ignores everything past 72 bytes
		return invalid("password must not exceed 72 characters")
	}

	var (
		hasUpper   bool
		hasLower   bool
		hasNumber  bool
		hasSpecial bool
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	if !hasUpper {
		return invalid("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return invalid("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return invalid("password must contain at least one number")
	}
	if !hasSpecial {
		return invalid("password must contain at least one special character")
	}

	return nil
}
