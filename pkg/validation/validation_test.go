package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Data Structures", SanitizeString("  Data\x00 Structures\x07 "))
	assert.Equal(t, "line\nbreak", SanitizeString("line\nbreak"))
}

func TestValidateCourseFields(t *testing.T) {
	tests := []struct {
		name      string
		validate  func() error
		expectErr bool
	}{
		{"valid name", func() error { return ValidateCourseName("Introduction to AI") }, false},
		{"blank name", func() error { return ValidateCourseName("   ") }, true},
		{"name at limit", func() error { return ValidateCourseName(strings.Repeat("é", 200)) }, false},
		{"name too long", func() error { return ValidateCourseName(strings.Repeat("a", 201)) }, true},
		{"min credits", func() error { return ValidateCredits(1) }, false},
		{"max credits", func() error { return ValidateCredits(12) }, false},
		{"zero credits", func() error { return ValidateCredits(0) }, true},
		{"too many credits", func() error { return ValidateCredits(13) }, true},
		{"known grade", func() error { return ValidateGrade("A-") }, false},
		{"lowercase grade", func() error { return ValidateGrade(" b+ ") }, false},
		{"D+ grade", func() error { return ValidateGrade("D+") }, false},
		{"unknown grade", func() error { return ValidateGrade("E") }, true},
		{"empty grade", func() error { return ValidateGrade("") }, true},
		{"semester", func() error { return ValidateSemester("Semester 1") }, false},
		{"empty semester", func() error { return ValidateSemester("") }, true},
		{"long semester", func() error { return ValidateSemester(strings.Repeat("s", 51)) }, true},
		{"empty program", func() error { return ValidateProgram("") }, false},
		{"slug program", func() error { return ValidateProgram("software_engineering") }, false},
		{"bad program", func() error { return ValidateProgram("Software Engineering") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validate()
			if tt.expectErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeGrade(t *testing.T) {
	assert.Equal(t, "A-", NormalizeGrade(" a- "))
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("student_1"))
	assert.ErrorIs(t, ValidateUsername("ab"), ErrInvalidInput)
	assert.ErrorIs(t, ValidateUsername(strings.Repeat("u", 51)), ErrInvalidInput)
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password  string
		expectErr bool
	}{
		{"Str0ng!pass", false},
		{"short1!", true},
		{"nouppercase1!", true},
		{"NOLOWERCASE1!", true},
		{"NoNumbers!!", true},
		{"NoSpecial123", true},
		{"A1!" + strings.Repeat("a", 70), true},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
