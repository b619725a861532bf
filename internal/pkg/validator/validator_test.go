package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"guru@madrasah.sch.id", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"))
	assert.True(t, IsValidUUID("0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B"))
	assert.False(t, IsValidUUID("123e4567-e89b-12d3-a456-426614174000"))
	assert.False(t, IsValidUUID(""))
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-02-29", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidNIP(t *testing.T) {
	assert.True(t, IsValidNIP("198503302009012001"))
	assert.True(t, IsValidNIP("19850330 200901 2 001"))
	assert.False(t, IsValidNIP("12345"))
	assert.False(t, IsValidNIP("19850330200901200a"))
	assert.False(t, IsValidNIP(""))
}

func TestIsInSlice(t *testing.T) {
	assert.True(t, IsInSlice("b", []string{"a", "b"}))
	assert.False(t, IsInSlice("c", []string{"a", "b"}))
	assert.False(t, IsInSlice("a", nil))
}

func TestIsNonNegative(t *testing.T) {
	assert.True(t, IsNonNegative(decimal.Zero))
	assert.True(t, IsNonNegative(decimal.RequireFromString("1.5")))
	assert.False(t, IsNonNegative(decimal.RequireFromString("-0.5")))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "date", Message: "date is required"},
		{Field: "unit", Message: "unit is required"},
	}
	assert.Equal(t, "date: date is required; unit: unit is required", errs.Error())
	assert.Equal(t, map[string]string{"date": "date is required", "unit": "unit is required"}, errs.ToMap())
}
