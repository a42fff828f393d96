package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateIdentificacionFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"minimum length", "1234", true},
		{"maximum length", "12345678901", true},
		{"typical id", "12345", true},
		{"too short", "123", false},
		{"too long", "123456789012", false},
		{"letters", "12a45", false},
		{"empty", "", false},
		{"spaces", "123 45", false},
		{"negative", "-1234", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateIdentificacionFormat(tt.input)
			assert.Equal(t, tt.want, res.OK)
			if !tt.want {
				assert.Equal(t, msgIdentificacionFormat, res.Message)
			}
		})
	}
}

func TestValidateNombre(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple name", "Maria Lopez", true},
		{"accented name", "José Muñoz Peña", true},
		{"single letter", "A", true},
		{"hundred letters", string(make100Letters()), true},
		{"digits", "Maria2", false},
		{"empty", "", false},
		{"punctuation", "Maria-Lopez", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateNombre(tt.input)
			assert.Equal(t, tt.want, res.OK)
		})
	}
}

func make100Letters() []rune {
	runes := make([]rune, 100)
	for i := range runes {
		runes[i] = 'a'
	}
	return runes
}

func TestValidateNombreTooLong(t *testing.T) {
	long := make([]rune, 101)
	for i := range long {
		long[i] = 'a'
	}
	res := ValidateNombre(string(long))
	assert.False(t, res.OK)
}

func TestValidateTelefono(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"starts with 3", "3001234567", true},
		{"starts with 6", "6012345678", true},
		{"starts with 5", "5001234567", false},
		{"too short", "300123456", false},
		{"too long", "30012345678", false},
		{"letters", "300123456a", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateTelefono(tt.input)
			assert.Equal(t, tt.want, res.OK)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple", "a@b.com", true},
		{"subdomain", "user@mail.example.co", true},
		{"missing at", "ab.com", false},
		{"missing domain dot", "a@bcom", false},
		{"double at", "a@@b.com", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateEmail(tt.input)
			assert.Equal(t, tt.want, res.OK)
		})
	}
}
