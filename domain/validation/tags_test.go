package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lb-conn/ekaer/domain"
)

type taggedSettings struct {
	VATNumber string `validate:"required,ekaer_vat"`
	Level     string `validate:"oneof=debug info"`
}

func TestStruct(t *testing.T) {
	validate := New()

	require.NoError(t, Struct(validate, taggedSettings{VATNumber: "12345678", Level: "info"}))

	tests := []struct {
		name        string
		settings    taggedSettings
		wantField   string
		wantMessage string
	}{
		{
			name:        "missing vat number",
			settings:    taggedSettings{Level: "info"},
			wantField:   "taggedsettings.vatnumber",
			wantMessage: "is required",
		},
		{
			name:        "invalid vat number",
			settings:    taggedSettings{VATNumber: "hu-1", Level: "info"},
			wantField:   "taggedsettings.vatnumber",
			wantMessage: `"hu-1" is not a valid vat`,
		},
		{
			name:        "invalid level",
			settings:    taggedSettings{VATNumber: "12345678", Level: "trace"},
			wantField:   "taggedsettings.level",
			wantMessage: "must be one of the following: debug info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(validate, tt.settings)
			var cfgErr *domain.ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
			assert.Equal(t, tt.wantField, cfgErr.Field)
			assert.Equal(t, tt.wantMessage, cfgErr.Message)
		})
	}
}

func TestStruct_NotAStruct(t *testing.T) {
	err := Struct(New(), "plain string")
	require.Error(t, err)
	var cfgErr *domain.ConfigurationError
	assert.False(t, errors.As(err, &cfgErr))
}
