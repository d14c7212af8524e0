package core_test

import (
	"errors"
	"fmt"
	"testing"

	"choconati/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"6.99", "6.99", false},
		{" 6,99 ", "6.99", false},
		{"0", "0", false},
		{"-2", "-2", false},
		{"", "", true},
		{"abc", "", true},
		{"1,000.50", "", true},
	}

	for _, tt := range tests {
		got, err := core.ParseAmount("packagePrice", tt.raw)
		if tt.wantErr {
			assert.True(t, core.IsValidation(err), "ParseAmount(%q) should fail validation", tt.raw)
			continue
		}
		require.NoError(t, err, "ParseAmount(%q)", tt.raw)
		assert.True(t, got.Equal(d(tt.want)), "ParseAmount(%q) = %s", tt.raw, got)
	}
}

func TestParseAmount_ReportsField(t *testing.T) {
	_, err := core.ParseAmount("currentStock", "dez")
	require.Error(t, err)

	var verr *core.ValidationError
	require.True(t, errors.As(fmt.Errorf("stock: %w", err), &verr))
	assert.Equal(t, "currentStock", verr.Field)
}
