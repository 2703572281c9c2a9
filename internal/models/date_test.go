package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-09"`), &d))
	assert.Equal(t, NewDate(2025, time.March, 9), d)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-03-09"`, string(out))
}

func TestDate_UnmarshalRejectsBadInput(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"09/03/2025"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20250309`), &d))
}

func TestDate_Scan(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
	}{
		{"time", time.Date(2025, time.March, 9, 17, 30, 0, 0, time.UTC)},
		{"string", "2025-03-09"},
		{"sqlite datetime string", "2025-03-09 00:00:00+00:00"},
		{"bytes", []byte("2025-03-09")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, d.Scan(tt.value))
			assert.Equal(t, "2025-03-09", d.String())
		})
	}

	var d Date
	assert.Error(t, d.Scan(42))
}
