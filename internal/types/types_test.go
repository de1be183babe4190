package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeverity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Severity
		wantErr bool
	}{
		{"error", SeverityError, false},
		{"WARNING", SeverityWarning, false},
		{" warn ", SeverityWarning, false},
		{"Info", SeverityInfo, false},
		{"off", SeverityOff, false},
		{"fatal", 0, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSeverity(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeverity_JSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(Issue{Rule: "r", Severity: SeverityWarning})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"Severity":"WARNING"`)

	var rule ConfigRule
	require.NoError(t, json.Unmarshal([]byte(`{"severity":"info"}`), &rule))
	assert.Equal(t, SeverityInfo, rule.Severity)
	assert.Error(t, json.Unmarshal([]byte(`{"severity":"loud"}`), &rule))
}
