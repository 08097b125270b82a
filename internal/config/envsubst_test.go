package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("MS_TEST_HOST", "plex.local")
	t.Setenv("MS_TEST_EMPTY", "")

	// MS_TEST_UNSET is intentionally never set. t.Setenv cannot truly
	// unset a variable, so missing-var cases use names that never exist.
	tests := []struct {
		name        string
		in          string
		want        string
		wantMissing []string
	}{
		{
			name: "simple substitution",
			in:   "host = ${MS_TEST_HOST}",
			want: "host = plex.local",
		},
		{
			name:        "missing variable left untouched",
			in:          "host = ${MS_TEST_UNSET}",
			want:        "host = ${MS_TEST_UNSET}",
			wantMissing: []string{"MS_TEST_UNSET"},
		},
		{
			name: "empty variable falls back to default",
			in:   "host = ${MS_TEST_EMPTY:-localhost}",
			want: "host = localhost",
		},
		{
			name: "set variable beats default",
			in:   "host = ${MS_TEST_HOST:-localhost}",
			want: "host = plex.local",
		},
		{
			name:        "required variable reports its message",
			in:          "key = ${MS_TEST_EMPTY:?API key is required}",
			want:        "key = ${MS_TEST_EMPTY:?API key is required}",
			wantMissing: []string{"MS_TEST_EMPTY: API key is required"},
		},
		{
			name:        "mixed references in one string",
			in:          "${MS_TEST_HOST} ${MS_TEST_UNSET} ${MS_TEST_EMPTY:-three}",
			want:        "plex.local ${MS_TEST_UNSET} three",
			wantMissing: []string{"MS_TEST_UNSET"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, missing := substituteEnvVars(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantMissing, missing)
		})
	}
}
