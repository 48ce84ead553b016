package photo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fotofolio/service/internal/photo"
)

func TestNormalizeTakenAt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"iso date", "2024-06-12", "2024-06-12", false},
		{"european date", "12/06/2024", "2024-06-12", false},
		{"leap day accepted", "29/02/2024", "2024-02-29", false},
		{"impossible day rejected", "31/02/2024", "", true},
		{"impossible month rejected", "2024-13-01", "", true},
		{"rfc3339 timestamp", "2024-06-12T10:30:00Z", "2024-06-12T10:30:00Z", false},
		{"rfc3339 with offset", "2024-06-12T10:30:00+02:00", "2024-06-12T10:30:00+02:00", false},
		{"us-style rejected", "06-12-2024", "", true},
		{"free text rejected", "last summer", "", true},
		{"empty rejected", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := photo.NormalizeTakenAt(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "YYYY-MM-DD", "error should carry a format hint")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
