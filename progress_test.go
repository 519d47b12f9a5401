package pontoon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsDerived(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		stats        Stats
		wantMissing  int
		wantComplete bool
	}{
		{
			name:         "empty",
			wantComplete: true,
		},
		{
			name: "partially translated",
			stats: Stats{
				TotalStrings:         100,
				ApprovedStrings:      60,
				PretranslatedStrings: 10,
				StringsWithErrors:    5,
				StringsWithWarnings:  5,
				UnreviewedStrings:    12,
			},
			wantMissing: 20,
		},
		{
			name: "warnings count as complete",
			stats: Stats{
				TotalStrings:         10,
				ApprovedStrings:      7,
				PretranslatedStrings: 1,
				StringsWithWarnings:  2,
			},
			wantMissing:  0,
			wantComplete: true,
		},
		{
			name: "errors do not count as complete",
			stats: Stats{
				TotalStrings:      10,
				ApprovedStrings:   9,
				StringsWithErrors: 1,
			},
			wantMissing: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMissing, tt.stats.MissingStrings())
			assert.Equal(t, tt.wantComplete, tt.stats.Complete())
		})
	}
}
