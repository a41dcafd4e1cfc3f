package cli

import (
	"strings"
	"testing"

	"github.com/petdoor-tools/doorsched/internal/config"
)

func TestColorResetHintNamesDefault(t *testing.T) {
	tests := []struct {
		name string
		def  string
	}{
		{"slot", config.DefaultSlotColor},
		{"active slot", config.DefaultActiveSlotColor},
		{"removal", config.DefaultRemovalColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := colorResetHint(tt.def)
			if !strings.Contains(hint, tt.def) {
				t.Errorf("hint %q does not name the default color %q", hint, tt.def)
			}
			if !strings.Contains(hint, "reset") {
				t.Errorf("hint %q does not mention resetting", hint)
			}
		})
	}
}
