package models

import "testing"

func TestParseState(t *testing.T) {
	t.Run("Known States", func(t *testing.T) {
		for _, s := range AllStates() {
			parsed, ok := ParseState(string(s))
			if !ok {
				t.Errorf("expected %q to parse", s)
			}
			if parsed != s {
				t.Errorf("expected %q, got %q", s, parsed)
			}
		}
	})

	t.Run("Normalizes Case And Whitespace", func(t *testing.T) {
		parsed, ok := ParseState("  Processed ")
		if !ok || parsed != StateProcessed {
			t.Errorf("expected processed, got %q (ok=%v)", parsed, ok)
		}
	})

	t.Run("Unknown State", func(t *testing.T) {
		if _, ok := ParseState("exploded"); ok {
			t.Error("expected unknown state to fail parsing")
		}
	})
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    State
		to      State
		allowed bool
	}{
		{"uploaded to processing", StateUploaded, StateProcessing, true},
		{"processing to processed", StateProcessing, StateProcessed, true},
		{"processed to discarded", StateProcessed, StateDiscarded, true},
		{"processed to awaiting_category", StateProcessed, StateAwaitingCategory, true},
		{"awaiting_category to uploading", StateAwaitingCategory, StateUploading, true},
		{"awaiting_category back to processed", StateAwaitingCategory, StateProcessed, true},
		{"uploading to completed", StateUploading, StateCompleted, true},
		{"uploading to failed", StateUploading, StateFailed, true},
		{"self transition is a no-op", StateProcessing, StateProcessing, true},
		{"terminal self transition", StateCompleted, StateCompleted, true},
		{"backwards completed to processing", StateCompleted, StateProcessing, false},
		{"backwards processed to processing", StateProcessed, StateProcessing, false},
		{"skip uploaded to processed", StateUploaded, StateProcessed, false},
		{"discarded is terminal", StateDiscarded, StateProcessed, false},
		{"failed is terminal", StateFailed, StateUploading, false},
		{"completed to failed", StateCompleted, StateFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.allowed {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.allowed)
			}
		})
	}
}

func TestTerminal(t *testing.T) {
	terminal := map[State]bool{
		StateCompleted: true,
		StateFailed:    true,
		StateDiscarded: true,
	}

	for _, s := range AllStates() {
		if s.Terminal() != terminal[s] {
			t.Errorf("Terminal(%q) = %v, want %v", s, s.Terminal(), terminal[s])
		}
	}
}

func TestLocallyAuthoritative(t *testing.T) {
	if !StateDiscarded.LocallyAuthoritative() {
		t.Error("discarded should be locally authoritative")
	}
	if !StateAwaitingCategory.LocallyAuthoritative() {
		t.Error("awaiting_category should be locally authoritative")
	}
	if StateProcessing.LocallyAuthoritative() {
		t.Error("processing should not be locally authoritative")
	}
}
