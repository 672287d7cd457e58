package ocr

import "testing"

func TestPageSegModeValid(t *testing.T) {
	if !DefaultPageSegMode.Valid() {
		t.Error("default mode should be valid")
	}
	if DefaultPageSegMode != 6 {
		t.Errorf("DefaultPageSegMode = %d, want 6", DefaultPageSegMode)
	}
	for _, m := range []PageSegMode{-1, 14, 99} {
		if m.Valid() {
			t.Errorf("mode %d should be invalid", m)
		}
	}
}
