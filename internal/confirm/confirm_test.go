package confirm

import (
	"strings"
	"testing"

	"github.com/hugo-lorenzo-mato/wardenctl/internal/core"
)

func TestGate_Check(t *testing.T) {
	gate := DeleteUser("a@x.com")

	if err := gate.Check("a@x.com"); err != nil {
		t.Fatalf("exact match should pass: %v", err)
	}
	if err := gate.Check("  a@x.com \n"); err != nil {
		t.Fatalf("surrounding whitespace should be forgiven: %v", err)
	}

	err := gate.Check("b@x.com")
	if !core.IsCategory(err, core.ErrCatConfirmation) {
		t.Fatalf("mismatch should produce a confirmation error, got %v", err)
	}
}

func TestGate_ResetKeyword(t *testing.T) {
	gate := ResetConfig()
	if err := gate.Check("delete"); err != nil {
		t.Fatalf("keyword should pass: %v", err)
	}
	if err := gate.Check("DELETE"); err == nil {
		t.Fatalf("challenge is case-sensitive")
	}
}

func TestGate_Ask(t *testing.T) {
	gate := DeleteUser("a@x.com")

	var out strings.Builder
	if err := gate.Ask(strings.NewReader("a@x.com\n"), &out); err != nil {
		t.Fatalf("matching input should pass: %v", err)
	}
	if !strings.Contains(out.String(), "a@x.com") {
		t.Fatalf("prompt should name the expected value")
	}

	if err := gate.Ask(strings.NewReader(""), &out); err == nil {
		t.Fatalf("empty input should abort")
	}
}
