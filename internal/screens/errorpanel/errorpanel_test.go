package errorpanel

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/abhisek/hagios/internal/catalog"
)

func TestHintByErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&catalog.DataUnavailableError{Doc: "modulo1.json", Err: errors.New("404")}, "could not be loaded"},
		{catalog.UnknownModuleError("9"), "not part of the course"},
		{fmt.Errorf("boom"), "went wrong"},
	}
	for _, tt := range tests {
		p := New("Module unavailable", tt.err)
		if !strings.Contains(p.Hint(), tt.want) {
			t.Errorf("Hint() for %v = %q, want it to contain %q", tt.err, p.Hint(), tt.want)
		}
	}
}

func TestViewShowsError(t *testing.T) {
	p := New("Module unavailable", errors.New("connection refused"))
	view := p.View(80, 20)
	if !strings.Contains(view, "connection refused") {
		t.Error("view missing error text")
	}
	if p.Title() != "Module unavailable" {
		t.Errorf("Title() = %q", p.Title())
	}
}
