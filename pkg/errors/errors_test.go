package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := New(KindUnknownTool, "no tool named budget_forecast")
	if err.Error() != "no tool named budget_forecast" {
		t.Errorf("Error() = %q, want %q", err.Error(), "no tool named budget_forecast")
	}

	wrapped := Wrap(KindProvider, "fetching /budgets", stderrors.New("connection refused"))
	want := "fetching /budgets: connection refused"
	if wrapped.Error() != want {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), want)
	}
}

func TestKindOf(t *testing.T) {
	err := Newf(KindInvalidParams, "missing field %q", "name")
	if KindOf(err) != KindInvalidParams {
		t.Errorf("KindOf(err) = %v, want KindInvalidParams", KindOf(err))
	}

	// Classification survives fmt.Errorf wrapping.
	outer := fmt.Errorf("dispatch: %w", err)
	if KindOf(outer) != KindInvalidParams {
		t.Errorf("KindOf(wrapped) = %v, want KindInvalidParams", KindOf(outer))
	}

	if KindOf(stderrors.New("plain")) != KindUnknown {
		t.Errorf("KindOf(plain error) should be KindUnknown")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("eof")
	err := Wrap(KindIO, "reading body", cause)

	if !stderrors.Is(err, cause) {
		t.Errorf("errors.Is should reach the wrapped cause")
	}
}

func TestRPCCode(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindParse, -32700},
		{KindUnknownMethod, -32601},
		{KindInvalidParams, -32602},
		{KindUnknownTool, -32000},
		{KindToolExecution, -32000},
		{KindProvider, -32000},
		{KindFraming, -32603},
		{KindUnknown, -32603},
	}

	for _, tt := range tests {
		if got := tt.kind.RPCCode(); got != tt.want {
			t.Errorf("%v.RPCCode() = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestIs(t *testing.T) {
	err := New(KindFraming, "expected Content-Length header")
	if !Is(err, KindFraming) {
		t.Errorf("Is(err, KindFraming) = false, want true")
	}
	if Is(err, KindEncoding) {
		t.Errorf("Is(err, KindEncoding) = true, want false")
	}
}
