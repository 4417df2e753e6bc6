package errors

import (
	"fmt"
	"testing"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"missing document", fmt.Errorf("loading d1: %w", ErrDocumentNotFound), ExitNotFound},
		{"missing stop words", ErrStopWordsNotFound, ExitNotFound},
		{"malformed", fmt.Errorf("wrap: %w", ErrMalformedDocument), ExitData},
		{"invalid input", ErrInvalidInput, ExitUsage},
		{"app error wins", New(ErrInternal, ExitUsage, "bad flag"), ExitUsage},
		{"unknown", fmt.Errorf("boom"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	err := Newf(ErrMalformedDocument, ExitData, "document %s has no </TEXT> marker", "NYT1")
	if !Is(err, ErrMalformedDocument) {
		t.Error("AppError should unwrap to its sentinel")
	}
	want := "malformed document: document NYT1 has no </TEXT> marker"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
