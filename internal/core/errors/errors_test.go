package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		err := New(CodeNotFound, "dataset not found")
		if err.Error() != "[NOT_FOUND] dataset not found" {
			t.Errorf("expected [NOT_FOUND] dataset not found, got %s", err.Error())
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		original := errors.New("unexpected EOF")
		err := DataFormat(original, "decode dataset")
		expected := "[DATA_FORMAT] decode dataset: unexpected EOF"
		if err.Error() != expected {
			t.Errorf("expected %s, got %s", expected, err.Error())
		}
		if !errors.Is(err, original) {
			t.Error("expected wrapped error to unwrap to the original")
		}
	})

	t.Run("IsCode", func(t *testing.T) {
		err := New(CodeValidationError, "invalid input")
		if !IsCode(err, CodeValidationError) {
			t.Error("expected IsCode to return true for CodeValidationError")
		}
		if IsCode(err, CodeNotFound) {
			t.Error("expected IsCode to return false for CodeNotFound")
		}
	})

	t.Run("IsDataFormatThroughFmtWrap", func(t *testing.T) {
		err := fmt.Errorf("startup: %w", DataFormat(errors.New("bad"), "decode dataset"))
		if !IsDataFormat(err) {
			t.Error("expected IsDataFormat to see through fmt wrapping")
		}
	})

	t.Run("AddContext", func(t *testing.T) {
		err := AddContext(New(CodeDataFormat, "top level is not a list"), CtxPath, "words.json")
		if !IsCode(err, CodeDataFormat) {
			t.Error("expected code to be preserved")
		}
		if got := err.Error(); got != "[DATA_FORMAT] top level is not a list map[path:words.json]" {
			t.Errorf("unexpected message %q", got)
		}

		foreign := AddContext(errors.New("boom"), CtxOperation, "reload")
		if !IsCode(foreign, CodeInternal) {
			t.Error("expected foreign errors to become internal")
		}
	})
}
