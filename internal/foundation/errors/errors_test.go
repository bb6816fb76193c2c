package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "docsite.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}
		file, exists := err.Context().GetString("file")
		if !exists || file != "docsite.yaml" {
			t.Errorf("expected context file=docsite.yaml, got %v", file)
		}
	})

	t.Run("Error detection through wrapping", func(t *testing.T) {
		base := ConfigError("bad config").Build()
		wrapped := fmt.Errorf("loading: %w", base)

		if !IsClassified(wrapped) {
			t.Error("expected wrapped error to be classified")
		}
		if !HasCategory(wrapped, CategoryConfig) {
			t.Error("expected wrapped error to have config category")
		}
		if GetCategory(errors.New("plain")) != CategoryInternal {
			t.Error("expected plain error to default to internal")
		}
	})

	t.Run("Error string includes cause", func(t *testing.T) {
		err := WrapError(errors.New("permission denied"), CategoryFileSystem, "cannot read content root").Build()
		want := "[filesystem:error] cannot read content root: permission denied"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
		if !errors.Is(err, err.Cause()) {
			t.Error("expected errors.Is to reach the cause")
		}
	})
}

func TestWithContextDoesNotMutateOriginal(t *testing.T) {
	original := ValidationError("bad path").Build()
	derived := original.WithContext("pathname", "/x")

	if _, ok := original.Context().Get("pathname"); ok {
		t.Error("original context should be untouched")
	}
	if v, _ := derived.Context().GetString("pathname"); v != "/x" {
		t.Errorf("derived context pathname = %q", v)
	}
}

func TestErrorContextMerge(t *testing.T) {
	a := ErrorContext{"a": 1, "shared": "a"}
	b := ErrorContext{"b": 2, "shared": "b"}
	merged := a.Merge(b)

	if merged["a"] != 1 || merged["b"] != 2 || merged["shared"] != "b" {
		t.Errorf("unexpected merge result: %v", merged)
	}
	var nilCtx ErrorContext
	if got := nilCtx.Merge(b); got["b"] != 2 {
		t.Errorf("nil merge should return other, got %v", got)
	}
}
