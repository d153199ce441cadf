package services

import (
	"errors"
	"testing"
)

func TestWrapTagsSentinel(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Wrap(ErrExternalTool, "update", "run", "dotnet exited", cause)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("sentinel lost: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause lost: %v", err)
	}
	want := "external tool error: update: run: dotnet exited: exit status 1"
	if err.Error() != want {
		t.Fatalf("message:\n got  %q\n want %q", err.Error(), want)
	}
}

func TestWrapDefaults(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation default, got %v", err)
	}
	if err.Error() != "validation error: service failure" {
		t.Fatalf("message: %q", err.Error())
	}
}
