// Package services holds the error taxonomy shared by the engines and
// the external-tool clients.
package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExternalTool marks failures of invoked child processes.
	ErrExternalTool = errors.New("external tool error")
	// ErrValidation marks missing or malformed operator inputs.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrMapping marks an id/name mapping that resolves to nothing in a
	// scanned graph.
	ErrMapping = errors.New("mapping error")
	// ErrTimeout marks operations cancelled by their deadline.
	ErrTimeout = errors.New("timeout")
)

// Wrap builds an error message carrying stage context while tagging it
// with one of the exported sentinel errors for later classification.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
