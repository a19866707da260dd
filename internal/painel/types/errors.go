package types

import (
	"errors"
	"fmt"
)

// ErrConfigMissing indicates no spreadsheet source is configured.
var ErrConfigMissing = errors.New("spreadsheet source not configured: set SHEET_URL or SHEET_ID")

// LoadError reports a failed load: network failure, malformed content or
// zero usable tabs. Tab is empty when the failure is not tab specific.
type LoadError struct {
	Source string
	Tab    string
	Cause  error
}

func (e *LoadError) Error() string {
	if e.Tab != "" {
		return fmt.Sprintf("failed to load tab %q from %s: %v", e.Tab, e.Source, e.Cause)
	}
	return fmt.Sprintf("failed to load spreadsheet from %s: %v", e.Source, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// SchemaError reports a mandatory column missing from a tab.
type SchemaError struct {
	Tab    string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("mandatory column %q missing from tab %q", e.Column, e.Tab)
}

// TabNotFoundError reports an unknown tab name, with the closest known name
// when one resembles it.
type TabNotFoundError struct {
	Tab        string
	Suggestion string
}

func (e *TabNotFoundError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("tab %q not found (did you mean %q?)", e.Tab, e.Suggestion)
	}
	return fmt.Sprintf("tab %q not found", e.Tab)
}
