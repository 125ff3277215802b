// File: error_test.go
// Title: Error Module Tests
// Description: Tests for error creation, wrapping, codes and severities.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive test coverage
// - 2026-10-17 v0.2.0: Rewritten with testify for the interpreter codes

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error message")

	require.NotNil(t, err)
	assert.Equal(t, "test error message", err.Error())
	assert.Equal(t, CodeUnknown, err.Code())
	assert.Equal(t, SeverityMedium, err.Severity())
	assert.False(t, err.Timestamp().IsZero())
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		message  string
		wantNil  bool
		wantMsg  string
		wantCode Code
	}{
		{
			name:    "wrap nil error",
			err:     nil,
			message: "wrapper",
			wantNil: true,
		},
		{
			name:     "wrap standard error",
			err:      errors.New("boom"),
			message:  "wrapper",
			wantMsg:  "wrapper: boom",
			wantCode: CodeUnknown,
		},
		{
			name:     "wrap coded error keeps code",
			err:      New("not a number").WithCode(CodeMalformedNumeric),
			message:  "incrementvar",
			wantMsg:  "incrementvar: not a number",
			wantCode: CodeMalformedNumeric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.err, tt.message)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantMsg, got.Error())
			assert.Equal(t, tt.message, got.Message())
			assert.Equal(t, tt.wantCode, got.Code())
			assert.True(t, errors.Is(got, tt.err))
		})
	}
}

func TestWithCodeSetsSeverity(t *testing.T) {
	err := New("unknown command").WithCode(CodeUnknownCommand)
	assert.Equal(t, SeverityLow, err.Severity())

	err = New("bad config").WithSeverity(SeverityCritical).WithCode(CodeConfigError)
	assert.Equal(t, SeverityCritical, err.Severity(), "explicit severity must survive WithCode")
}

func TestDetailsAreCopied(t *testing.T) {
	err := New("arity").WithDetail("min", 1).WithDetails(map[string]interface{}{"max": 1})

	details := err.Details()
	details["min"] = 99

	assert.Equal(t, 1, err.Details()["min"])
	assert.Equal(t, 1, err.Details()["max"])
}

func TestHasCodeWalksChain(t *testing.T) {
	inner := New("x").WithCode(CodeUnknownVariable)
	outer := fmt.Errorf("variable: %w", inner)

	assert.True(t, HasCode(outer, CodeUnknownVariable))
	assert.False(t, HasCode(outer, CodeUnknownCommand))
	assert.False(t, HasCode(nil, CodeUnknownCommand))
	assert.Equal(t, CodeUnknownVariable, GetCode(outer))
	assert.Equal(t, CodeUnknown, GetCode(errors.New("plain")))
	assert.Equal(t, SeverityLow, GetSeverity(outer))
}

func TestString(t *testing.T) {
	err := New("arguments size out of range").
		WithCode(CodeArityMismatch).
		WithOperation("parser.validateArity").
		WithDetail("name", "echo").
		WithDetail("actual", 0)

	want := "Error: arguments size out of range\n" +
		"Code: ARITY_MISMATCH\n" +
		"Severity: low\n" +
		"Operation: parser.validateArity\n" +
		"Details: {actual=0, name=echo}"
	assert.Equal(t, want, err.String())
}

func TestMarshalJSON(t *testing.T) {
	err := Wrap(errors.New("root"), "alias limit").
		WithCode(CodeAliasRecursionExceeded).
		WithDetail("limit", 50000)

	data, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "alias limit", decoded["message"])
	assert.Equal(t, "ALIAS_RECURSION_EXCEEDED", decoded["code"])
	assert.Equal(t, "medium", decoded["severity"])
	assert.Equal(t, "root", decoded["cause"])
}

func TestInterpreterCodes(t *testing.T) {
	assert.True(t, CodeArityMismatch.IsInterpreterCode())
	assert.True(t, CodeMalformedNumeric.IsInterpreterCode())
	assert.False(t, CodeConfigError.IsInterpreterCode())
}
