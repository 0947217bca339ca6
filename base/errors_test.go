package base

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidationErrorSentinel(t *testing.T) {
	sentinel := NewValidationError("checksum mismatch")

	wrapped := fmt.Errorf("decoding key: %w", sentinel)

	require.True(t, errors.Is(wrapped, sentinel))
	require.True(t, IsValidation(wrapped))
	require.False(t, IsUsage(wrapped))
	require.Equal(t, "checksum mismatch", sentinel.Error())
	require.Contains(t, wrapped.Error(), "checksum mismatch")
}

func TestUsageErrorSentinel(t *testing.T) {
	sentinel := NewUsageError("missing path")

	wrapped := fmt.Errorf("building generator: %w", sentinel)

	require.True(t, errors.Is(wrapped, sentinel))
	require.True(t, IsUsage(wrapped))
	require.False(t, IsValidation(wrapped))
}

func TestErrorCause(t *testing.T) {
	cause := errors.New("boom")
	err := &ValidationError{Msg: "outer", Err: cause}

	require.Equal(t, "outer: boom", err.Error())
	require.True(t, errors.Is(err, cause))
}

func TestKindsDoNotCross(t *testing.T) {
	ve := NewValidationError("v")
	ue := NewUsageError("u")

	var gotVE *ValidationError
	var gotUE *UsageError
	require.False(t, errors.As(ve, &gotUE))
	require.False(t, errors.As(ue, &gotVE))
}
