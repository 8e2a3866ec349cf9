package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	t.Parallel()

	source := fmt.Errorf("invalid character 'o' in literal null")
	err := NewUserError(source, "could not parse the datasource configuration")

	require.Equal(t, "could not parse the datasource configuration", err.Error())
	require.Equal(t, source, err.Source())

	// The user-facing error stays recoverable through wrapping.
	wrapped := fmt.Errorf("executing READ: %w", err)
	var userErr *UserError
	require.True(t, stderrors.As(wrapped, &userErr))
	require.Equal(t, source, stderrors.Unwrap(userErr))
}
