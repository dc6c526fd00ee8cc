// Package testutil implements various utilities to reduce boilerplate in unit
// tests a la testify.
package testutil

import (
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

// RequireEqualEmptyNil is a version of require.Equal, but considers nil
// slices/maps to be equal to empty slices/maps.
func RequireEqualEmptyNil(t testing.TB, expected, actual any, msgAndArgs ...any) {
	t.Helper()
	opts := []cmp.Option{cmpopts.EquateEmpty()}
	msgAndArgs = append(msgAndArgs, cmp.Diff(expected, actual, opts...))
	require.Truef(t, cmp.Equal(expected, actual, opts...), "Should be equal", msgAndArgs...)
}

// AreMessagesEqual returns an error describing the difference between two
// slices of wire messages, or nil if they are equal. When less is non-nil both
// slices are sorted with it first.
func AreMessagesEqual[T any](expected, found []T, less func(a, b T) int, message string, args ...any) error {
	if less != nil {
		expected = slices.Clone(expected)
		found = slices.Clone(found)
		slices.SortFunc(expected, less)
		slices.SortFunc(found, less)
	}

	diff := cmp.Diff(expected, found, cmpopts.EquateEmpty())
	if diff == "" {
		return nil
	}
	return fmt.Errorf("%s\n\nDiff (-expected +found):\n%s", fmt.Sprintf(message, args...), diff)
}

// RequireMessagesEqual ensures that two slices of wire messages are equal.
func RequireMessagesEqual[T any](t testing.TB, expected, found []T, less func(a, b T) int, message string, args ...any) {
	t.Helper()
	require.NoError(t, AreMessagesEqual(expected, found, less, message, args...))
}
