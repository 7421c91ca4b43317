// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// The index distinguishes three failure classes:
//
//   - ErrCodeInvalidConfiguration: the build input cannot produce an index
//   - ErrCodeInvalidRecipe: one recipe was skipped during the build
//   - ErrCodeInvalidFocus: a query named zero or several ingredient values
//
// A query that matches nothing is not an error and returns an empty result.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeInvalidConfiguration,
//	    "recipe references unregistered type",
//	    recipe.ErrUnknownType,
//	    map[string]any{
//	        "type": typeID,
//	    },
//	)
package errors
