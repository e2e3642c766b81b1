// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeMalformedRecipe,
//	    "failed to parse recipe definition",
//	    parseErr,
//	    map[string]interface{}{
//	        "recipe": name,
//	        "file":   path,
//	    },
//	)
package errors
