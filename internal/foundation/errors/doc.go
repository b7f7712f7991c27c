// Package errors provides the classified error primitives shared by kbsite
// packages.
//
// A ClassifiedError carries a category (config, validation, filesystem,
// markdown, search, ...), a severity and a retry hint, plus structured
// context. The CLI adapter maps categories to process exit codes.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryFileSystem, "read document").
//		WithContext("path", path).
//		Build()
package errors
