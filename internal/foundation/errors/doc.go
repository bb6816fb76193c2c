// Package errors provides the classified error primitives used by docsite.
//
// Only failures that must reach an operator or a client are classified here:
// configuration problems, request validation, static export failures and
// internal faults. Content absence is never an error in docsite; the content
// packages report it as an empty result instead.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryConfig, "content root missing").
//		WithSeverity(errors.SeverityFatal).
//		WithContext("root", cfg.Content.Root).
//		WithCause(statErr).
//		Build()
package errors
