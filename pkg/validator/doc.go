// Package validator provides declarative, translation-friendly input
// validation.
//
// A Rule pairs a Check function with a ValidationError describing the failure.
// Apply evaluates rules and aggregates every failure into ValidationErrors,
// which implements error, so callers can report all field problems at once:
//
//	err := validator.Apply(
//	    validator.RequiredString("name", name),
//	    validator.MaxLenString("name", name, 100),
//	    validator.ValidEmail("email", email),
//	)
//	if validator.IsValidationError(err) {
//	    fields := validator.ExtractValidationErrors(err).Messages()
//	}
//
// Each ValidationError carries a TranslationKey and TranslationValues so the
// HTTP layer can localise messages through pkg/i18n.
package validator
