// Package i18n loads YAML message catalogs and negotiates the response
// language for HTTP requests.
//
// Catalog files are named after their language ("en.yaml", "es.yml") and hold
// nested maps of messages. Keys are addressed with dots ("errors.invalid_link")
// and messages may contain named placeholders in the form %{name}:
//
//	# en.yaml
//	errors:
//	  invalid_link: "Link is invalid or expired, request a new one."
//	validation:
//	  required: "%{field} is required"
//
//	tr, err := i18n.NewTranslator(ctx, locales.FS, i18n.WithDefaultLanguage("en"))
//	msg := tr.T("en", "validation.required", "field", "email")
//
// Middleware picks the language from the "lang" query parameter or cookie,
// falling back to Accept-Language matched against the loaded catalogs with
// golang.org/x/text/language, and stores it in the request context. Tc
// translates using that stored language.
package i18n
