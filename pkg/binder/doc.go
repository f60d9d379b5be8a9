// Package binder decodes HTTP requests into structs.
//
// JSON bodies use `json` tags; forms and query strings use `form` tags.
// Bind chooses the decoder from the Content-Type so one endpoint accepts all
// three encodings:
//
//	var req struct {
//		Name  string `json:"name" form:"name"`
//		Email string `json:"email" form:"email"`
//	}
//	if err := binder.Bind(r, &req); err != nil {
//		// binder.IsBindError(err) is true
//	}
package binder
