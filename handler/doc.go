// Package handler provides typed HTTP endpoints and the JSON envelope used by
// every response.
//
// An endpoint is a HandlerFunc[R]: Wrap decodes R with the configured
// binders, runs the function and renders the returned Response. Errors from
// any stage go to an ErrorHandler; Errors.Handle maps them to a status code,
// a stable code and a localized message:
//
//	errs := handler.NewErrors(log, translator, account.MapError)
//	r.Post("/register", handler.Wrap(h.register,
//		handler.WithBinders[registerRequest](binder.Bind),
//		handler.WithErrorHandler[registerRequest](errs.Handle),
//	))
//
// Successful bodies look like {"data": ...}; failures look like
// {"error": {"code": "...", "message": "...", "details": {...}}}.
package handler
