// Package account exposes the passwordless auth flow over HTTP and provides
// Postgres and MongoDB implementations of auth.Storage.
//
// Routes:
//
//	POST /register       name, email        -> verification link sent
//	GET  /verify         token              -> redirect to the frontend with status
//	POST /login          email              -> login link sent
//	GET  /login/verify   token              -> session delivered by query or cookie
//	POST /logout                            -> clears the session cookie
//	GET  /me             (session required) -> current account
//
// Errors from the flow are translated by MapError, which must be registered
// with the handler.Errors renderer passed to New.
package account
