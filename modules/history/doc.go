// Package history stores the content an account has generated and serves it
// back over HTTP.
//
// Records belong to the account ID resolved from the session subject. Reads
// and deletes are scoped to that owner, and another owner's record is
// indistinguishable from a missing one.
package history
