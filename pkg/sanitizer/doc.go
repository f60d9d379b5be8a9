// Package sanitizer normalises user input before it is validated or stored.
//
// Email helpers lower-case and tidy addresses so the same mailbox always maps
// to the same account, and mask addresses for logs. Text helpers normalise
// display names and free-form titles: Unicode NFC composition (via
// golang.org/x/text), whitespace collapsing and control-character removal.
//
// Apply and Compose build pipelines from single-argument transforms:
//
//	clean := sanitizer.Compose(sanitizer.StripHTML, sanitizer.NormalizeWhitespace)
//	title = clean(title)
package sanitizer
