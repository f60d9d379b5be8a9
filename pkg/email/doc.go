// Package email delivers transactional mail for magic-link authentication.
//
// EmailSender is the transport abstraction with two implementations:
// a Postmark client for deployed environments and DevSender, which writes
// each message to disk as HTML plus JSON metadata.
//
// MagicLinkNotifier sits on top of a sender and turns (recipient, link,
// purpose) into a rendered verification or login email:
//
//	sender := email.NewDevSender("./tmp/emails")
//	notifier := email.NewMagicLinkNotifier(sender, "AI Content Studio", 10*time.Minute)
//	err := notifier.Send(ctx, "ada@example.com", link, token.PurposeVerify)
//
// Failures wrap ErrFailedToSendEmail, ErrInvalidParams or ErrInvalidConfig
// and can be checked with errors.Is.
package email
