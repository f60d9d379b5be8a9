package email

import (
	"context"
	"fmt"
	"time"

	"github.com/contentstudio/studio/pkg/email/templates"
	"github.com/contentstudio/studio/pkg/token"
)

// linkCopy is the per-purpose wording of a magic-link email.
type linkCopy struct {
	subject string
	button  string
	lines   []string
	tag     string
}

var linkCopies = map[token.Purpose]linkCopy{
	token.PurposeVerify: {
		subject: "Verify your email to continue",
		button:  "Verify Email",
		lines: []string{
			"Your account has been created successfully.",
			"Please verify your email to continue.",
			"You will be redirected back to the application.",
		},
		tag: "verify-email",
	},
	token.PurposeLogin: {
		subject: "Login to your account",
		button:  "Login Now",
		lines:   []string{"Click the button below to securely log in."},
		tag:     "login-link",
	},
}

// MagicLinkNotifier renders magic-link emails and hands them to an EmailSender.
type MagicLinkNotifier struct {
	sender  EmailSender
	brand   string
	linkTTL time.Duration
}

// NewMagicLinkNotifier creates a notifier. brand is shown as the email heading
// and linkTTL drives the expiry footnote.
func NewMagicLinkNotifier(sender EmailSender, brand string, linkTTL time.Duration) *MagicLinkNotifier {
	return &MagicLinkNotifier{sender: sender, brand: brand, linkTTL: linkTTL}
}

// Send delivers a link for the given purpose to recipient.
func (n *MagicLinkNotifier) Send(ctx context.Context, recipient, link string, purpose token.Purpose) error {
	c, ok := linkCopies[purpose]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPurpose, purpose)
	}

	body, err := templates.Render(ctx, templates.MagicLink(templates.MagicLinkParams{
		Brand:      n.brand,
		Lines:      c.lines,
		ButtonText: c.button,
		Link:       link,
		Footnote:   ExpiryNotice(n.linkTTL),
	}))
	if err != nil {
		return fmt.Errorf("%w: render: %w", ErrFailedToSendEmail, err)
	}

	return n.sender.SendEmail(ctx, SendEmailParams{
		SendTo:   recipient,
		Subject:  c.subject,
		BodyHTML: body,
		Tag:      c.tag,
	})
}

// ExpiryNotice describes a link lifetime in whole minutes.
func ExpiryNotice(ttl time.Duration) string {
	minutes := int(ttl.Round(time.Minute) / time.Minute)
	if minutes <= 1 {
		return "This link expires in 1 minute."
	}
	return fmt.Sprintf("This link expires in %d minutes.", minutes)
}
