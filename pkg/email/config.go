package email

// Config holds email service configuration.
// Postmark tokens are optional so development can run with the disk sender;
// NewPostmarkClient rejects a config without them.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"noreply@contentstudio.app"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"support@contentstudio.app"`
}
