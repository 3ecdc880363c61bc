package mailer

// Config holds transactional mail configuration.
// The Postmark tokens are optional so development environments can run on
// the file sender; SenderEmail is required because it establishes the
// identity of every outbound message.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"NOTIFY_SENDER_EMAIL,required"`
	ReplyToEmail         string `env:"NOTIFY_REPLYTO_EMAIL"`
}
