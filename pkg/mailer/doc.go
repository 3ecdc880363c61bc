// Package mailer is the transactional mail collaborator consumed by the
// email delivery channel.
//
// The Sender interface keeps the engine provider-agnostic. Two
// implementations ship with the package: a Postmark-backed sender for
// production and a file-based sender for development that writes each
// message to disk.
package mailer
