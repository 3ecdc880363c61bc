package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// FileSender writes each email to disk instead of sending it. Intended for
// local development: the HTML body lands next to a JSON metadata file so a
// developer can open what a user would have received.
type FileSender struct {
	dir string
}

// NewFileSender creates a file-based sender writing into dir.
// The directory is created on first send if it does not exist.
func NewFileSender(dir string) *FileSender {
	return &FileSender{dir: dir}
}

func (s *FileSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create directory: %v", ErrSendFailed, err)
	}

	now := time.Now()
	name := msg.Tag
	if name == "" {
		name = msg.Subject
	}
	base := fmt.Sprintf("%s_%s", now.Format("2006_01_02_150405"), safeFilename(name))

	if err := os.WriteFile(filepath.Join(s.dir, base+".html"), []byte(msg.BodyHTML), 0o644); err != nil {
		return fmt.Errorf("%w: write html: %v", ErrSendFailed, err)
	}

	meta := struct {
		Timestamp string `json:"timestamp"`
		To        string `json:"to"`
		Subject   string `json:"subject"`
		Tag       string `json:"tag,omitempty"`
	}{
		Timestamp: now.Format(time.RFC3339),
		To:        msg.To,
		Subject:   msg.Subject,
		Tag:       msg.Tag,
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal metadata: %v", ErrSendFailed, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, base+".json"), data, 0o644); err != nil {
		return fmt.Errorf("%w: write metadata: %v", ErrSendFailed, err)
	}
	return nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

func safeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeChars.ReplaceAllString(s, "")
	const maxLen = 80
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}
