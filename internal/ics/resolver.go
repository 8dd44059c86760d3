// internal/ics/resolver.go
package ics

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"mail-sender/internal/email"
)

const contentType = "text/calendar"

// Resolver loads pre-existing calendar invites from a fixed local
// directory and wraps them as attachments, byte-for-byte.
type Resolver struct {
	root string
}

func NewResolver(root string) *Resolver {
	return &Resolver{root: root}
}

// Resolve reads <root>/<name>.ics. The name must be a bare file name;
// anything that could escape the ics root is rejected up front.
func (r *Resolver) Resolve(name string) (email.Attachment, error) {
	if !safeName(name) {
		log.Printf("❌ [ICS] Rejected unsafe ics name: %q", name)
		return email.Attachment{}, fmt.Errorf("invalid ics name %q", name)
	}

	path := filepath.Join(r.root, name+".ics")
	data, err := os.ReadFile(path)
	if err != nil {
		return email.Attachment{}, fmt.Errorf("read ics %s: %w", path, err)
	}

	return email.Attachment{
		Filename:    name + ".ics",
		ContentType: contentType,
		Bytes:       data,
	}, nil
}

func safeName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return filepath.Base(name) == name
}
