// Package storagekey builds object-store keys for uploaded images.
//
// Keys never include anything derived from the client-supplied filename;
// the timestamp narrows keys to a one-second window and the random suffix
// is what actually prevents collisions between concurrent uploads.
package storagekey

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	DefaultPrefix = "images/"

	suffixBytes     = 4
	timestampLayout = "20060102150405"
)

type Generator struct {
	prefix string
	ext    string
	now    func() time.Time
}

func NewGenerator(prefix, ext string) *Generator {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Generator{
		prefix: prefix,
		ext:    ext,
		now:    time.Now,
	}
}

// Generate returns prefix + UTC timestamp + "_" + 8 lowercase hex chars + ext.
// crypto/rand is safe for concurrent draws, so one Generator can be shared
// across requests.
func (g *Generator) Generate() (string, error) {
	suffix := make([]byte, suffixBytes)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("reading random suffix: %w", err)
	}

	return fmt.Sprintf("%s%s_%s%s",
		g.prefix,
		g.now().UTC().Format(timestampLayout),
		hex.EncodeToString(suffix),
		g.ext,
	), nil
}
