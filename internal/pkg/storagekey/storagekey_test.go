package storagekey_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viniciusmartins/imagepress/internal/pkg/storagekey"
)

func TestGenerator_Generate(t *testing.T) {
	t.Run("uses prefix, timestamp, hex suffix and extension", func(t *testing.T) {
		gen := storagekey.NewGenerator("images/", ".webp")

		key, err := gen.Generate()
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(key, "images/"))
		assert.True(t, strings.HasSuffix(key, ".webp"))
		assert.Regexp(t, regexp.MustCompile(`^images/\d{14}_[0-9a-f]{8}\.webp$`), key)
	})

	t.Run("falls back to the default prefix", func(t *testing.T) {
		gen := storagekey.NewGenerator("", ".webp")

		key, err := gen.Generate()
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(key, storagekey.DefaultPrefix))
	})

	t.Run("keys generated in a tight loop do not collide", func(t *testing.T) {
		gen := storagekey.NewGenerator("images/", ".webp")

		// Most of these land in the same wall-clock second, so the random
		// suffix is what keeps them apart.
		seen := make(map[string]struct{}, 1000)
		for i := 0; i < 1000; i++ {
			key, err := gen.Generate()
			require.NoError(t, err)

			_, dup := seen[key]
			assert.False(t, dup, "duplicate key %s", key)
			seen[key] = struct{}{}
		}
	})
}
