package hmacsig

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSHA256Digester(t *testing.T) {
	t.Run("chunks feed one computation", func(t *testing.T) {
		d := NewSHA256Digester(SecretKeyFromString("key"))

		assert.Equal(t,
			d.Digest([]byte("hello world")),
			d.Digest([]byte("hello "), []byte("world")))
	})

	t.Run("size matches the digest", func(t *testing.T) {
		d := NewSHA256Digester(SecretKeyFromString("key"))

		assert.Equal(t, sha256.Size, d.Size())
		assert.Len(t, d.Digest([]byte("msg")), d.Size())
	})

	t.Run("key is copied at construction", func(t *testing.T) {
		raw := []byte("mutable key")
		d := NewSHA256Digester(NewSecretKey(raw))

		before := d.Digest([]byte("msg"))
		raw[0] = 'X'

		assert.Equal(t, before, d.Digest([]byte("msg")))
	})
}
