package hmacsig

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "hmac.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	return path
}

func TestLoadConfigFile(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		cfg, err := LoadConfigFile(writeConfig(t, `
secret: "rust :)"
header: x-signature
max_body_bytes: 1024
verify_responses: true
status:
  missing_header: 403
  malformed_header: 422
`))
		require.NoError(t, err)

		assert.Equal(t, "x-signature", cfg.Header)
		assert.Equal(t, int64(1024), cfg.MaxBodyBytes)
		assert.True(t, cfg.VerifyResponses)
		assert.False(t, cfg.Secret.IsZero())

		require.NotNil(t, cfg.Status)
		assert.Equal(t, http.StatusForbidden, cfg.Status(ReasonMissingHeader))
		assert.Equal(t, http.StatusUnprocessableEntity, cfg.Status(ReasonMalformedHeader))

		// Reasons without overrides keep their defaults.
		assert.Equal(t, http.StatusUnauthorized, cfg.Status(ReasonAuthFailed))
		assert.Equal(t, http.StatusInternalServerError, cfg.Status(ReasonBodyRead))
	})

	t.Run("loaded secret signs correctly", func(t *testing.T) {
		cfg, err := LoadConfigFile(writeConfig(t, `secret: "rust :)"`))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		require.NoError(t, SignRequest(req, cfg))

		assert.Equal(t, "fa64feb94f1d649d435ae6dce009ff0767f57c0f20867dde5f8f6712fea3a7be", req.Header.Get(DefaultHeader))
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		_, err := LoadConfigFile(writeConfig(t, `
secret: key
shared_header: x-hmac
`))
		assert.Error(t, err)
	})

	t.Run("unknown status reason is rejected", func(t *testing.T) {
		_, err := LoadConfigFile(writeConfig(t, `
secret: key
status:
  bad_signature: 401
`))
		assert.Error(t, err)
	})

	t.Run("status code out of range is rejected", func(t *testing.T) {
		_, err := LoadConfigFile(writeConfig(t, `
secret: key
status:
  missing_header: 42
`))
		assert.Error(t, err)
	})

	t.Run("empty file yields zero config", func(t *testing.T) {
		cfg, err := LoadConfigFile(writeConfig(t, ""))
		require.NoError(t, err)

		assert.True(t, cfg.Secret.IsZero())

		_, err = Middleware(cfg)
		assert.ErrorIs(t, err, ErrNoKey)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestConfigDefaults(t *testing.T) {
	t.Run("digester overrides secret", func(t *testing.T) {
		d := NewSHA256Digester(SecretKeyFromString("digester key"))

		// No Secret set: the explicit digester carries the key.
		cfg := Config{Digester: d}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		require.NoError(t, SignRequest(req, cfg))

		out, err := VerifyRequest(req, cfg)
		require.NoError(t, err)
		assert.True(t, out.Allowed())
	})

	t.Run("negative max body disables the limit", func(t *testing.T) {
		st, err := Config{
			Secret:       SecretKeyFromString(testSecret),
			MaxBodyBytes: -1,
		}.normalize()
		require.NoError(t, err)

		assert.Equal(t, int64(0), st.maxBody)
	})

	t.Run("zero max body uses the default", func(t *testing.T) {
		st, err := Config{Secret: SecretKeyFromString(testSecret)}.normalize()
		require.NoError(t, err)

		assert.Equal(t, int64(DefaultMaxBodyBytes), st.maxBody)
	})
}
