package hmacsig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"golang.org/x/net/http/httpguts"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultHeader is the signature header name used when Config.Header
	// is empty.
	DefaultHeader = "x-hmac"

	// DefaultMaxBodyBytes caps buffered request bodies when
	// Config.MaxBodyBytes is zero.
	DefaultMaxBodyBytes = 10 << 20
)

// Config describes one deployment of the scheme. The same Config drives
// both ends: Middleware uses the server roles (verify requests, sign
// responses) and Transport the client roles (sign requests, optionally
// verify responses).
type Config struct {
	// Secret is the shared key. Required unless Digester is set.
	Secret SecretKey

	// Digester overrides the HMAC-SHA256 digester built from Secret.
	// Implementations carry their own key material; Secret is ignored
	// when this is set.
	Digester Digester

	// Header names the signature header on requests and responses. When
	// empty, DefaultHeader is used. Matching is case-insensitive per
	// usual header semantics.
	Header string

	// MaxBodyBytes limits how many request body bytes the middleware
	// buffers before rejecting the request. When zero,
	// DefaultMaxBodyBytes is used; negative disables the limit.
	MaxBodyBytes int64

	// Status maps rejection reasons to response status codes. When nil,
	// DefaultStatus is used.
	Status StatusFunc

	// OnReject, when set, writes the rejection response instead of the
	// bare mapped status code. Useful for logging or custom error
	// bodies. The middleware signs nothing on this path.
	OnReject func(w http.ResponseWriter, r *http.Request, out Outcome)

	// VerifyResponses makes Transport require a valid response digest on
	// every response. Middleware ignores it.
	VerifyResponses bool
}

// settings is a validated Config with defaults applied.
type settings struct {
	digester Digester
	header   string
	maxBody  int64
	status   StatusFunc
	onReject func(w http.ResponseWriter, r *http.Request, out Outcome)
	verify   bool
}

func (cfg Config) normalize() (settings, error) {
	digester := cfg.Digester
	if digester == nil {
		if cfg.Secret.IsZero() {
			return settings{}, ErrNoKey
		}

		digester = NewSHA256Digester(cfg.Secret)
	}

	header := cfg.Header
	if header == "" {
		header = DefaultHeader
	}

	if !httpguts.ValidHeaderFieldName(header) {
		return settings{}, fmt.Errorf("%w: %q", ErrInvalidHeaderName, header)
	}

	maxBody := cfg.MaxBodyBytes
	switch {
	case maxBody == 0:
		maxBody = DefaultMaxBodyBytes
	case maxBody < 0:
		maxBody = 0
	}

	status := cfg.Status
	if status == nil {
		status = DefaultStatus
	}

	return settings{
		digester: digester,
		header:   header,
		maxBody:  maxBody,
		status:   status,
		onReject: cfg.OnReject,
		verify:   cfg.VerifyResponses,
	}, nil
}

// ConfigFile is the on-disk YAML form of a Config.
//
//	secret: "rust :)"
//	header: x-hmac
//	max_body_bytes: 10485760
//	verify_responses: false
//	status:
//	  missing_header: 403
//	  authentication_failed: 403
//
// Status entries are keyed by Reason identifiers and override
// DefaultStatus per reason; reasons left out keep their default code.
type ConfigFile struct {
	Secret          string         `yaml:"secret"`
	Header          string         `yaml:"header"`
	MaxBodyBytes    int64          `yaml:"max_body_bytes"`
	VerifyResponses bool           `yaml:"verify_responses"`
	Status          map[string]int `yaml:"status"`
}

// Config converts the file form into a runtime Config.
func (f ConfigFile) Config() (Config, error) {
	cfg := Config{
		Secret:          SecretKeyFromString(f.Secret),
		Header:          f.Header,
		MaxBodyBytes:    f.MaxBodyBytes,
		VerifyResponses: f.VerifyResponses,
	}

	if len(f.Status) == 0 {
		return cfg, nil
	}

	overrides := make(map[Reason]int, len(f.Status))
	for name, code := range f.Status {
		reason, err := parseReason(name)
		if err != nil {
			return Config{}, err
		}

		if code < 100 || code > 599 {
			return Config{}, fmt.Errorf("hmacsig: status code %d for %s out of range", code, name)
		}

		overrides[reason] = code
	}

	cfg.Status = func(reason Reason) int {
		if code, ok := overrides[reason]; ok {
			return code
		}

		return DefaultStatus(reason)
	}

	return cfg, nil
}

// LoadConfigFile reads and parses a YAML configuration file. Unknown keys
// are rejected.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("hmacsig: reading config: %w", err)
	}

	var file ConfigFile
	if err := unmarshalStrict(data, &file); err != nil {
		return Config{}, fmt.Errorf("hmacsig: parsing config: %w", err)
	}

	return file.Config()
}

// unmarshalStrict decodes YAML while rejecting keys ConfigFile does not
// declare, so typos in config files fail loudly.
func unmarshalStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

func parseReason(name string) (Reason, error) {
	for _, reason := range []Reason{
		ReasonMissingHeader,
		ReasonMalformedHeader,
		ReasonAuthFailed,
		ReasonBodyRead,
	} {
		if reason.String() == name {
			return reason, nil
		}
	}

	return ReasonNone, fmt.Errorf("hmacsig: unknown rejection reason %q", name)
}
