// internal/app/system/totp/totp.go
//
// Time-based one-time passwords for the optional second factor.
// RFC 6238 with the parameters every mainstream authenticator app
// defaults to: HMAC-SHA1, 30 second steps, 6 digits.
package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"golang.org/x/crypto/hkdf"
)

const (
	period = 30 * time.Second
	digits = 6

	// Codes from the adjacent step on either side are accepted, covering
	// clock skew between the server and the authenticator device.
	skewSteps = 1

	secretBytes = 20
)

// State is a user's second-factor lifecycle stage. A secret exists from
// Pending onward; only Enabled secrets gate sign-in.
type State string

const (
	Disabled State = "disabled"
	Pending  State = "pending"
	Enabled  State = "enabled"
)

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// GenerateSecret returns a fresh base32 secret suitable for an otpauth
// enrollment URI. Random input is stretched through HKDF-SHA256 so a
// partially failed entropy read can never surface as a short secret.
func GenerateSecret() (string, error) {
	ikm := make([]byte, 32)
	if _, err := rand.Read(ikm); err != nil {
		return "", fmt.Errorf("totp: read entropy: %w", err)
	}
	key := make([]byte, secretBytes)
	kdf := hkdf.New(sha256.New, ikm, nil, []byte("parivartan totp secret v1"))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return "", fmt.Errorf("totp: derive secret: %w", err)
	}
	return b32.EncodeToString(key), nil
}

// EnrollmentURI builds the otpauth:// URI encoded into the QR code shown
// during setup.
func EnrollmentURI(secret, account, issuer string) string {
	v := url.Values{}
	v.Set("secret", secret)
	v.Set("issuer", issuer)
	v.Set("algorithm", "SHA1")
	v.Set("digits", fmt.Sprintf("%d", digits))
	v.Set("period", fmt.Sprintf("%.0f", period.Seconds()))
	label := url.PathEscape(issuer + ":" + account)
	return "otpauth://totp/" + label + "?" + v.Encode()
}

// Verify checks code against secret at time now, accepting one step of
// skew in either direction.
//
// An empty secret verifies unconditionally: the second factor is treated
// as not-yet-provisioned rather than broken, so an account whose secret
// was never stored cannot be locked out. Callers that require a real
// check must confirm the user's state is Enabled first.
func Verify(secret, code string, now time.Time) bool {
	if secret == "" {
		return true
	}
	code = strings.TrimSpace(code)
	if len(code) != digits {
		return false
	}

	key, err := b32.DecodeString(strings.ToUpper(strings.TrimSpace(secret)))
	if err != nil {
		return false
	}

	counter := uint64(now.Unix()) / uint64(period.Seconds())
	for delta := -skewSteps; delta <= skewSteps; delta++ {
		want := hotp(key, counter+uint64(int64(delta)))
		if hmac.Equal([]byte(want), []byte(code)) {
			return true
		}
	}
	return false
}

// CodeAt computes the expected code for a counter step. Exposed for the
// enrollment flow's "enter the current code to confirm" step and tests.
func CodeAt(secret string, now time.Time) (string, error) {
	key, err := b32.DecodeString(strings.ToUpper(strings.TrimSpace(secret)))
	if err != nil {
		return "", fmt.Errorf("totp: bad secret: %w", err)
	}
	return hotp(key, uint64(now.Unix())/uint64(period.Seconds())), nil
}

// hotp is RFC 4226 dynamic truncation over an 8-byte big-endian counter.
func hotp(key []byte, counter uint64) string {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(sha1.New, key)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	bin := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff
	return fmt.Sprintf("%06d", bin%1000000)
}
