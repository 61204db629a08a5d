package totp_test

import (
	"strings"
	"testing"
	"time"

	"github.com/parivartan/platform/internal/app/system/totp"
)

// RFC 6238 appendix B test times, SHA1 rows, truncated to 6 digits.
// The reference secret is "12345678901234567890" in base32.
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

func TestVerifyRFCVectors(t *testing.T) {
	cases := []struct {
		unix int64
		code string
	}{
		{59, "287082"},
		{1111111109, "081804"},
		{1111111111, "050471"},
		{1234567890, "005924"},
		{2000000000, "279037"},
		{20000000000, "353130"},
	}
	for _, tc := range cases {
		now := time.Unix(tc.unix, 0).UTC()
		if !totp.Verify(rfcSecret, tc.code, now) {
			t.Errorf("Verify rejected reference code %s at t=%d", tc.code, tc.unix)
		}
		got, err := totp.CodeAt(rfcSecret, now)
		if err != nil {
			t.Fatalf("CodeAt: %v", err)
		}
		if got != tc.code {
			t.Errorf("CodeAt(t=%d) = %q, want %q", tc.unix, got, tc.code)
		}
	}
}

func TestVerifySkewWindow(t *testing.T) {
	base := time.Unix(1111111109, 0).UTC()
	code, err := totp.CodeAt(rfcSecret, base)
	if err != nil {
		t.Fatal(err)
	}

	if !totp.Verify(rfcSecret, code, base.Add(30*time.Second)) {
		t.Error("code from previous step rejected inside skew window")
	}
	if !totp.Verify(rfcSecret, code, base.Add(-30*time.Second)) {
		t.Error("code from next step rejected inside skew window")
	}
	if totp.Verify(rfcSecret, code, base.Add(90*time.Second)) {
		t.Error("code accepted two steps outside the window")
	}
}

func TestVerifyEmptySecretPasses(t *testing.T) {
	// Accounts with no stored secret are not locked out.
	if !totp.Verify("", "000000", time.Now()) {
		t.Error("empty secret must verify")
	}
	if !totp.Verify("", "", time.Now()) {
		t.Error("empty secret must verify regardless of code")
	}
}

func TestVerifyRejectsMalformedInput(t *testing.T) {
	now := time.Now()
	if totp.Verify(rfcSecret, "12345", now) {
		t.Error("5-digit code accepted")
	}
	if totp.Verify(rfcSecret, "abcdef", now) {
		t.Error("non-numeric code accepted")
	}
	if totp.Verify("not!base32", "123456", now) {
		t.Error("undecodable secret accepted")
	}
}

func TestGenerateSecret(t *testing.T) {
	a, err := totp.GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret: %v", err)
	}
	b, err := totp.GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret: %v", err)
	}
	if a == b {
		t.Error("two generated secrets are identical")
	}
	if len(a) != 32 { // 20 bytes, base32 without padding
		t.Errorf("secret length = %d, want 32", len(a))
	}
	if strings.ToUpper(a) != a {
		t.Errorf("secret %q not upper-case base32", a)
	}
}

func TestEnrollmentURI(t *testing.T) {
	uri := totp.EnrollmentURI("ABC234", "asha@example.com", "Parivartan")
	if !strings.HasPrefix(uri, "otpauth://totp/Parivartan:asha@example.com?") {
		t.Errorf("unexpected URI prefix: %s", uri)
	}
	for _, want := range []string{"secret=ABC234", "issuer=Parivartan", "digits=6", "period=30", "algorithm=SHA1"} {
		if !strings.Contains(uri, want) {
			t.Errorf("URI missing %q: %s", want, uri)
		}
	}
}
