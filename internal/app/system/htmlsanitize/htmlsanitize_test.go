package htmlsanitize_test

import (
	"testing"

	"github.com/parivartan/platform/internal/app/system/htmlsanitize"
)

func TestClean(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain text stays", "plain text stays"},
		{"<script>alert(1)</script>hi", "hi"},
		{"<b>bold</b> removed, text kept", "bold removed, text kept"},
		{`<img src=x onerror=alert(1)>`, ""},
	}
	for _, tc := range cases {
		if got := htmlsanitize.Clean(tc.in); got != tc.want {
			t.Errorf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
