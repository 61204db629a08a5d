package poststore_test

import (
	"reflect"
	"testing"

	poststore "github.com/parivartan/platform/internal/app/store/posts"
)

func TestEncodeImages(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want string
	}{
		{"empty list", nil, ""},
		{"single image stays bare", []string{"https://cdn.example/a.jpg"}, "https://cdn.example/a.jpg"},
		{"multiple images become JSON", []string{"a.jpg", "b.jpg"}, `["a.jpg","b.jpg"]`},
		{"blank entries dropped", []string{"", "a.jpg", "  "}, "a.jpg"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := poststore.EncodeImages(tc.in); got != tc.want {
				t.Errorf("EncodeImages = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDecodeImages(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"bare url", "https://cdn.example/a.jpg", []string{"https://cdn.example/a.jpg"}},
		{"bare data uri", "data:image/png;base64,AAAA", []string{"data:image/png;base64,AAAA"}},
		{"json array", `["a.jpg","b.jpg"]`, []string{"a.jpg", "b.jpg"}},
		{"malformed json treated as bare", `["a.jpg",`, []string{`["a.jpg",`}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := poststore.DecodeImages(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("DecodeImages(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestImageRoundTrip(t *testing.T) {
	in := []string{"a.jpg", "b.jpg", "c.jpg"}
	got := poststore.DecodeImages(poststore.EncodeImages(in))
	if !reflect.DeepEqual(got, in) {
		t.Errorf("round trip = %#v, want %#v", got, in)
	}
}
