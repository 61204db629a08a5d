package poststore

import (
	"encoding/json"
	"strings"
)

// The stored image field predates multi-image posts: old rows hold a bare
// URL or data URI, newer multi-image rows hold a JSON string array in the
// same field. EncodeImages and DecodeImages keep both shapes readable.

// EncodeImages packs an image list into the stored field. One image is
// stored bare for compatibility with old readers; several are stored as a
// JSON array.
func EncodeImages(images []string) string {
	kept := make([]string, 0, len(images))
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			kept = append(kept, img)
		}
	}
	switch len(kept) {
	case 0:
		return ""
	case 1:
		return kept[0]
	default:
		b, err := json.Marshal(kept)
		if err != nil {
			return kept[0]
		}
		return string(b)
	}
}

// DecodeImages unpacks the stored field. JSON arrays decode as-is; any
// other non-empty value is a single bare image.
func DecodeImages(stored string) []string {
	stored = strings.TrimSpace(stored)
	if stored == "" {
		return nil
	}
	if strings.HasPrefix(stored, "[") {
		var out []string
		if json.Unmarshal([]byte(stored), &out) == nil {
			return out
		}
	}
	return []string{stored}
}
