// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var strict = bluemonday.StrictPolicy()

// Clean strips all HTML from user-supplied text. Posts, comments, chat
// messages, and profile fields are plain text; markup is never stored.
func Clean(s string) string {
	return strict.Sanitize(s)
}
