// internal/domain/models/config.go
package models

// StartupConfig drives the popup shown once per browser session on the
// home page. Stored in system_config under the "startup_popup" key.
type StartupConfig struct {
	Enabled bool   `bson:"enabled" json:"enabled"`
	Title   string `bson:"title" json:"title"`
	Message string `bson:"message" json:"message"`
}
