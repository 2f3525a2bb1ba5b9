// Package config handles configuration for the FieldVault server,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the FieldVault server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP API.
//   - AssetFilePath / PMFilePath: the two source workbooks (read-only).
//   - UploadDir: root for per-submission output directories; the shared
//     image staging area lives in its Images subdirectory.
//   - DatabasePath: sqlite database file.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible mirror.
//   - S3Bucket / S3Region / S3BaseEndpoint / S3Folder: mirror target; the
//     folder is the fixed key prefix archives are uploaded under.
//   - ShutdownTimeout: graceful HTTP shutdown budget.
type Config struct {
	EndpointAddr    string
	AssetFilePath   string
	PMFilePath      string
	UploadDir       string
	DatabasePath    string
	S3RootUser      string
	S3RootPassword  string
	S3Bucket        string
	S3Region        string
	S3BaseEndpoint  string
	S3Folder        string
	ShutdownTimeout time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":5000"
	c.AssetFilePath = "Asset List.xlsx"
	c.PMFilePath = "PM List.xlsx"
	c.UploadDir = "uploads"
	c.DatabasePath = "data.db"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "fieldvault"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.S3Folder = "archives"
	c.ShutdownTimeout = 5 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
