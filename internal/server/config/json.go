package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/metco-eng/fieldvault/internal/flagx"
	"github.com/metco-eng/fieldvault/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "5s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON config
// files; after unmarshalling its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr    string         `json:"endpoint_addr"`
	AssetFilePath   string         `json:"asset_file_path"`
	PMFilePath      string         `json:"pm_file_path"`
	UploadDir       string         `json:"upload_dir"`
	DatabasePath    string         `json:"database_path"`
	S3RootUser      string         `json:"s3_root_user"`
	S3RootPassword  string         `json:"s3_root_password"`
	S3Bucket        string         `json:"s3_bucket"`
	S3Region        string         `json:"s3_region"`
	S3BaseEndpoint  string         `json:"s3_base_endpoint"`
	S3Folder        string         `json:"s3_folder"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; when neither is set, no JSON file is loaded. An unreadable or
// invalid file panics: a requested config that cannot be applied must not
// be ignored silently.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.AssetFilePath = c.AssetFilePath
	config.PMFilePath = c.PMFilePath
	config.UploadDir = c.UploadDir
	config.DatabasePath = c.DatabasePath
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.S3Folder = c.S3Folder
	config.ShutdownTimeout = time.Duration(c.ShutdownTimeout.Duration)
}
