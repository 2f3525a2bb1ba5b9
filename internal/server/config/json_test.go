package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseJson_OverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"endpoint_addr": ":9999",
		"asset_file_path": "/data/Asset List.xlsx",
		"pm_file_path": "/data/PM List.xlsx",
		"upload_dir": "/data/uploads",
		"database_path": "/data/data.db",
		"s3_root_user": "mirror",
		"s3_root_password": "pw",
		"s3_bucket": "bkt",
		"s3_region": "eu-west-1",
		"s3_base_endpoint": "http://minio:9000/",
		"s3_folder": "field-archives",
		"shutdown_timeout": "12s"
	}`), 0o660))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"fieldvault", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, ":9999", cfg.EndpointAddr)
	require.Equal(t, "/data/uploads", cfg.UploadDir)
	require.Equal(t, "field-archives", cfg.S3Folder)
	require.Equal(t, 12*time.Second, cfg.ShutdownTimeout)
}

func TestParseJson_NoFlagNoOp(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"fieldvault"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, ":5000", cfg.EndpointAddr)
}
