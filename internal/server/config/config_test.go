package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, ":5000", cfg.EndpointAddr)
	require.Equal(t, "Asset List.xlsx", cfg.AssetFilePath)
	require.Equal(t, "PM List.xlsx", cfg.PMFilePath)
	require.Equal(t, "uploads", cfg.UploadDir)
	require.Equal(t, "data.db", cfg.DatabasePath)
	require.Equal(t, "archives", cfg.S3Folder)
	require.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestParseFlags_OverridesDefaults(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"fieldvault",
		"-a", ":8080",
		"-d", "/tmp/test.db",
		"-o", "/tmp/uploads",
		"-t", "30",
	}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	require.Equal(t, ":8080", cfg.EndpointAddr)
	require.Equal(t, "/tmp/test.db", cfg.DatabasePath)
	require.Equal(t, "/tmp/uploads", cfg.UploadDir)
	require.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	// untouched fields keep their defaults
	require.Equal(t, "PM List.xlsx", cfg.PMFilePath)
}
