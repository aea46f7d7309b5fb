package commands

import (
	"webprobe/lib/configutil"
	"webprobe/lib/httpclient"
)

type Config struct {
	Client httpclient.Config `json:"client"`
	// Database is the sqlite file discovered elements are written to.
	Database          string `json:"database"`
	PlatformCacheSize int    `json:"platform_cache_size"`
	Debug             bool   `json:"debug"`
}

var defaultConfig = Config{
	Client: httpclient.Config{
		Timeout:      30,
		MaxRedirects: 10,
	},
	Database: "webprobe.db",
}

func loadConfig(name string) (Config, error) {
	return configutil.LoadOr(name, defaultConfig)
}
