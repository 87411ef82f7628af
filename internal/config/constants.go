package config

// Lua schema field names and globals
const (
	luaGlobalDriversync = "driversync"
	luaFieldDownloadDir = "download_dir"
	luaFieldChrome      = "chrome"
	luaFieldBaseURL     = "base_url"
	luaFieldVerbose     = "verbose"
)

// maxConfigSize bounds the size of a config file read from disk.
const maxConfigSize = 1 << 20
