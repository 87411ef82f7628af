// Package config loads the optional driversync configuration file.
//
// Configuration files are Lua scripts executed in a sandboxed gopher-lua VM.
// The os, io, debug and module loading libraries are removed, so a config can
// only compute values, never touch the machine. A read-only global
// "platform" table describes the running system:
//
//	driversync = {
//	  download_dir = "./bin",
//	  chrome = platform.when(platform.is_windows, "D:/Portable/Chrome/chrome.exe"),
//	  base_url = "https://chromedriver.storage.googleapis.com",
//	  verbose = true,
//	}
//
// Every field is optional. A relative download_dir in a file loaded with
// ParseFile is resolved against the directory holding the file. Unknown
// fields are rejected so typos surface instead of being silently ignored.
package config
