// Package config loads farmstand's TOML configuration.
//
// # Resolution order
//
//  1. Built-in defaults
//  2. The config file (explicit path, else ~/.config/farmstand/config.toml)
//  3. FARMSTAND_BACKEND_URL and FARMSTAND_TOKEN
//  4. Command-line flags, applied by the caller with Config.Apply
//
// A missing config file is not an error.
//
// # TOML Format
//
//	backend_url = "http://127.0.0.1:5000"
//	token       = ""
//	token_file  = "~/.config/farmstand/token"
//	log_file    = "~/.local/state/farmstand/farmstand.log"
//
// All fields are optional. Tilde expansion is applied to token_file and
// log_file. When token_file is set the token is read from that file and
// reloaded whenever it changes.
package config
