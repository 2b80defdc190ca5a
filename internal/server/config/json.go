package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/blogkeeper/internal/flagx"
	"github.com/dmitrijs2005/blogkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON config file. Duration
// fields accept "1h" style strings or integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	Store                       string         `json:"store"`
	DatabaseDSN                 string         `json:"database_dsn"`
	BoltPath                    string         `json:"bolt_path"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	ShutdownTimeout             timex.Duration `json:"shutdown_timeout"`
	BootstrapUser               string         `json:"bootstrap_user"`
	BootstrapPassword           string         `json:"bootstrap_password"`
}

// parseJson loads the file named by -c/-config and copies every field that
// is present in it into config. Nothing happens when no file is given.
// An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.Store, c.Store)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.BoltPath, c.BoltPath)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.BootstrapUser, c.BootstrapUser)
	setString(&config.BootstrapPassword, c.BootstrapPassword)
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
