package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. CARPRICE_SERVER_ADDRESS.
const EnvPrefix = "CARPRICE"

// NewViper returns a viper instance reading CARPRICE_* environment variables,
// with nested keys joined by underscores.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// ApplyViper overlays values set in v (environment or bound flags) onto c.
// Keys that v does not know about leave c untouched.
func (c *Config) ApplyViper(v *viper.Viper) {
	setString(v, "normalizer.input", &c.Normalizer.Input)
	setString(v, "normalizer.output", &c.Normalizer.Output)
	setString(v, "normalizer.report", &c.Normalizer.Report)
	setInt(v, "normalizer.preview_rows", &c.Normalizer.PreviewRows)

	setString(v, "server.address", &c.Server.Address)
	setInt(v, "server.read_timeout_sec", &c.Server.ReadTimeoutSec)
	setInt(v, "server.write_timeout_sec", &c.Server.WriteTimeoutSec)
	setInt(v, "server.shutdown_timeout_sec", &c.Server.ShutdownTimeoutSec)

	setString(v, "model.backend", &c.Model.Backend)
	setString(v, "model.artifact", &c.Model.Artifact)
	setString(v, "model.remote_url", &c.Model.RemoteURL)
	setInt(v, "model.timeout_sec", &c.Model.TimeoutSec)

	setString(v, "logging.level", &c.Logging.Level)
	setString(v, "logging.format", &c.Logging.Format)
}

func setString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		*dst = v.GetString(key)
	}
}

func setInt(v *viper.Viper, key string, dst *int) {
	if v.IsSet(key) {
		*dst = v.GetInt(key)
	}
}
