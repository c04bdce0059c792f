package config

const (
	defaultConfigPath          = "~/.config/scenarr/config.toml"
	defaultProjectConfigFile   = "scenarr.toml"
	defaultDataDir             = "~/.local/share/scenarr"
	defaultLogDir              = "~/.local/share/scenarr/logs"
	defaultAPIBind             = "127.0.0.1:7488"
	defaultTolerance           = 95
	defaultFFprobeBinary       = "ffprobe"
	defaultProbeTimeoutSeconds = 30
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// DefaultTolerance is the minimum title score used when no tolerance is configured.
const DefaultTolerance = defaultTolerance

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Matching: Matching{
			Tolerance:           defaultTolerance,
			FFprobeBinary:       defaultFFprobeBinary,
			ProbeTimeoutSeconds: defaultProbeTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
