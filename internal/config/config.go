package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// COVIDCHART_DATA_PATH.
const EnvPrefix = "COVIDCHART"

type Config struct {
	Data   DataConfig
	Log    LogConfig
	Server ServerConfig
	UI     UIConfig
	Export ExportConfig
}

type DataConfig struct {
	Path          string
	SkipMalformed bool `mapstructure:"skip_malformed"`
}

type LogConfig struct {
	File  string
	Level string
}

// ServerConfig enables the HTTP mode when Addr is set.
type ServerConfig struct {
	Addr string
}

type UIConfig struct {
	Countries []string
	StepDays  int `mapstructure:"step_days"`
}

// ExportConfig drives the one-shot exporters. Start and End default to the
// dataset range when empty.
type ExportConfig struct {
	HTML   string
	PNG    string
	Width  int
	Height int
	Start  string
	End    string
}

// Exporting reports whether a one-shot export was requested.
func (c Config) Exporting() bool { return c.Export.HTML != "" || c.Export.PNG != "" }

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.path", "covid.csv")
	v.SetDefault("data.skip_malformed", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("server.addr", "")
	v.SetDefault("ui.countries", []string{})
	v.SetDefault("ui.step_days", 7)
	v.SetDefault("export.html", "")
	v.SetDefault("export.png", "")
	v.SetDefault("export.width", 1200)
	v.SetDefault("export.height", 600)
	v.SetDefault("export.start", "")
	v.SetDefault("export.end", "")
}

// Flags registers the command line flags on fs. Their names map onto the
// config keys in Load.
func Flags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default ./covidchart.yaml or ./config/covidchart.yaml)")
	fs.String("data", "", "input CSV or JSON file")
	fs.Bool("skip-malformed", false, "skip malformed rows instead of aborting the load")
	fs.String("log-file", "", "write logs to this file (logs are discarded when empty)")
	fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.String("serve", "", "serve the HTTP API on this address instead of starting the UI, e.g. :8080")
	fs.StringSlice("countries", nil, "countries selected at startup")
	fs.Int("step", 0, "slider step in days")
	fs.String("export-html", "", "write the chart as HTML to this file and exit")
	fs.String("export-png", "", "write the chart as PNG to this file and exit")
	fs.Int("width", 0, "export width in pixels")
	fs.Int("height", 0, "export height in pixels")
	fs.String("start", "", "export window start (YYYY-MM-DD)")
	fs.String("end", "", "export window end (YYYY-MM-DD)")
}

var flagKeys = map[string]string{
	"data":           "data.path",
	"skip-malformed": "data.skip_malformed",
	"log-file":       "log.file",
	"log-level":      "log.level",
	"serve":          "server.addr",
	"countries":      "ui.countries",
	"step":           "ui.step_days",
	"export-html":    "export.html",
	"export-png":     "export.png",
	"width":          "export.width",
	"height":         "export.height",
	"start":          "export.start",
	"end":            "export.end",
}

// Load resolves the configuration from defaults, an optional YAML file,
// COVIDCHART_* environment variables and flags, lowest to highest
// precedence. fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfgFile := ""
	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
		if f := fs.Lookup("config"); f != nil {
			cfgFile = f.Value.String()
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("covidchart")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no component can work with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Data.Path) == "" {
		return errors.New("config: data.path is required")
	}
	if c.UI.StepDays < 1 {
		return fmt.Errorf("config: ui.step_days must be >= 1, got %d", c.UI.StepDays)
	}
	if c.Exporting() && (c.Export.Width < 100 || c.Export.Height < 100) {
		return fmt.Errorf("config: export size %dx%d too small", c.Export.Width, c.Export.Height)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	return nil
}
