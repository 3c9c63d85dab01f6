package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "CATALOG_CONFIG_FILE"

const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceSQL      = "sql"
)

type fixtures struct {
	Source string `mapstructure:"source"`
	Path   string `mapstructure:"path"`
	SQLDB  string `mapstructure:"sql_db"`
}

type topics struct {
	SearchEvents string `mapstructure:"search_events"`
}

type brokerTLS struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

type broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             topics    `mapstructure:"topics"`
	TLS                brokerTLS `mapstructure:"tls"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	Fixtures       fixtures   `mapstructure:"fixtures"`
	Broker         broker     `mapstructure:"broker"`
}

// SearchEventsEnabled reports whether search events go to the broker.
func (c Config) SearchEventsEnabled() bool {
	return len(c.Broker.SeedBrokers) != 0
}

func (c Config) BrokerTLSEnabled() bool {
	return c.Broker.TLS.CA != ""
}

// Load reads the config file named by the --config flag or the
// CATALOG_CONFIG_FILE variable and exits the process on failure.
func Load() Config {
	_ = godotenv.Load()

	cfg, err := Read(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

// Read parses the YAML file at path over the defaults.
func Read(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, err
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "INFO")
	v.SetDefault("http_server_addr", ":8080")
	v.SetDefault("fixtures.source", SourceEmbedded)
	v.SetDefault("fixtures.path", "")
	v.SetDefault("fixtures.sql_db", "")
	v.SetDefault("broker.seed_brokers", []string{})
	v.SetDefault("broker.schema_registry_urls", []string{})
	v.SetDefault("broker.topics.search_events", "catalog-search-events")
	v.SetDefault("broker.tls.ca", "")
	v.SetDefault("broker.tls.cert", "")
	v.SetDefault("broker.tls.key", "")
}

func (c Config) validate() error {
	switch c.Fixtures.Source {
	case SourceEmbedded:
	case SourceFile:
		if c.Fixtures.Path == "" {
			return fmt.Errorf("fixtures.path: required for %q source", SourceFile)
		}
	case SourceSQL:
		if c.Fixtures.SQLDB == "" {
			return fmt.Errorf("fixtures.sql_db: required for %q source", SourceSQL)
		}
	default:
		return fmt.Errorf("fixtures.source: unknown source %q", c.Fixtures.Source)
	}

	if c.SearchEventsEnabled() && len(c.Broker.SchemaRegistryURLs) == 0 {
		return fmt.Errorf("broker.schema_registry_urls: required with seed brokers")
	}
	return nil
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	cmdLine.ParseErrorsWhitelist.UnknownFlags = true
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q

	Fixtures:
	Source=%q
	Path=%q
	SQLDB=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	TLS=%t
	Topics:
		SearchEvents=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.Fixtures.Source,
		c.Fixtures.Path,
		redactDSN(c.Fixtures.SQLDB),
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.BrokerTLSEnabled(),
		c.Broker.Topics.SearchEvents,
	)
}

// redactDSN hides the password of a postgres URL.
func redactDSN(dsn string) string {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return dsn
	}
	creds, host, ok := strings.Cut(rest, "@")
	if !ok {
		return dsn
	}
	user, _, hasPass := strings.Cut(creds, ":")
	if !hasPass {
		return dsn
	}
	return scheme + "://" + user + ":***@" + host
}
