package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceBLS      = "bls"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type RatesData struct {
	Source string `mapstructure:"source"`
	Path   string `mapstructure:"path"`
}

type CPIData struct {
	Source string `mapstructure:"source"`
	Path   string `mapstructure:"path"`
}

type Data struct {
	Rates              RatesData `mapstructure:"rates"`
	CPI                CPIData   `mapstructure:"cpi"`
	RefreshIntervalSec int       `mapstructure:"refresh_interval_sec"`
}

type Cache struct {
	MaxItems int64 `mapstructure:"max_items"`
}

type ExchangeRateAPI struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type BLSAPI struct {
	BaseURL   string `mapstructure:"base_url"`
	SeriesID  string `mapstructure:"series_id"`
	APIKey    string `mapstructure:"api_key"`
	StartYear int    `mapstructure:"start_year"`
}

type AppConfig struct {
	HTTPServer      HTTPServer      `mapstructure:"http_server"`
	Logging         Logging         `mapstructure:"logging"`
	DbServer        DbServer        `mapstructure:"db_server"`
	HTTPClient      HTTPClient      `mapstructure:"http_client"`
	Data            Data            `mapstructure:"data"`
	Cache           Cache           `mapstructure:"cache"`
	ExchangeRateAPI ExchangeRateAPI `mapstructure:"exchange_rate_api"`
	BLSAPI          BLSAPI          `mapstructure:"bls_api"`
}

// UsesPostgres reports whether any dataset is read from Postgres.
func (c *AppConfig) UsesPostgres() bool {
	return c.Data.Rates.Source == SourcePostgres || c.Data.CPI.Source == SourcePostgres
}

func (c *AppConfig) Validate() error {
	switch c.Data.Rates.Source {
	case SourceFile:
		if c.Data.Rates.Path == "" {
			return errors.New("data.rates.path is required for file source")
		}
	case SourcePostgres:
	default:
		return fmt.Errorf("unsupported data.rates.source %q", c.Data.Rates.Source)
	}

	switch c.Data.CPI.Source {
	case SourceFile:
		if c.Data.CPI.Path == "" {
			return errors.New("data.cpi.path is required for file source")
		}
	case SourcePostgres:
	case SourceBLS:
		if c.BLSAPI.BaseURL == "" || c.BLSAPI.SeriesID == "" {
			return errors.New("bls_api.base_url and bls_api.series_id are required for bls source")
		}
	default:
		return fmt.Errorf("unsupported data.cpi.source %q", c.Data.CPI.Source)
	}

	if c.Data.RefreshIntervalSec < 0 {
		return errors.New("data.refresh_interval_sec must not be negative")
	}
	// One anonymous load from 1913 already takes a dozen of the 25 daily unregistered BLS requests.
	if c.Data.CPI.Source == SourceBLS && c.Data.RefreshIntervalSec > 0 && c.BLSAPI.APIKey == "" {
		return errors.New("bls_api.api_key is required when data.cpi.source is bls and data.refresh_interval_sec is set")
	}
	return nil
}

func Init() (*AppConfig, error) {
	return Load(envOr("CONFIG_PATH", "config.yaml"))
}

// Load reads configFile, then .env and the process environment on top of it.
func Load(configFile string) (*AppConfig, error) {
	var cfg AppConfig

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetDefault("http_server.port", "8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("data.rates.source", SourceFile)
	v.SetDefault("data.rates.path", "data/exchange_rates.json")
	v.SetDefault("data.cpi.source", SourceFile)
	v.SetDefault("data.cpi.path", "data/cpi_us.csv")
	v.SetDefault("data.refresh_interval_sec", 0)
	v.SetDefault("cache.max_items", 10000)
	v.SetDefault("exchange_rate_api.base_url", "https://v6.exchangerate-api.com/v6")
	v.SetDefault("bls_api.base_url", "https://api.bls.gov/publicAPI/v2/timeseries/data/")
	v.SetDefault("bls_api.series_id", "CUUR0000SA0")
	v.SetDefault("bls_api.start_year", 1913)

	// http server / logging env vars
	_ = v.BindEnv("http_server.port", "HTTP_PORT")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// dataset env vars
	_ = v.BindEnv("data.rates.source", "RATES_SOURCE")
	_ = v.BindEnv("data.rates.path", "RATES_PATH")
	_ = v.BindEnv("data.cpi.source", "CPI_SOURCE")
	_ = v.BindEnv("data.cpi.path", "CPI_PATH")
	_ = v.BindEnv("data.refresh_interval_sec", "DATA_REFRESH_INTERVAL_SEC")
	_ = v.BindEnv("cache.max_items", "CACHE_MAX_ITEMS")

	// external api env vars
	_ = v.BindEnv("exchange_rate_api.api_key", "EXCHANGE_RATE_API_KEY")
	_ = v.BindEnv("bls_api.api_key", "BLS_API_KEY")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
