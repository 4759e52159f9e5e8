package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/pricing"
)

type Application struct {
	Env       string `mapstructure:"env"        json:"env"`
	Host      string `mapstructure:"host"       json:"host"`
	LogLevel  string `mapstructure:"log_level"  json:"log_level"`
	SecretKey string `mapstructure:"secret_key" json:"-"`
	Port      int    `mapstructure:"port"       json:"port"`
}

type Database struct {
	DbName          string        `mapstructure:"name"               json:"name"`
	Host            string        `mapstructure:"host"               json:"host"`
	MigrationPath   string        `mapstructure:"migration_path"     json:"migration_path"`
	Password        string        `mapstructure:"password"           json:"-"`
	TimeZone        string        `mapstructure:"timezone"           json:"timezone"`
	Username        string        `mapstructure:"username"           json:"username"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"  json:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time" json:"max_conn_idle_time"`
	MaxConnections  int32         `mapstructure:"max_connections"    json:"max_connections"`
	MinConnections  int32         `mapstructure:"min_connections"    json:"min_connections"`
	Port            uint16        `mapstructure:"port"               json:"port"`
}

type Cache struct {
	Host     string `mapstructure:"host"      json:"host"`
	Password string `mapstructure:"password"  json:"-"`
	Database int    `mapstructure:"database"  json:"database"`
	PoolSize int    `mapstructure:"pool_size" json:"pool_size"`
	Port     uint16 `mapstructure:"port"      json:"port"`
}

func (c Cache) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type Otel struct {
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`
}

func (o Otel) Endpoint() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

// Pricing keeps amounts as strings so they reach decimal.Decimal without a
// float round trip.
type Pricing struct {
	CurrencyCode          string `mapstructure:"currency_code"           json:"currency_code"`
	CurrencySymbol        string `mapstructure:"currency_symbol"         json:"currency_symbol"`
	TaxRatePercent        string `mapstructure:"tax_rate_percent"        json:"tax_rate_percent"`
	FreeShippingThreshold string `mapstructure:"free_shipping_threshold" json:"free_shipping_threshold"`
	ShippingFee           string `mapstructure:"shipping_fee"            json:"shipping_fee"`
}

func (p Pricing) Settings() (pricing.Settings, error) {
	taxRate, err := decimal.NewFromString(p.TaxRatePercent)
	if err != nil {
		return pricing.Settings{}, fmt.Errorf("failed parsing tax_rate_percent=%s with error=%w", p.TaxRatePercent, err)
	}
	threshold, err := decimal.NewFromString(p.FreeShippingThreshold)
	if err != nil {
		return pricing.Settings{}, fmt.Errorf("failed parsing free_shipping_threshold=%s with error=%w", p.FreeShippingThreshold, err)
	}
	fee, err := decimal.NewFromString(p.ShippingFee)
	if err != nil {
		return pricing.Settings{}, fmt.Errorf("failed parsing shipping_fee=%s with error=%w", p.ShippingFee, err)
	}
	if taxRate.IsNegative() || threshold.IsNegative() || fee.IsNegative() {
		return pricing.Settings{}, fmt.Errorf("pricing values must not be negative: %+v", p)
	}
	return pricing.Settings{
		Currency:              pricing.Currency{Code: p.CurrencyCode, Symbol: p.CurrencySymbol},
		TaxRatePercent:        taxRate,
		FreeShippingThreshold: threshold,
		ShippingFee:           fee,
	}, nil
}

type Payment struct {
	BaseURL   string        `mapstructure:"base_url"   json:"base_url"`
	ReturnURL string        `mapstructure:"return_url" json:"return_url"`
	Timeout   time.Duration `mapstructure:"timeout"    json:"timeout"`
}

const (
	BrokerDriverRedis = "redis"
	BrokerDriverAmqp  = "amqp"
)

type Broker struct {
	Driver string `mapstructure:"driver" json:"driver"`
	URL    string `mapstructure:"url"    json:"-"`
	Queue  string `mapstructure:"queue"  json:"queue"`
}

type Cart struct {
	KeyPrefix     string        `mapstructure:"key_prefix"     json:"key_prefix"`
	TTL           time.Duration `mapstructure:"ttl"            json:"ttl"`
	FlushInterval time.Duration `mapstructure:"flush_interval" json:"flush_interval"`
	BatchSize     int           `mapstructure:"batch_size"     json:"batch_size"`
}

type Config struct {
	Database    `mapstructure:"db"          json:"db"`
	Cache       `mapstructure:"cache"       json:"cache"`
	Application `mapstructure:"application" json:"application"`
	Otel        `mapstructure:"otel"        json:"otel"`
	Pricing     `mapstructure:"pricing"     json:"pricing"`
	Payment     `mapstructure:"payment"     json:"payment"`
	Broker      `mapstructure:"broker"      json:"broker"`
	Cart        `mapstructure:"cart"        json:"cart"`
}

var (
	once   sync.Once
	config *Config
)

func Get(c context.Context, filename string) *Config {
	once.Do(func() {
		logger := zerolog.Ctx(c).
			With().
			Str(constants.KEY_TAG, "main InitConfig").
			Str(constants.KEY_PROCESS, "init config").
			Str("filename", filename).
			Logger()

		viper.SetConfigName(filename)
		viper.AddConfigPath("./env")
		viper.SetConfigType("yaml")
		viper.SetDefault("db.max_conn_lifetime", 15*time.Minute)
		viper.SetDefault("db.max_conn_idle_time", 5*time.Minute)
		viper.SetDefault("cart.key_prefix", "cart")
		viper.SetDefault("cart.ttl", 30*24*time.Hour)
		viper.SetDefault("cart.flush_interval", 300*time.Millisecond)
		viper.SetDefault("cart.batch_size", 256)
		viper.SetDefault("payment.timeout", 10*time.Second)
		viper.SetDefault("broker.driver", BrokerDriverRedis)
		viper.SetDefault("broker.queue", constants.CHANNEL_ORDER_EVENTS)
		viper.AutomaticEnv()

		logger = logger.With().Str(constants.KEY_PROCESS, "reading config").Logger()
		logger.Info().Msg("reading config")
		err := viper.ReadInConfig()
		if err != nil {
			err = fmt.Errorf("error when reading config with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("read config")

		logger = logger.With().Str(constants.KEY_PROCESS, "unmarshaling config").Logger()
		logger.Info().Msg("unmarshaling config")
		cfg := Config{}
		err = viper.Unmarshal(&cfg)
		if err != nil {
			err = fmt.Errorf("error unmarshaling config with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		config = &cfg
		logger = logger.With().Any(constants.KEY_CONFIG, cfg).Logger()
		logger.Info().Msg("marshalled config")
	})
	return config
}
