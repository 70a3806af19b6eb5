package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Order    OrderConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type OrderConfig struct {
	DeliveryFee       float64
	TaxRate           float64
	MaxRetryAttempts  int
	CheckoutTxTimeout time.Duration
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "checkout")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "storefront")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("ORDER_DELIVERY_FEE", 40.0)
	viper.SetDefault("ORDER_TAX_RATE", 0.05)
	viper.SetDefault("ORDER_MAX_RETRY_ATTEMPTS", 3)
	viper.SetDefault("ORDER_CHECKOUT_TX_TIMEOUT", "5s")
	viper.SetDefault("LOG_LEVEL", "info")

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	checkoutTxTimeout, err := time.ParseDuration(viper.GetString("ORDER_CHECKOUT_TX_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Order: OrderConfig{
			DeliveryFee:       viper.GetFloat64("ORDER_DELIVERY_FEE"),
			TaxRate:           viper.GetFloat64("ORDER_TAX_RATE"),
			MaxRetryAttempts:  viper.GetInt("ORDER_MAX_RETRY_ATTEMPTS"),
			CheckoutTxTimeout: checkoutTxTimeout,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
