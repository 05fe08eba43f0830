package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env string
	} `mapstructure:"app"`

	HTTP struct {
		Addr        string
		CORSOrigins []string `mapstructure:"cors_origins"`
	} `mapstructure:"http"`

	Mongo struct {
		URI      string
		Database string
	} `mapstructure:"mongo"`

	Uploads struct {
		Dir string
	} `mapstructure:"uploads"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`
}

// Load reads the YAML config at path. Environment variables with the APP_
// prefix (APP_MONGO_URI, APP_HTTP_ADDR, ...) override file values, which is
// how deployments inject secrets.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", "dev")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.cors_origins", []string{"*"})
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "doctorshift")
	v.SetDefault("uploads.dir", "uploads")
	v.SetDefault("metrics.enabled", true)

	var c Config
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return c, err
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}
