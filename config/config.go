package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name string `mapstructure:"name"`
	} `mapstructure:"app"`
	Server struct {
		Host string `mapstructure:"host"`
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	Token struct {
		Secret     string `mapstructure:"secret"`
		AccessExp  int64  `mapstructure:"access_exp"`
		RefreshExp int64  `mapstructure:"refresh_exp"`
	} `mapstructure:"token"`
	Cookie struct {
		AccessTokenName    string `mapstructure:"access_token_name"`
		AccessTokenMaxAge  int64  `mapstructure:"access_token_max_age"`
		RefreshTokenName   string `mapstructure:"refresh_token_name"`
		RefreshTokenMaxAge int64  `mapstructure:"refresh_token_max_age"`
		Domain             string `mapstructure:"domain"`
		Secure             bool   `mapstructure:"secure"`
	} `mapstructure:"cookie"`
}

var AppConfig Config

// LoadConfig reads configuration from the environment, with an optional .env
// file in the given path as a fallback for local development. The token
// signing secret has no default; startup aborts without it.
func LoadConfig(path string) {
	viper.SetDefault("app.name", "admin-server")
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("database.path", "admin.db")
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", "6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("token.secret", "")
	viper.SetDefault("token.access_exp", 3600)
	viper.SetDefault("token.refresh_exp", 86400)
	viper.SetDefault("cookie.access_token_name", "access_token")
	viper.SetDefault("cookie.access_token_max_age", 0)
	viper.SetDefault("cookie.refresh_token_name", "refresh_token")
	viper.SetDefault("cookie.refresh_token_max_age", 0)
	viper.SetDefault("cookie.domain", "localhost")
	viper.SetDefault("cookie.secure", false)

	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("Error reading config file, %s", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	if AppConfig.Token.Secret == "" {
		log.Fatal("TOKEN_SECRET must be set")
	}

	// Cookie lifetimes track the token lifetimes unless overridden.
	if AppConfig.Cookie.AccessTokenMaxAge == 0 {
		AppConfig.Cookie.AccessTokenMaxAge = AppConfig.Token.AccessExp
	}
	if AppConfig.Cookie.RefreshTokenMaxAge == 0 {
		AppConfig.Cookie.RefreshTokenMaxAge = AppConfig.Token.RefreshExp
	}
}
