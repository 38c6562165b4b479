package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadConfig reads configuration from config.<env>.yaml and LEREDDIT_*
// environment variables. A missing config file is fine; env vars and
// defaults cover everything.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	setDefaults()

	env := strings.ToLower(os.Getenv("APP_ENV"))
	if env == "" {
		env = "development"
	}
	viper.SetDefault("environment", env)

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName(fmt.Sprintf("config.%s", env))
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("LEREDDIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "10s")
	viper.SetDefault("server.write_timeout", "10s")
	viper.SetDefault("server.idle_timeout", "60s")
	viper.SetDefault("server.shutdown_timeout", "15s")
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.dbname", "lereddit")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.auto_migrate", true)

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("session.cookie_name", "qid")
	// Ten years: sessions persist until an explicit logout.
	viper.SetDefault("session.ttl", "87600h")

	viper.SetDefault("security.password_hash.memory", 65536)
	viper.SetDefault("security.password_hash.iterations", 3)
	viper.SetDefault("security.password_hash.parallelism", 2)
	viper.SetDefault("security.password_hash.salt_length", 16)
	viper.SetDefault("security.password_hash.key_length", 32)

	viper.SetDefault("logging.level", "info")
}
