package config

import (
	"flag"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"production"`
	PGSQL      PQSQL      `yaml:"pgsql" env-required:"true"`
	Redis      Redis      `yaml:"redis"`
	HTTPServer HTTPServer `yaml:"http_server" env-required:"true"`
	Pinning    Pinning    `yaml:"pinning"`
	Challenge  Challenge  `yaml:"challenge"`
	RateLimit  RateLimit  `yaml:"rate_limit"`
}

type HTTPServer struct {
	Address string `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4000"`
}

type PQSQL struct {
	Host     string `yaml:"host" env:"PG_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"PG_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"PG_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"PG_PASSWORD" env-default:"password"`
	DBName   string `yaml:"dbname" env:"PG_DBNAME" env-default:"solpin_db"`
	SSLMode  string `yaml:"sslmode" env:"PG_SSLMODE" env-default:"disable"`
}

type Redis struct {
	Address  string `yaml:"address" env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// Pinning configures the content-addressed storage provider. Token is not
// required at startup; uploads fail until it is set.
type Pinning struct {
	Endpoint    string `yaml:"endpoint" env:"PINNING_ENDPOINT" env-default:"https://api.web3.storage"`
	Token       string `yaml:"token" env:"PINNING_TOKEN"`
	Gateway     string `yaml:"gateway" env:"PINNING_GATEWAY" env-default:"https://ipfs.io/ipfs"`
	MaxFileSize int64  `yaml:"max_file_size" env:"PINNING_MAX_FILE_SIZE" env-default:"52428800"`
}

// Challenge controls server-issued signing nonces. When Required is false the
// verifier accepts any client-chosen message, matching the original devnet
// behavior.
type Challenge struct {
	Required   bool `yaml:"required" env:"CHALLENGE_REQUIRED" env-default:"false"`
	TTLSeconds int  `yaml:"ttl_seconds" env:"CHALLENGE_TTL_SECONDS" env-default:"300"`
}

type RateLimit struct {
	Enabled       bool  `yaml:"enabled" env:"RATE_LIMIT_ENABLED" env-default:"true"`
	UploadsPerMin int64 `yaml:"uploads_per_min" env:"RATE_LIMIT_UPLOADS_PER_MIN" env-default:"20"`
}

func MustLoad() *Config {
	var configPath string

	configPath = os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to config file")
		flag.Parse()
		configPath = *flags

		if configPath == "" {
			log.Fatal("config path must be provided")
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist at path: %s", configPath)
	}

	var cfg Config

	err := cleanenv.ReadConfig(configPath, &cfg)

	if err != nil {
		log.Fatalf("failed to read config: %s", err)
	}

	return &cfg
}
