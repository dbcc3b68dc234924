package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"prod"`
	HTTPServer `yaml:"http_server"`

	DBUser     string `yaml:"db_user" env:"DB_USER" env-default:"root"`
	DBPassword string `yaml:"db_password" env:"DB_PASSWORD" env-default:""`
	DBHost     string `yaml:"db_host" env:"DB_HOST" env-default:"localhost"`
	DBPort     int    `yaml:"db_port" env:"DB_PORT" env-default:"3306"`
	DBName     string `yaml:"db_name" env:"DB_NAME" env-default:"team_portal"`

	// Shared secret for the BM routes.
	BMLogin string `yaml:"bm_login" env:"BM_LOGIN" env-default:"bm"`
	BMPass  string `yaml:"bm_pass" env:"BM_PASS" env-required:"true"`

	// Seed the default branch org and products when the tables are empty.
	SeedDefaults bool `yaml:"seed_defaults" env-default:"true"`

	FrontendDir    string   `yaml:"frontend_dir" env-default:"./frontend-dist"`
	AllowedOrigins []string `yaml:"allowed_origins" env-default:"http://localhost:5173"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4002"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func MustConfig() *Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/local.yaml"
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		log.Fatalf("cannot read config %s: %s", path, err)
	}

	return &cfg
}
