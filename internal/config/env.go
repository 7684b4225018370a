package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreMySQL  = "mysql"
	StoreMemory = "memory"
)

type Env struct {
	AppAddr       string   `mapstructure:"app_addr"`
	GinMode       string   `mapstructure:"gin_mode"`
	LogLevel      string   `mapstructure:"log_level"`
	PublicBaseURL string   `mapstructure:"public_base_url"`
	StoreDriver   string   `mapstructure:"store_driver"`
	CORSOrigins   []string `mapstructure:"cors_allowed_origins"`
	JWTSecret     string   `mapstructure:"auth_jwt_secret"`
	WriteRoles    []string `mapstructure:"auth_write_roles"`
	DB            DBConfig `mapstructure:"db"`
}

type DBConfig struct {
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Host            string        `mapstructure:"host"`
	Name            string        `mapstructure:"name"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// LoadEnv reads defaults, then an optional config file (CONFIG_FILE, default
// config.yaml), then environment variables. A .env file in the working
// directory is loaded into the environment first when present.
func LoadEnv() (Env, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range v.AllKeys() {
		_ = v.BindEnv(key)
	}

	path := strings.TrimSpace(os.Getenv("CONFIG_FILE"))
	if path == "" {
		path = "config.yaml"
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Env{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var env Env
	if err := v.Unmarshal(&env); err != nil {
		return Env{}, fmt.Errorf("decode config: %w", err)
	}
	env.CORSOrigins = splitList(env.CORSOrigins)
	env.WriteRoles = splitList(env.WriteRoles)
	env.StoreDriver = strings.ToLower(strings.TrimSpace(env.StoreDriver))

	switch env.StoreDriver {
	case StoreMySQL, StoreMemory:
	default:
		return Env{}, fmt.Errorf("unsupported store_driver %q", env.StoreDriver)
	}
	return env, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_addr", ":8080")
	v.SetDefault("gin_mode", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("public_base_url", "")
	v.SetDefault("store_driver", StoreMySQL)
	v.SetDefault("cors_allowed_origins", []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
		"http://localhost:5173",
		"http://127.0.0.1:5173",
	})
	v.SetDefault("auth_jwt_secret", "")
	v.SetDefault("auth_write_roles", []string{})
	v.SetDefault("db.user", "root")
	v.SetDefault("db.password", "")
	v.SetDefault("db.host", "127.0.0.1:3306")
	v.SetDefault("db.name", "spaceover")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.conn_max_lifetime", 10*time.Minute)
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(in []string) []string {
	out := []string{}
	for _, item := range in {
		for _, p := range strings.Split(item, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
