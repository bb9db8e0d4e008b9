package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	Storage  StorageConfig  `mapstructure:"storage"`
	File     *FileConfig    `mapstructure:"file"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
	// BaseURL is the public origin used to build share URLs
	// (<base_url>/share/<id>).
	BaseURL string `mapstructure:"base_url"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Production bool   `mapstructure:"production"`
}

// StorageConfig configures the MinIO blob store backing uploads.
type StorageConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type FileConfig struct {
	// MaxFileSize is the upload size limit in bytes. Zero means the
	// default (50MB).
	MaxFileSize int64 `mapstructure:"max_file_size"`
}

var GlobalConfig Config

// Init loads config/config.yaml from the project root.
func Init() error {
	return load("config")
}

// InitTest loads config/config.test.yaml so tests can point at local
// test dependencies instead of the real ones.
func InitTest() error {
	return load("config.test")
}

func load(name string) error {
	// Resolve the project root relative to this source file so config
	// loads regardless of the working directory.
	_, b, _, _ := runtime.Caller(0)
	basepath := filepath.Dir(filepath.Dir(filepath.Dir(b)))

	viper.SetConfigName(name)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(filepath.Join(basepath, "config"))

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := viper.Unmarshal(&GlobalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}
