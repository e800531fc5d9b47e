package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	StoreDynamoDB = "dynamodb"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Database DatabaseConfig
	AWS      AWSConfig
	Dynamo   DynamoConfig
	S3       S3Config
	Upload   UploadConfig
	JWT      JWTConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type StoreConfig struct {
	Driver string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
	Migrate  bool
}

type AWSConfig struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

type DynamoConfig struct {
	UsersTable       string
	UsernameIndex    string
	PhoneNumberIndex string
	AuthTokensTable  string
	ProductsTable    string
}

type S3Config struct {
	Bucket        string
	PublicBaseURL string
}

type UploadConfig struct {
	MaxImageBytes int64
}

type JWTConfig struct {
	Secret          string
	PreviousSecrets []string
	ExpiryHours     int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "product-app")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("STORE_DRIVER", StoreDynamoDB)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "products")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_MIGRATE", true)
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("USERS_TABLE", "users")
	viper.SetDefault("USERNAME_INDEX", "UsernameIndex")
	viper.SetDefault("PHONE_NUMBER_INDEX", "PhoneNumberIndex")
	viper.SetDefault("AUTH_TOKENS_TABLE", "auth_tokens")
	viper.SetDefault("PRODUCTS_TABLE", "products")
	viper.SetDefault("UPLOAD_MAX_IMAGE_BYTES", 5<<20)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)

	// The .env file is optional; deployed instances are configured through the environment.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(viper.GetString("STORE_DRIVER")),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
			Migrate:  viper.GetBool("DB_MIGRATE"),
		},
		AWS: AWSConfig{
			Region:          viper.GetString("AWS_REGION"),
			Endpoint:        viper.GetString("AWS_ENDPOINT"),
			AccessKeyID:     viper.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: viper.GetString("AWS_SECRET_ACCESS_KEY"),
		},
		Dynamo: DynamoConfig{
			UsersTable:       viper.GetString("USERS_TABLE"),
			UsernameIndex:    viper.GetString("USERNAME_INDEX"),
			PhoneNumberIndex: viper.GetString("PHONE_NUMBER_INDEX"),
			AuthTokensTable:  viper.GetString("AUTH_TOKENS_TABLE"),
			ProductsTable:    viper.GetString("PRODUCTS_TABLE"),
		},
		S3: S3Config{
			Bucket:        viper.GetString("PRODUCT_BUCKET_NAME"),
			PublicBaseURL: viper.GetString("S3_PUBLIC_BASE_URL"),
		},
		Upload: UploadConfig{
			MaxImageBytes: viper.GetInt64("UPLOAD_MAX_IMAGE_BYTES"),
		},
		JWT: JWTConfig{
			Secret:          viper.GetString("JWT_SECRET"),
			PreviousSecrets: splitList(viper.GetString("JWT_PREVIOUS_SECRETS")),
			ExpiryHours:     viper.GetInt("JWT_EXPIRY_HOURS"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDynamoDB, StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWT.ExpiryHours <= 0 {
		return fmt.Errorf("JWT_EXPIRY_HOURS must be positive, got %d", c.JWT.ExpiryHours)
	}
	if c.S3.Bucket == "" {
		return errors.New("PRODUCT_BUCKET_NAME is required")
	}
	if c.Upload.MaxImageBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_IMAGE_BYTES must be positive, got %d", c.Upload.MaxImageBytes)
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
