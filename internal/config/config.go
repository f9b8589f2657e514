package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Juso     JusoConfig
	BldRgst  BldRgstConfig
	Telegram TelegramConfig
	Storage  StorageConfig
	Upload   UploadConfig
	Log      LogConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type AuthConfig struct {
	// JWTSecret - общий секрет с identity-провайдером (HS256)
	JWTSecret       string
	AdminSessionTTL time.Duration
}

// JusoConfig - настройки API поиска адресов (juso.go.kr)
type JusoConfig struct {
	BaseURL        string
	APIKey         string
	RequestTimeout time.Duration
}

// BldRgstConfig - настройки API реестра зданий (data.go.kr)
type BldRgstConfig struct {
	BaseURL        string
	APIKey         string
	RequestTimeout time.Duration
}

type TelegramConfig struct {
	BotToken       string
	ChannelID      string
	RequestTimeout time.Duration
}

// StorageConfig - S3-совместимое объектное хранилище вложений
type StorageConfig struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	Bucket       string
	UseSSL       bool
	SignedURLTTL time.Duration
}

type UploadConfig struct {
	MaxFileSize     int64
	MaxFiles        int
	ResizeThreshold int64
	ResizeMaxWidth  int
	JPEGQuality     int
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Auth: AuthConfig{
			JWTSecret:       viper.GetString("AUTH_JWT_SECRET"),
			AdminSessionTTL: time.Duration(viper.GetInt("ADMIN_SESSION_TTL")) * time.Second,
		},
		Juso: JusoConfig{
			BaseURL:        viper.GetString("JUSO_API_URL"),
			APIKey:         viper.GetString("JUSO_API_KEY"),
			RequestTimeout: time.Duration(viper.GetInt("JUSO_REQUEST_TIMEOUT")) * time.Second,
		},
		BldRgst: BldRgstConfig{
			BaseURL:        viper.GetString("BLD_RGST_API_URL"),
			APIKey:         viper.GetString("BLD_RGST_API_KEY"),
			RequestTimeout: time.Duration(viper.GetInt("BLD_RGST_REQUEST_TIMEOUT")) * time.Second,
		},
		Telegram: TelegramConfig{
			BotToken:       viper.GetString("TELEGRAM_BOT_TOKEN"),
			ChannelID:      viper.GetString("TELEGRAM_CHANNEL_ID"),
			RequestTimeout: time.Duration(viper.GetInt("TELEGRAM_REQUEST_TIMEOUT")) * time.Second,
		},
		Storage: StorageConfig{
			Endpoint:     viper.GetString("STORAGE_ENDPOINT"),
			AccessKey:    viper.GetString("STORAGE_ACCESS_KEY"),
			SecretKey:    viper.GetString("STORAGE_SECRET_KEY"),
			Bucket:       viper.GetString("STORAGE_BUCKET"),
			UseSSL:       viper.GetBool("STORAGE_USE_SSL"),
			SignedURLTTL: time.Duration(viper.GetInt("STORAGE_SIGNED_URL_TTL")) * time.Second,
		},
		Upload: UploadConfig{
			MaxFileSize:     viper.GetInt64("UPLOAD_MAX_FILE_SIZE"),
			MaxFiles:        viper.GetInt("UPLOAD_MAX_FILES"),
			ResizeThreshold: viper.GetInt64("UPLOAD_RESIZE_THRESHOLD"),
			ResizeMaxWidth:  viper.GetInt("UPLOAD_RESIZE_MAX_WIDTH"),
			JPEGQuality:     viper.GetInt("UPLOAD_JPEG_QUALITY"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
		},
	}

	// Set default values if not provided
	if cfg.Auth.AdminSessionTTL == 0 {
		cfg.Auth.AdminSessionTTL = 8 * time.Hour
	}
	if cfg.Juso.BaseURL == "" {
		cfg.Juso.BaseURL = "https://business.juso.go.kr"
	}
	if cfg.Juso.RequestTimeout == 0 {
		cfg.Juso.RequestTimeout = 10 * time.Second
	}
	if cfg.BldRgst.BaseURL == "" {
		cfg.BldRgst.BaseURL = "http://apis.data.go.kr"
	}
	if cfg.BldRgst.RequestTimeout == 0 {
		cfg.BldRgst.RequestTimeout = 10 * time.Second
	}
	if cfg.Telegram.RequestTimeout == 0 {
		cfg.Telegram.RequestTimeout = 10 * time.Second
	}
	if cfg.Storage.Bucket == "" {
		cfg.Storage.Bucket = "consultation-attachments"
	}
	if cfg.Storage.SignedURLTTL == 0 {
		cfg.Storage.SignedURLTTL = time.Hour
	}
	if cfg.Upload.MaxFileSize == 0 {
		cfg.Upload.MaxFileSize = 10 * 1024 * 1024
	}
	if cfg.Upload.MaxFiles == 0 {
		cfg.Upload.MaxFiles = 3
	}
	if cfg.Upload.ResizeThreshold == 0 {
		cfg.Upload.ResizeThreshold = 2 * 1024 * 1024
	}
	if cfg.Upload.ResizeMaxWidth == 0 {
		cfg.Upload.ResizeMaxWidth = 1200
	}
	if cfg.Upload.JPEGQuality == 0 {
		cfg.Upload.JPEGQuality = 85
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "consultation-notification-workers"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
