package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DATE_FORMAT = "2006-01-02"
	TIME_FORMAT = "15:04:05"

	DEFAULT_HTTP_TIMEOUT = 10
)

const (
	PROVIDER_GOOGLE   = "google"
	PROVIDER_FACEBOOK = "facebook"
	PROVIDER_GITHUB   = "github"
)

func GetDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

// OAuthProvider holds the credentials and endpoints for one identity provider.
type OAuthProvider struct {
	ClientID     string            `yaml:"client_id"`
	ClientSecret string            `yaml:"client_secret"`
	AuthURL      string            `yaml:"auth_url"`
	TokenURL     string            `yaml:"token_url"`
	UserInfoURL  string            `yaml:"userinfo_url"`
	Headers      map[string]string `yaml:"headers"`
	Params       map[string]string `yaml:"params"`
}

type JWTConfig struct {
	Secret        string `yaml:"secret"`
	RefreshSecret string `yaml:"refresh_secret"`
	AccessTTL     int    `yaml:"access_ttl_minutes"`
	RefreshTTL    int    `yaml:"refresh_ttl_days"`
	Issuer        string `yaml:"issuer"`
}

func (j JWTConfig) AccessDuration() time.Duration {
	return time.Duration(j.AccessTTL) * time.Minute
}

func (j JWTConfig) RefreshDuration() time.Duration {
	return time.Duration(j.RefreshTTL) * 24 * time.Hour
}

type RealtimeConfig struct {
	Channel       string `yaml:"channel"`
	SnapshotLimit int    `yaml:"snapshot_limit"`
	SQSQueue      string `yaml:"sqs_queue"`
	PusherChannel string `yaml:"pusher_channel"`
	SendBuffer    int    `yaml:"send_buffer"`
	SNSTopic      string `yaml:"sns_topic"`
}

type MailConfig struct {
	From     string `yaml:"from"`
	FromName string `yaml:"from_name"`
	Enabled  bool   `yaml:"enabled"`

	// Transport is "smtp" or "ses".
	Transport string `yaml:"transport"`
	// Queue hands messages to an SQS worker instead of sending inline.
	Queue string `yaml:"queue"`
}

type Config struct {
	Env                string                   `yaml:"env"`
	Port               string                   `yaml:"port"`
	AppHost            string                   `yaml:"app_host"`
	HTTPTimeoutSeconds int                      `yaml:"http_timeout_seconds"`
	GoogleCertsURL     string                   `yaml:"google_certs_url"`
	Providers          map[string]OAuthProvider `yaml:"providers"`
	JWT                JWTConfig                `yaml:"jwt"`
	Realtime           RealtimeConfig           `yaml:"realtime"`
	Mail               MailConfig               `yaml:"mail"`
	AssetsBucket       string                   `yaml:"assets_bucket"`
	RatingSyncMinutes  int                      `yaml:"rating_sync_minutes"`
	DBMaxOpenConns     int                      `yaml:"db_max_open_conns"`
	TokenKey           string                   `yaml:"token_key"`
}

// HTTPTimeout never returns zero; a zero http.Client timeout waits forever.
func (c *Config) HTTPTimeout() time.Duration {
	if c.HTTPTimeoutSeconds <= 0 {
		return DEFAULT_HTTP_TIMEOUT * time.Second
	}
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

func (c *Config) IsLocal() bool {
	return c.Env == "local" || c.Env == "test"
}

// Provider returns the configuration for a supported provider name.
func (c *Config) Provider(name string) (OAuthProvider, bool) {
	p, ok := c.Providers[strings.ToLower(name)]
	return p, ok
}

func defaultProviders() map[string]OAuthProvider {
	return map[string]OAuthProvider{
		PROVIDER_GOOGLE: {
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			AuthURL:      "https://accounts.google.com/o/oauth2/auth",
			TokenURL:     "https://oauth2.googleapis.com/token",
			UserInfoURL:  "https://www.googleapis.com/oauth2/v2/userinfo",
		},
		PROVIDER_FACEBOOK: {
			ClientID:     os.Getenv("FACEBOOK_APP_ID"),
			ClientSecret: os.Getenv("FACEBOOK_APP_SECRET"),
			AuthURL:      "https://www.facebook.com/v12.0/dialog/oauth",
			TokenURL:     "https://graph.facebook.com/v12.0/oauth/access_token",
			UserInfoURL:  "https://graph.facebook.com/me",
			Params:       map[string]string{"fields": "id,name,email,picture"},
		},
		PROVIDER_GITHUB: {
			ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
			ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
			AuthURL:      "https://github.com/login/oauth/authorize",
			TokenURL:     "https://github.com/login/oauth/access_token",
			UserInfoURL:  "https://api.github.com/user",
			Headers:      map[string]string{"Accept": "application/vnd.github.v3+json"},
		},
	}
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] Invalid value for %s: %s\n", key, err.Error())
		return fallback
	}
	return i
}

func envString(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() *Config {
	return &Config{
		Env:                envString("API_ENV", "local"),
		Port:               envString("PORT", "8000"),
		AppHost:            os.Getenv("APP_HOST"),
		HTTPTimeoutSeconds: envInt("OAUTH_HTTP_TIMEOUT", DEFAULT_HTTP_TIMEOUT),
		GoogleCertsURL:     envString("GOOGLE_CERTS_URL", "https://www.googleapis.com/oauth2/v3/certs"),
		Providers:          defaultProviders(),
		JWT: JWTConfig{
			Secret:        os.Getenv("JWT_SECRET"),
			RefreshSecret: envString("JWT_REFRESH_SECRET", os.Getenv("JWT_SECRET")),
			AccessTTL:     envInt("JWT_ACCESS_TTL_MINUTES", 60*24),
			RefreshTTL:    envInt("JWT_REFRESH_TTL_DAYS", 30),
			Issuer:        envString("JWT_ISSUER", "travelhub"),
		},
		Realtime: RealtimeConfig{
			Channel:       envString("REALTIME_CHANNEL", "real_time_updates"),
			SnapshotLimit: envInt("REALTIME_SNAPSHOT_LIMIT", 50),
			SQSQueue:      os.Getenv("REALTIME_SQS_QUEUE"),
			PusherChannel: os.Getenv("PUSHER_CHANNEL"),
			SendBuffer:    envInt("REALTIME_SEND_BUFFER", 16),
			SNSTopic:      os.Getenv("REALTIME_SNS_TOPIC"),
		},
		Mail: MailConfig{
			From:      envString("MAIL_FROM", "no-reply@travelhub.local"),
			FromName:  envString("MAIL_FROM_NAME", "TravelHub"),
			Enabled:   os.Getenv("SMTP_HOST") != "" || os.Getenv("MAIL_TRANSPORT") != "" || os.Getenv("MAIL_QUEUE") != "",
			Transport: envString("MAIL_TRANSPORT", "smtp"),
			Queue:     os.Getenv("MAIL_QUEUE"),
		},
		AssetsBucket:      os.Getenv("S3_ASSETS_BUCKET"),
		RatingSyncMinutes: envInt("RATING_SYNC_MINUTES", 30),
		DBMaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 100),
		TokenKey:          os.Getenv("OAUTH_TOKEN_KEY"),
	}
}

// Load reads the environment and, when path is set, overlays a YAML file
// whose values may reference environment variables.
func Load(path string) (*Config, error) {
	cfg := FromEnv()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var overlay Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &overlay); err != nil {
		return nil, err
	}
	cfg.merge(&overlay)
	return cfg, nil
}

func (c *Config) merge(o *Config) {
	if o.Env != "" {
		c.Env = o.Env
	}
	if o.Port != "" {
		c.Port = o.Port
	}
	if o.AppHost != "" {
		c.AppHost = o.AppHost
	}
	if o.HTTPTimeoutSeconds > 0 {
		c.HTTPTimeoutSeconds = o.HTTPTimeoutSeconds
	}
	if o.GoogleCertsURL != "" {
		c.GoogleCertsURL = o.GoogleCertsURL
	}
	for name, p := range o.Providers {
		base := c.Providers[name]
		if p.ClientID != "" {
			base.ClientID = p.ClientID
		}
		if p.ClientSecret != "" {
			base.ClientSecret = p.ClientSecret
		}
		if p.AuthURL != "" {
			base.AuthURL = p.AuthURL
		}
		if p.TokenURL != "" {
			base.TokenURL = p.TokenURL
		}
		if p.UserInfoURL != "" {
			base.UserInfoURL = p.UserInfoURL
		}
		if p.Headers != nil {
			base.Headers = p.Headers
		}
		if p.Params != nil {
			base.Params = p.Params
		}
		c.Providers[name] = base
	}
	if o.JWT.Secret != "" {
		c.JWT.Secret = o.JWT.Secret
	}
	if o.JWT.RefreshSecret != "" {
		c.JWT.RefreshSecret = o.JWT.RefreshSecret
	}
	if o.JWT.AccessTTL > 0 {
		c.JWT.AccessTTL = o.JWT.AccessTTL
	}
	if o.JWT.RefreshTTL > 0 {
		c.JWT.RefreshTTL = o.JWT.RefreshTTL
	}
	if o.JWT.Issuer != "" {
		c.JWT.Issuer = o.JWT.Issuer
	}
	if o.Realtime.Channel != "" {
		c.Realtime.Channel = o.Realtime.Channel
	}
	if o.Realtime.SnapshotLimit > 0 {
		c.Realtime.SnapshotLimit = o.Realtime.SnapshotLimit
	}
	if o.Realtime.SQSQueue != "" {
		c.Realtime.SQSQueue = o.Realtime.SQSQueue
	}
	if o.Realtime.PusherChannel != "" {
		c.Realtime.PusherChannel = o.Realtime.PusherChannel
	}
	if o.Realtime.SendBuffer > 0 {
		c.Realtime.SendBuffer = o.Realtime.SendBuffer
	}
	if o.Mail.From != "" {
		c.Mail.From = o.Mail.From
	}
	if o.Mail.FromName != "" {
		c.Mail.FromName = o.Mail.FromName
	}
	if o.Mail.Enabled {
		c.Mail.Enabled = true
	}
	if o.Mail.Transport != "" {
		c.Mail.Transport = o.Mail.Transport
	}
	if o.Mail.Queue != "" {
		c.Mail.Queue = o.Mail.Queue
	}
	if o.Realtime.SNSTopic != "" {
		c.Realtime.SNSTopic = o.Realtime.SNSTopic
	}
	if o.AssetsBucket != "" {
		c.AssetsBucket = o.AssetsBucket
	}
	if o.DBMaxOpenConns > 0 {
		c.DBMaxOpenConns = o.DBMaxOpenConns
	}
	if o.RatingSyncMinutes > 0 {
		c.RatingSyncMinutes = o.RatingSyncMinutes
	}
	if o.TokenKey != "" {
		c.TokenKey = o.TokenKey
	}
}

var current *Config

// Get returns the process-wide configuration, loading it on first use.
func Get() *Config {
	if current != nil {
		return current
	}
	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Printf("[config] Error loading config file: %s\n", err.Error())
		cfg = FromEnv()
	}
	current = cfg
	return cfg
}

// Set replaces the process-wide configuration.
func Set(c *Config) *Config {
	current = c
	return current
}
