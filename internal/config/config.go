package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	DatabasePath      string        `mapstructure:"database_path" yaml:"database_path"`
	UploadDir         string        `mapstructure:"upload_dir" yaml:"upload_dir"`
	MaxUploadBytes    int64         `mapstructure:"max_upload_bytes" yaml:"max_upload_bytes"`
	AdminKey          string        `mapstructure:"admin_key" yaml:"admin_key"`
	JWTSecret         string        `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	OTPTTL            time.Duration `mapstructure:"otp_ttl" yaml:"otp_ttl"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		DatabasePath:      "chat_history.db",
		UploadDir:         "uploads",
		MaxUploadBytes:    16 << 20,
		AdminKey:          "",
		JWTSecret:         "change-me",
		OTPTTL:            5 * time.Minute,
	}
}
