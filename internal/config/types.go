package config

import "time"

// Config is the top-level studymate configuration, corresponding to .studymate.yml.
type Config struct {
	ServerURL      string        `yaml:"server_url" koanf:"server_url" validate:"required,url"`
	DataDir        string        `yaml:"data_dir" koanf:"data_dir" validate:"required"`
	LogFile        string        `yaml:"log_file" koanf:"log_file"`
	LogLevel       string        `yaml:"log_level" koanf:"log_level" validate:"omitempty,oneof=debug info warn error"`
	ThemeKey       string        `yaml:"theme_key" koanf:"theme_key" validate:"required"`
	DefaultTheme   string        `yaml:"default_theme" koanf:"default_theme" validate:"required,oneof=purple midnight soft"`
	RequestTimeout time.Duration `yaml:"request_timeout" koanf:"request_timeout" validate:"gte=0"`
}
