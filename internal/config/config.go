package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Encoding    string   `mapstructure:"encoding"`
	Format      string   `mapstructure:"format"`
	Workers     int      `mapstructure:"workers"`
	Lang        string   `mapstructure:"lang"`
	LogLevel    string   `mapstructure:"log_level"`
	Extensions  []string `mapstructure:"extensions"`
	Program     string   `mapstructure:"program"`
	ColorOK     string   `mapstructure:"color_ok"`
	ColorFail   string   `mapstructure:"color_fail"`
	ColorDim    string   `mapstructure:"color_dim"`
	ColorHeader string   `mapstructure:"color_header"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper. A non-empty path names the
// config file explicitly and must be readable; otherwise mmconv.yaml is
// looked up in the usual places and may be absent.
func Init(path string) error {
	viper.SetDefault("encoding", "utf-8")
	viper.SetDefault("format", "yaml")
	viper.SetDefault("workers", 4)
	viper.SetDefault("lang", "en")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("extensions", []string{".mmf", ".mm", ".txt"})
	viper.SetDefault("program", "mmconv")
	viper.SetDefault("color_ok", "32")     // Green
	viper.SetDefault("color_fail", "31")   // Red
	viper.SetDefault("color_dim", "90")    // Gray
	viper.SetDefault("color_header", "36") // Cyan

	viper.SetEnvPrefix("MMCONV")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(expandTilde(path))
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return viper.Unmarshal(&C)
	}

	viper.SetConfigName("mmconv")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "mmconv"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	// A missing or malformed discovered file leaves the defaults in place
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetEncoding returns the input charset name
func GetEncoding() string {
	return viper.GetString("encoding")
}

// GetFormat returns the interchange format
func GetFormat() string {
	return viper.GetString("format")
}

// GetWorkers returns the number of files decoded at once
func GetWorkers() int {
	return viper.GetInt("workers")
}

// GetLang returns the language used for unit names
func GetLang() string {
	return viper.GetString("lang")
}

// GetLogLevel returns the log level name
func GetLogLevel() string {
	return viper.GetString("log_level")
}

// GetExtensions returns the file extensions collected from directories
func GetExtensions() []string {
	return viper.GetStringSlice("extensions")
}

// GetProgram returns the program name written into exported banners
func GetProgram() string {
	return viper.GetString("program")
}

// GetColorOK returns ANSI color code for passing files
func GetColorOK() string {
	return viper.GetString("color_ok")
}

// GetColorFail returns ANSI color code for failures
func GetColorFail() string {
	return viper.GetString("color_fail")
}

// GetColorDim returns ANSI color code for secondary text
func GetColorDim() string {
	return viper.GetString("color_dim")
}

// GetColorHeader returns ANSI color code for the report header
func GetColorHeader() string {
	return viper.GetString("color_header")
}
