package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	OCR    OCRConfig
	LLM    LLMConfig
	Spam   SpamConfig
	Temp   TempConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// OCRConfig holds settings for the external tesseract engine.
type OCRConfig struct {
	Binary    string `mapstructure:"binary"`
	Languages string `mapstructure:"languages"`
	OEM       int    `mapstructure:"oem"`
	PSM       int    `mapstructure:"psm"`
}

// LLMConfig holds settings for the Gemini extraction model.
type LLMConfig struct {
	APIKey        string `mapstructure:"api_key"`
	Model         string `mapstructure:"model"`
	TimeoutSecs   int    `mapstructure:"timeout_secs"`
	MaxInputChars int    `mapstructure:"max_input_chars"`
}

// SpamConfig holds settings for the external spam classifier endpoint.
// An empty Endpoint is allowed; spam dispatch then degrades per request.
type SpamConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// TempConfig holds the scratch directory for staged uploads.
type TempConfig struct {
	Dir string `mapstructure:"dir"`
}

// Load reads configuration from environment variables with the SCREENGUARD_
// prefix. It fails if the required LLM credential is absent.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SCREENGUARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")

	// OCR defaults
	v.SetDefault("ocr.binary", "tesseract")
	v.SetDefault("ocr.languages", "eng+ind")
	v.SetDefault("ocr.oem", 3)
	v.SetDefault("ocr.psm", 6)

	// LLM defaults
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gemini-1.5-flash")
	v.SetDefault("llm.timeout_secs", 60)
	v.SetDefault("llm.max_input_chars", 16000)

	// Spam classifier defaults
	v.SetDefault("spam.endpoint", "")
	v.SetDefault("spam.timeout_secs", 20)

	// Temp storage defaults
	v.SetDefault("temp.dir", "temp_uploaded_images")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "SCREENGUARD_SERVER_PORT",
		"server.read_timeout":  "SCREENGUARD_SERVER_READ_TIMEOUT",
		"server.write_timeout": "SCREENGUARD_SERVER_WRITE_TIMEOUT",
		"server.environment":   "SCREENGUARD_SERVER_ENVIRONMENT",
		"log.level":            "SCREENGUARD_LOG_LEVEL",
		"ocr.binary":           "SCREENGUARD_OCR_BINARY",
		"ocr.languages":        "SCREENGUARD_OCR_LANGUAGES",
		"ocr.oem":              "SCREENGUARD_OCR_OEM",
		"ocr.psm":              "SCREENGUARD_OCR_PSM",
		"llm.api_key":          "SCREENGUARD_LLM_API_KEY",
		"llm.model":            "SCREENGUARD_LLM_MODEL",
		"llm.timeout_secs":     "SCREENGUARD_LLM_TIMEOUT_SECS",
		"llm.max_input_chars":  "SCREENGUARD_LLM_MAX_INPUT_CHARS",
		"spam.endpoint":        "SCREENGUARD_SPAM_ENDPOINT",
		"spam.timeout_secs":    "SCREENGUARD_SPAM_TIMEOUT_SECS",
		"temp.dir":             "SCREENGUARD_TEMP_DIR",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if SCREENGUARD_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SCREENGUARD_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level: v.GetString("log.level"),
	}
	cfg.OCR = OCRConfig{
		Binary:    v.GetString("ocr.binary"),
		Languages: v.GetString("ocr.languages"),
		OEM:       v.GetInt("ocr.oem"),
		PSM:       v.GetInt("ocr.psm"),
	}
	cfg.LLM = LLMConfig{
		APIKey:        v.GetString("llm.api_key"),
		Model:         v.GetString("llm.model"),
		TimeoutSecs:   v.GetInt("llm.timeout_secs"),
		MaxInputChars: v.GetInt("llm.max_input_chars"),
	}
	cfg.Spam = SpamConfig{
		Endpoint:    v.GetString("spam.endpoint"),
		TimeoutSecs: v.GetInt("spam.timeout_secs"),
	}
	cfg.Temp = TempConfig{
		Dir: v.GetString("temp.dir"),
	}

	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("SCREENGUARD_LLM_API_KEY is required")
	}

	return cfg, nil
}
