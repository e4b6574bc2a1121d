package config

import (
	"os"
	"sync"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

type Config struct {
	// Port Settings
	Host       string `yaml:"host"`       // The domain name of the server.
	ServerAddr string `yaml:"serverAddr"` // The address the server endpoint binds to.

	Auth struct {
		AccessTokenSecret      string `yaml:"accessTokenSecret"`
		RefreshTokenSecret     string `yaml:"refreshTokenSecret"`
		AccessTokenExpiryHour  int    `yaml:"accessTokenExpiryHour"`
		RefreshTokenExpiryHour int    `yaml:"refreshTokenExpiryHour"`
	} `yaml:"auth"`

	Postgres struct {
		Host         string `yaml:"host"`
		Port         string `yaml:"port"`
		DBName       string `yaml:"dbname"`
		User         string `yaml:"user"`
		Password     string `yaml:"password"`
		SSLMode      string `yaml:"sslmode"`
		TimeZone     string `yaml:"timeZone"`
		MaxIdleConns int    `yaml:"maxIdleConns"`
		MaxOpenConns int    `yaml:"maxOpenConns"`
	} `yaml:"postgres"`

	SMTP struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Sender   string `yaml:"sender"`
	} `yaml:"smtp"`

	Frontend struct {
		// Base URL of the SPA, used to build setup/dashboard routes in
		// responses and links in notification mails.
		BaseURL string `yaml:"baseURL"`
	} `yaml:"frontend"`
}

var (
	once   sync.Once
	config *Config
)

func GetConfig() *Config {
	once.Do(func() {
		config = initConfig()
	})
	return config
}

func IsDebugMode() bool {
	return gin.Mode() == gin.DebugMode
}

// initConfig reads the configuration file and validates the values the
// server cannot run without. In debug mode the path can be overridden with
// RISKBASES_DEBUG_CONFIG_PATH; in production the file is mounted at a fixed
// location.
func initConfig() *Config {
	config := &Config{}
	var configPath string
	if IsDebugMode() {
		if os.Getenv("RISKBASES_DEBUG_CONFIG_PATH") != "" {
			configPath = os.Getenv("RISKBASES_DEBUG_CONFIG_PATH")
		} else {
			configPath = "./etc/debug-config.yaml"
		}
	} else {
		configPath = "/etc/config/config.yaml"
	}
	klog.Info("config path: ", configPath)

	if err := readConfig(configPath, config); err != nil {
		klog.Error("init config", err)
		panic(err)
	}
	mustValidate(config)
	return config
}

func readConfig(filePath string, config *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, config)
}

// mustValidate panics on missing required settings. The database location
// and the token secrets have no usable defaults, so absence is a fatal
// configuration error at boot rather than a silent fallback.
func mustValidate(config *Config) {
	if config.Postgres.Host == "" || config.Postgres.DBName == "" {
		panic("config: postgres host and dbname are required")
	}
	if config.Auth.AccessTokenSecret == "" || config.Auth.RefreshTokenSecret == "" {
		panic("config: auth token secrets are required")
	}
	if config.ServerAddr == "" {
		config.ServerAddr = ":8088"
	}
	if config.Auth.AccessTokenExpiryHour == 0 {
		config.Auth.AccessTokenExpiryHour = 1
	}
	if config.Auth.RefreshTokenExpiryHour == 0 {
		config.Auth.RefreshTokenExpiryHour = 168
	}
	if config.Postgres.MaxIdleConns == 0 {
		config.Postgres.MaxIdleConns = 5
	}
	if config.Postgres.MaxOpenConns == 0 {
		config.Postgres.MaxOpenConns = 10
	}
}
