package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var Conf *Config

// Config holds the client-wide settings. It is populated once at startup from
// defaults, an optional config/.env.<env> file and ENV-prefixed variables.
type Config struct {
	Env      string
	Build    string
	Debug    bool
	TestMode bool
	AppName  string

	API struct {
		BaseURL        string
		RequestTimeout time.Duration
	}

	DownloadDir  string
	RollbarToken string
}

func init() {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Shule")
	v.SetDefault("apiBaseUrl", "http://localhost:8165/api")
	v.SetDefault("apiRequestTimeout", 30*time.Second)
	v.SetDefault("downloadDir", filepath.Join(os.TempDir(), "shule"))

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case strings.ToUpper("TEST"):
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	Conf = &Config{
		Env:          env,
		Build:        v.GetString("build"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		AppName:      v.GetString("appName"),
		DownloadDir:  v.GetString("downloadDir"),
		RollbarToken: v.GetString("rollbarToken"),
	}
	Conf.API.BaseURL = v.GetString("apiBaseUrl")
	Conf.API.RequestTimeout = v.GetDuration("apiRequestTimeout")
}
