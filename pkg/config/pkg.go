package config

import (
	"os"
	"time"

	"github.com/apex/log"
)

var configer Configer = &DotenvConfig{}

func SetConfig(c Configer) {
	configer = c
}

func GetConfig() Configer {
	return configer
}

// MustLoadFromHandoffDotenv loads configuration from the dotenv file named
// by HANDOFF_DOTENV, falling back to .env in the current directory. The
// dotenv file is optional; every key can instead come from the environment.
func MustLoadFromHandoffDotenv() Configer {
	path := os.Getenv("HANDOFF_DOTENV")
	if path == "" {
		path = ".env"
	}

	if _, err := os.Stat(path); err == nil {
		if err := configer.LoadFromPath(path); err != nil {
			log.Fatalf("Failed loading dotenv file %s: %s", path, err)
		}
	}

	return configer
}

func LoadFromPath(path string) error {
	return configer.LoadFromPath(path)
}

func Load() error {
	return configer.Load()
}

func GetKey(key string) string {
	return configer.GetKey(key)
}

func MustGetKey(key string) string {
	return configer.MustGetKey(key)
}

func GetKeyWithDefault(key, defaultValue string) string {
	return configer.GetKeyWithDefault(key, defaultValue)
}

func GetIntKey(key string) int {
	return configer.GetIntKey(key)
}

func MustGetIntKey(key string) int {
	return configer.MustGetIntKey(key)
}

func GetIntKeyWithDefault(key string, defaultValue int) int {
	return configer.GetIntKeyWithDefault(key, defaultValue)
}

func GetDurationKeyWithDefault(key string, defaultValue time.Duration) time.Duration {
	return configer.GetDurationKeyWithDefault(key, defaultValue)
}
