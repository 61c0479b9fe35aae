package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/apex/log"
)

// MapConfig is a Configer backed by a map. Used in tests to avoid touching
// the process environment.
type MapConfig struct {
	keys map[string]string
}

func NewMapConfig(keys map[string]string) *MapConfig {
	if keys == nil {
		keys = make(map[string]string)
	}
	return &MapConfig{keys: keys}
}

func (c *MapConfig) SetKey(key, value string) {
	c.keys[key] = value
}

func (c *MapConfig) LoadFromPath(path string) error {
	return fmt.Errorf("MapConfig does not load from a path")
}

func (c *MapConfig) Load() error {
	return nil
}

func (c *MapConfig) GetKey(key string) string {
	return c.keys[key]
}

func (c *MapConfig) MustGetKey(key string) string {
	val := c.GetKey(key)
	if val == "" {
		log.Fatalf("No such required config key: '%s'", key)
	}

	return val
}

func (c *MapConfig) GetKeyWithDefault(key, defaultValue string) string {
	val := c.GetKey(key)
	if val == "" {
		return defaultValue
	}

	return val
}

func (c *MapConfig) GetIntKey(key string) int {
	intVal, err := strconv.Atoi(c.GetKey(key))
	if err != nil {
		return 0
	}

	return intVal
}

func (c *MapConfig) MustGetIntKey(key string) int {
	intVal, err := strconv.Atoi(c.GetKey(key))
	if err != nil {
		log.Fatalf("Required config key either doesn't exist or isn't an int: '%s': %s", key, err)
	}

	return intVal
}

func (c *MapConfig) GetIntKeyWithDefault(key string, defaultValue int) int {
	intVal, err := strconv.Atoi(c.GetKey(key))
	if err != nil {
		return defaultValue
	}

	return intVal
}

func (c *MapConfig) GetDurationKeyWithDefault(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(c.GetKey(key))
	if err != nil {
		return defaultValue
	}

	return d
}
