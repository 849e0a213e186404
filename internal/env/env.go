// Package env reads process configuration from the environment.
package env

import (
	"strconv"
	"time"

	"github.com/spf13/viper"
)

var v = newViper()

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	return v
}

func GetString(key, fallback string) string {
	if !v.IsSet(key) {
		return fallback
	}
	return v.GetString(key)
}

// GetInt returns fallback when key is unset or not a number.
func GetInt(key string, fallback int) int {
	if !v.IsSet(key) {
		return fallback
	}
	val, err := strconv.Atoi(v.GetString(key))
	if err != nil {
		return fallback
	}
	return val
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	if !v.IsSet(key) {
		return fallback
	}
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return fallback
	}
	return d
}
