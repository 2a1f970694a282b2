package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	UserAgent          string `yaml:"user_agent"`
	HTTPTimeoutSeconds int    `yaml:"http_timeout_seconds"`
	RadiusMeters       int    `yaml:"radius_meters"`
	MaxAttractions     int    `yaml:"max_attractions"`

	Nominatim Service `yaml:"nominatim"`
	OpenMeteo Service `yaml:"openmeteo"`
	Overpass  Service `yaml:"overpass"`

	Web struct {
		Addr string `yaml:"addr"`
	} `yaml:"web"`
}

type Service struct {
	Endpoint string `yaml:"endpoint"`
}

// Parse reads the embedded yaml, fills defaults for anything left out
// and lets environment variables override service endpoints, the HTTP
// timeout and the web listen address.
func Parse(raw []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.applyDefaults()
	c.applyEnv()
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.UserAgent == "" {
		c.UserAgent = "tourism-lookup/1.0"
	}
	if c.HTTPTimeoutSeconds <= 0 {
		c.HTTPTimeoutSeconds = 10
	}
	if c.RadiusMeters <= 0 {
		c.RadiusMeters = 10000
	}
	if c.MaxAttractions <= 0 {
		c.MaxAttractions = 5
	}
	if c.Web.Addr == "" {
		c.Web.Addr = ":8080"
	}
}

func (c *Config) applyEnv() {
	c.Nominatim.Endpoint = getEnv("NOMINATIM_URL", c.Nominatim.Endpoint)
	c.OpenMeteo.Endpoint = getEnv("OPENMETEO_URL", c.OpenMeteo.Endpoint)
	c.Overpass.Endpoint = getEnv("OVERPASS_URL", c.Overpass.Endpoint)
	c.Web.Addr = getEnv("TOURISM_ADDR", c.Web.Addr)

	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.HTTPTimeoutSeconds = n
		}
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
