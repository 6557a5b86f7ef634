package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags_Overrides(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"server", "-a", ":7070", "-d", "postgres://flag/dsn", "-t", "15", "-k", AvatarBackendS3}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, c.EndpointAddr, ":7070")
	assert.Equal(t, c.DatabaseDSN, "postgres://flag/dsn")
	assert.Equal(t, c.TokenValidityDuration, 15*time.Minute)
	assert.Equal(t, c.AvatarBackend, AvatarBackendS3)
	assert.Equal(t, c.SecretKey, "secretKey")
}

func TestParseFlags_NoFlagsKeepsDefaults(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"server"}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, c.EndpointAddr, ":8080")
	assert.Equal(t, c.TokenValidityDuration, 24*time.Hour)
}
