package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envOverlay mirrors Config for envconfig processing. Only variables that
// are actually set override the current values.
type envOverlay struct {
	EndpointAddr          string        `envconfig:"ADDRESS"`
	DatabaseDSN           string        `envconfig:"DATABASE_DSN"`
	SecretKey             string        `envconfig:"SECRET_KEY"`
	TokenValidityDuration time.Duration `envconfig:"TOKEN_VALIDITY_DURATION"`
	AvatarMaxBytes        int64         `envconfig:"AVATAR_MAX_BYTES"`
	AvatarBackend         string        `envconfig:"AVATAR_BACKEND"`
	S3RootUser            string        `envconfig:"S3_ROOT_USER"`
	S3RootPassword        string        `envconfig:"S3_ROOT_PASSWORD"`
	S3Bucket              string        `envconfig:"S3_BUCKET"`
	S3Region              string        `envconfig:"S3_REGION"`
	S3BaseEndpoint        string        `envconfig:"S3_BASE_ENDPOINT"`
}

// parseEnv overlays environment variables onto config. Unset variables
// leave the current value untouched.
func parseEnv(config *Config) {
	var e envOverlay
	if err := envconfig.Process("taskkeeper", &e); err != nil {
		panic(err)
	}

	if e.EndpointAddr != "" {
		config.EndpointAddr = e.EndpointAddr
	}
	if e.DatabaseDSN != "" {
		config.DatabaseDSN = e.DatabaseDSN
	}
	if e.SecretKey != "" {
		config.SecretKey = e.SecretKey
	}
	if e.TokenValidityDuration != 0 {
		config.TokenValidityDuration = e.TokenValidityDuration
	}
	if e.AvatarMaxBytes != 0 {
		config.AvatarMaxBytes = e.AvatarMaxBytes
	}
	if e.AvatarBackend != "" {
		config.AvatarBackend = e.AvatarBackend
	}
	if e.S3RootUser != "" {
		config.S3RootUser = e.S3RootUser
	}
	if e.S3RootPassword != "" {
		config.S3RootPassword = e.S3RootPassword
	}
	if e.S3Bucket != "" {
		config.S3Bucket = e.S3Bucket
	}
	if e.S3Region != "" {
		config.S3Region = e.S3Region
	}
	if e.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = e.S3BaseEndpoint
	}
}
