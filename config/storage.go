package config

import (
	"os"
	"time"
)

type StorageConfig struct {
	Region     string
	Bucket     string
	Endpoint   string
	PresignTTL time.Duration
}

func LoadStorageConfig() StorageConfig {
	ttl := 15 * time.Minute
	if raw := os.Getenv("S3_PRESIGN_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			ttl = parsed
		}
	}

	return StorageConfig{
		Region:     os.Getenv("AWS_REGION"),
		Bucket:     os.Getenv("AWS_S3_BUCKET"),
		Endpoint:   os.Getenv("S3_ENDPOINT_URL"),
		PresignTTL: ttl,
	}
}
