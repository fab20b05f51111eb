package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

const (
	// EnvTrainBucket names the destination bucket for re-partitioned objects.
	EnvTrainBucket = "TRAIN_BUCKET"
	// EnvRegion is the AWS region used for the S3 client.
	EnvRegion = "AWS_REGION"
	// EnvMaxConcurrency caps the number of concurrently-open source streams.
	EnvMaxConcurrency = "UNPACK_MAX_CONCURRENCY"

	defaultRegion         = "us-east-1"
	defaultMaxConcurrency = 16
)

// Config is the environment-driven configuration for one pipeline process.
type Config struct {
	TrainBucket    string
	Region         string
	MaxConcurrency int64
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	c := &Config{
		TrainBucket:    os.Getenv(EnvTrainBucket),
		Region:         os.Getenv(EnvRegion),
		MaxConcurrency: defaultMaxConcurrency,
	}
	if c.Region == "" {
		c.Region = defaultRegion
	}
	if v := os.Getenv(EnvMaxConcurrency); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid %s %q", EnvMaxConcurrency, v)
		}
		c.MaxConcurrency = n
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.TrainBucket == "" {
		return errors.New("train bucket is required")
	}
	if c.MaxConcurrency <= 0 {
		return errors.New("max concurrency must be positive")
	}
	return nil
}
