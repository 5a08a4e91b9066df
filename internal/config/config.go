package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	HTTPAddr    string // MARQUEE_HTTP_ADDR (default ":8080")
	AuthToken   string // MARQUEE_AUTH_TOKEN (optional, empty = auth disabled)
	DatabaseURL string // MARQUEE_DATABASE_URL (optional, empty = roles API disabled)
	NATSURL     string // MARQUEE_NATS_URL (optional, empty = no events)

	// Events document + history settings
	DataRepo   string // MARQUEE_DATA_REPO (required; path to the local clone)
	DataFile   string // MARQUEE_DATA_FILE (default "events.json", relative to the repo)
	DataBranch string // MARQUEE_DATA_BRANCH (default "main")
	DataRemote string // MARQUEE_DATA_REMOTE (default "origin")

	// Ticketing API settings
	TicketingURL   string // MARQUEE_TICKETING_URL (default "https://www.eventbriteapi.com")
	TicketingToken string // MARQUEE_TICKETING_TOKEN (push-style fetches fail without it)

	// MutationTimeout bounds one add/remove including history operations.
	MutationTimeout time.Duration // MARQUEE_MUTATION_TIMEOUT (default 30s)

	// Snapshot settings
	SnapshotInterval   time.Duration // MARQUEE_SNAPSHOT_INTERVAL (default 3m; 0 = disabled)
	SnapshotS3Bucket   string        // MARQUEE_SNAPSHOT_S3_BUCKET (enables S3 when set)
	SnapshotS3Endpoint string        // MARQUEE_SNAPSHOT_S3_ENDPOINT (custom endpoint for MinIO)
	SnapshotS3Region   string        // MARQUEE_SNAPSHOT_S3_REGION (default "us-east-1")
	SnapshotS3Key      string        // MARQUEE_SNAPSHOT_S3_KEY (default "marquee/events.json")
}

func Load() (*Config, error) {
	c := &Config{
		HTTPAddr:           envOrDefault("MARQUEE_HTTP_ADDR", ":8080"),
		AuthToken:          os.Getenv("MARQUEE_AUTH_TOKEN"),
		DatabaseURL:        os.Getenv("MARQUEE_DATABASE_URL"),
		NATSURL:            os.Getenv("MARQUEE_NATS_URL"),
		DataRepo:           os.Getenv("MARQUEE_DATA_REPO"),
		DataFile:           envOrDefault("MARQUEE_DATA_FILE", "events.json"),
		DataBranch:         envOrDefault("MARQUEE_DATA_BRANCH", "main"),
		DataRemote:         envOrDefault("MARQUEE_DATA_REMOTE", "origin"),
		TicketingURL:       envOrDefault("MARQUEE_TICKETING_URL", "https://www.eventbriteapi.com"),
		TicketingToken:     os.Getenv("MARQUEE_TICKETING_TOKEN"),
		SnapshotS3Bucket:   os.Getenv("MARQUEE_SNAPSHOT_S3_BUCKET"),
		SnapshotS3Endpoint: os.Getenv("MARQUEE_SNAPSHOT_S3_ENDPOINT"),
		SnapshotS3Region:   envOrDefault("MARQUEE_SNAPSHOT_S3_REGION", "us-east-1"),
		SnapshotS3Key:      envOrDefault("MARQUEE_SNAPSHOT_S3_KEY", "marquee/events.json"),
	}
	if c.DataRepo == "" {
		return nil, fmt.Errorf("MARQUEE_DATA_REPO is required")
	}

	var err error
	if c.MutationTimeout, err = envDuration("MARQUEE_MUTATION_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if c.SnapshotInterval, err = envDuration("MARQUEE_SNAPSHOT_INTERVAL", "3m"); err != nil {
		return nil, err
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key, fallback string) (time.Duration, error) {
	v := envOrDefault(key, fallback)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
