// Package bigquery reads facts from the managed warehouse table.
package bigquery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/MHmolesini/alphavantage-sub000/internal/pkg/config"
	"github.com/MHmolesini/alphavantage-sub000/internal/pkg/health"
)

// Credential sources, in resolution order
const (
	CredentialsEnvJSON     = "env_json"
	CredentialsEnvKey      = "env_key"
	CredentialsFile        = "file"
	CredentialsApplication = "application_default"
)

// Client is an explicitly constructed BigQuery handle
type Client struct {
	*bigquery.Client
}

// NewClient creates a BigQuery client from cfg
func NewClient(ctx context.Context, cfg config.BigQueryConfig) (*Client, error) {
	opts, source, err := credentialOptions(cfg)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("project", cfg.ProjectID).
		Str("credentials", source).
		Msg("Connecting to BigQuery...")

	client, err := bigquery.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bigquery client: %w", err)
	}
	if cfg.Location != "" {
		client.Location = cfg.Location
	}

	return &Client{Client: client}, nil
}

// credentialOptions resolves credentials: JSON env → email/key env → file → ADC
func credentialOptions(cfg config.BigQueryConfig) ([]option.ClientOption, string, error) {
	if cfg.CredentialsJSON != "" {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cfg.CredentialsJSON))}, CredentialsEnvJSON, nil
	}

	if cfg.ClientEmail != "" && cfg.PrivateKey != "" {
		raw, err := json.Marshal(map[string]string{
			"type":         "service_account",
			"project_id":   cfg.ProjectID,
			"client_email": cfg.ClientEmail,
			"private_key":  cfg.PrivateKey,
			"token_uri":    "https://oauth2.googleapis.com/token",
		})
		if err != nil {
			return nil, "", fmt.Errorf("encode service account credentials: %w", err)
		}
		return []option.ClientOption{option.WithCredentialsJSON(raw)}, CredentialsEnvKey, nil
	}

	if cfg.CredentialsFile != "" {
		if _, err := os.Stat(cfg.CredentialsFile); err == nil {
			return []option.ClientOption{option.WithCredentialsFile(cfg.CredentialsFile)}, CredentialsFile, nil
		}
	}

	return nil, CredentialsApplication, nil
}

// Health runs a trivial query against the warehouse
func (c *Client) Health(ctx context.Context) *health.Status {
	start := time.Now()
	status := &health.Status{
		CheckedAt: start,
		Driver:    "bigquery",
		Status:    health.StatusHealthy,
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	it, err := c.Query("SELECT 1").Read(pingCtx)
	if err == nil {
		var row []bigquery.Value
		err = it.Next(&row)
		if errors.Is(err, iterator.Done) {
			err = nil
		}
	}
	if err != nil {
		status.Status = health.StatusUnhealthy
		status.Error = fmt.Sprintf("query failed: %v", err)
	}

	status.ResponseTime = time.Since(start).String()
	return status
}
