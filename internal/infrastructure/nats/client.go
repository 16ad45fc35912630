// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/dataverse/atlan-migration/pkg/constants"
	"github.com/dataverse/atlan-migration/pkg/errors"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// NATSClient wraps the NATS connection and its JetStream context
type NATSClient struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	config  Config
	timeout time.Duration
}

// Close drains and closes the NATS connection
func (c *NATSClient) Close() error {
	if c.conn != nil {
		return c.conn.Drain()
	}
	return nil
}

// IsReady checks if the NATS client is ready
func (c *NATSClient) IsReady(ctx context.Context) error {
	if c.conn == nil {
		return errors.NewServiceUnavailable("NATS client is not initialized or not connected")
	}
	if !c.conn.IsConnected() || c.conn.IsDraining() {
		return errors.NewServiceUnavailable("NATS client is not ready, connection is not established or is draining")
	}
	return nil
}

// KeyValue returns the KV bucket with the given name, creating it when missing
func (c *NATSClient) KeyValue(ctx context.Context, bucket string) (jetstream.KeyValue, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	kv, err := c.js.KeyValue(ctx, bucket)
	if err == nil {
		return kv, nil
	}
	if !stderrors.Is(err, jetstream.ErrBucketNotFound) {
		return nil, errors.NewServiceUnavailable("failed to open KV bucket "+bucket, err)
	}

	slog.InfoContext(ctx, "creating NATS KV bucket", "bucket", bucket)
	kv, err = c.js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "snapshots written by " + constants.ServiceName,
	})
	if err != nil {
		return nil, errors.NewServiceUnavailable("failed to create KV bucket "+bucket, err)
	}
	return kv, nil
}

// NewClient creates a new NATS client with the given configuration
func NewClient(ctx context.Context, config Config) (*NATSClient, error) {
	slog.InfoContext(ctx, "creating NATS client",
		"url", config.URL,
		"timeout", config.Timeout,
	)

	if config.URL == "" {
		return nil, errors.NewValidation("NATS URL is required")
	}

	opts := []nats.Option{
		nats.Name(constants.ServiceName),
		nats.Timeout(config.Timeout),
		nats.MaxReconnects(config.MaxReconnect),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			slog.WarnContext(ctx, "NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.InfoContext(ctx, "NATS reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			slog.InfoContext(ctx, "NATS connection closed")
		}),
	}

	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, errors.NewServiceUnavailable("failed to connect to NATS", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, errors.NewServiceUnavailable("failed to create JetStream context", err)
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = nats.DefaultTimeout
	}

	client := &NATSClient{
		conn:    conn,
		js:      js,
		config:  config,
		timeout: timeout,
	}

	slog.InfoContext(ctx, "NATS client created successfully",
		"connected_url", conn.ConnectedUrl(),
		"status", conn.Status(),
	)

	return client, nil
}
