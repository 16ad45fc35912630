// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log"
	"log/slog"

	"github.com/dataverse/atlan-migration/internal/config"
	"github.com/dataverse/atlan-migration/internal/domain/port"
	"github.com/dataverse/atlan-migration/internal/infrastructure/atlan"
	"github.com/dataverse/atlan-migration/internal/infrastructure/k8s"
	"github.com/dataverse/atlan-migration/internal/infrastructure/mock"
	"github.com/dataverse/atlan-migration/internal/infrastructure/nats"
	"github.com/dataverse/atlan-migration/internal/infrastructure/rover"
	"github.com/dataverse/atlan-migration/internal/infrastructure/snapshot"
	"github.com/dataverse/atlan-migration/internal/service"
	"github.com/dataverse/atlan-migration/pkg/constants"
	"github.com/dataverse/atlan-migration/pkg/httpclient"

	"github.com/spf13/afero"
	"golang.org/x/oauth2"
)

// directory groups the clients the migration talks to
type directory struct {
	reader   port.DirectoryReader
	writer   port.GroupMemberWriter
	modifier port.MembersModifier
}

// newDirectory creates the directory clients based on DIRECTORY_TYPE.
// The mock directory also stands in for Rover.
func newDirectory(ctx context.Context, cfg *config.Config) directory {
	switch cfg.DirectoryType {
	case constants.DirectoryTypeMock:
		slog.DebugContext(ctx, "using mock directory implementation")
		mockDirectory, err := mock.NewDirectory(ctx)
		if err != nil {
			log.Fatalf("failed to create mock directory: %v", err)
		}
		return directory{
			reader:   mockDirectory,
			writer:   mockDirectory,
			modifier: mockDirectory,
		}

	case constants.DirectoryTypeAtlan:
		slog.DebugContext(ctx, "using Atlan directory implementation",
			"base_url", cfg.Atlan.BaseURL,
			"page_size", cfg.Atlan.PageSize,
		)

		httpClient := httpclient.NewClient(httpclient.Config{Timeout: cfg.HTTPTimeout})
		atlanToken := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Atlan.APIKey})
		atlanConfig := atlan.Config{
			BaseURL:  cfg.Atlan.BaseURL,
			PageSize: cfg.Atlan.PageSize,
		}

		reader, err := atlan.NewDirectoryReader(httpClient, atlanToken, atlanConfig)
		if err != nil {
			log.Fatalf("failed to create Atlan directory reader: %v", err)
		}
		writer, err := atlan.NewGroupMemberWriter(httpClient, atlanToken, atlanConfig)
		if err != nil {
			log.Fatalf("failed to create Atlan group member writer: %v", err)
		}

		d := directory{
			reader: reader,
			writer: writer,
		}

		if cfg.Rover.BaseURL == "" {
			slog.WarnContext(ctx, "ATLAN_ROVER_URL is not set, the Rover migration will be skipped")
			return d
		}

		roverToken := rover.TokenSource(ctx, rover.Credentials{
			ClientID:      cfg.Rover.ClientID,
			ClientSecret:  cfg.Rover.ClientSecret,
			TokenURL:      cfg.Rover.TokenURL,
			Token:         cfg.Rover.Token,
			FallbackToken: cfg.Atlan.APIKey,
		})
		modifier, err := rover.NewMembersModifier(httpClient, roverToken, rover.Config{BaseURL: cfg.Rover.BaseURL})
		if err != nil {
			log.Fatalf("failed to create Rover client: %v", err)
		}
		d.modifier = modifier
		return d

	default:
		log.Fatalf("unsupported directory type: %s", cfg.DirectoryType)
	}
	return directory{}
}

// newSnapshotStore creates the SnapshotStore based on SNAPSHOT_STORE_TYPE.
// The returned function releases the connections the store holds.
func newSnapshotStore(ctx context.Context, cfg *config.Config) (port.SnapshotStore, func()) {
	switch cfg.Snapshot.StoreType {
	case constants.SnapshotStoreTypeFile:
		slog.DebugContext(ctx, "using file snapshot store", "dir", cfg.Snapshot.Dir)
		return snapshot.NewFileStore(afero.NewOsFs(), cfg.Snapshot.Dir), func() {}

	case constants.SnapshotStoreTypeNATS:
		natsClient, err := nats.NewClient(ctx, nats.Config{
			URL:           cfg.NATS.URL,
			Timeout:       cfg.NATS.Timeout,
			MaxReconnect:  cfg.NATS.MaxReconnect,
			ReconnectWait: cfg.NATS.ReconnectWait,
		})
		if err != nil {
			log.Fatalf("failed to create NATS client: %v", err)
		}
		closeClient := func() {
			if errClose := natsClient.Close(); errClose != nil {
				slog.ErrorContext(ctx, "failed to close NATS client", "error", errClose)
			}
		}

		store, err := nats.NewSnapshotStore(ctx, natsClient, cfg.Snapshot.KVBucket)
		if err != nil {
			closeClient()
			log.Fatalf("failed to create NATS snapshot store: %v", err)
		}
		slog.DebugContext(ctx, "using NATS snapshot store", "bucket", cfg.Snapshot.KVBucket)
		return store, closeClient

	case constants.SnapshotStoreTypeConfigMap:
		k8sClient, err := k8s.NewClient(ctx)
		if err != nil {
			log.Fatalf("failed to create Kubernetes client: %v", err)
		}
		store, err := k8s.NewConfigMapStore(k8sClient, cfg.Snapshot.ConfigMapNamespace, cfg.Snapshot.ConfigMapName)
		if err != nil {
			log.Fatalf("failed to create ConfigMap snapshot store: %v", err)
		}
		slog.DebugContext(ctx, "using ConfigMap snapshot store",
			"namespace", cfg.Snapshot.ConfigMapNamespace,
			"configmap", cfg.Snapshot.ConfigMapName,
		)
		return store, func() {}

	default:
		log.Fatalf("unsupported snapshot store type: %s", cfg.Snapshot.StoreType)
	}
	return nil, func() {}
}

// NewMigration wires the migration pipeline from the configuration
func NewMigration(ctx context.Context, cfg *config.Config) (service.Migration, func()) {
	store, cleanup := newSnapshotStore(ctx, cfg)
	clients := newDirectory(ctx, cfg)

	migration := service.NewMigrationOrchestrator(
		service.WithSnapshotRefresher(service.NewSnapshotRefresher(
			service.WithDirectoryReader(clients.reader),
			service.WithSnapshotStoreForRefresher(store),
		)),
		service.WithBatchDispatcher(service.NewBatchDispatcher(
			service.WithSnapshotStoreForDispatcher(store),
			service.WithGroupMemberWriter(clients.writer),
			service.WithBatchSize(cfg.Migration.BatchSize),
			service.WithBatchDelay(cfg.Migration.BatchDelay),
		)),
		service.WithRoverMigrator(service.NewRoverMigrator(
			service.WithSnapshotStoreForRover(store),
			service.WithMembersModifier(clients.modifier),
			service.WithStrictErrors(cfg.Rover.StrictErrors),
		)),
	)

	return migration, cleanup
}
