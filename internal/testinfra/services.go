// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultRedisImage is the shared response cache image.
	DefaultRedisImage = "redis:7-alpine"
	// DefaultRedisPort is the container-side listener.
	DefaultRedisPort = "6379/tcp"

	// DefaultMinioImage serves the artifact bucket.
	DefaultMinioImage = "minio/minio:latest"
	// DefaultMinioPort is the S3 API listener.
	DefaultMinioPort = "9000/tcp"

	// MinioAccessKey and MinioSecretKey are the root credentials of the
	// test server.
	MinioAccessKey = "forkcast"
	MinioSecretKey = "forkcast-secret"
)

// RedisContainer is a running Redis instance.
type RedisContainer struct {
	testcontainers.Container
	Addr string
}

// NewRedisContainer starts Redis without persistence.
func NewRedisContainer(ctx context.Context) (*RedisContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        DefaultRedisImage,
		ExposedPorts: []string{DefaultRedisPort},
		Cmd:          []string{"redis-server", "--save", "", "--appendonly", "no"},
		WaitingFor: wait.ForAll(
			wait.ForLog("Ready to accept connections"),
			wait.ForListeningPort(DefaultRedisPort),
		).WithStartupTimeout(30 * time.Second),
	}

	container, host, port, err := startContainer(ctx, req, DefaultRedisPort)
	if err != nil {
		return nil, err
	}
	return &RedisContainer{Container: container, Addr: fmt.Sprintf("%s:%d", host, port)}, nil
}

// MinioContainer is a running MinIO server.
type MinioContainer struct {
	testcontainers.Container
	Endpoint string
	Client   *minio.Client
}

// NewMinioContainer starts MinIO with the test root credentials.
func NewMinioContainer(ctx context.Context) (*MinioContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        DefaultMinioImage,
		ExposedPorts: []string{DefaultMinioPort},
		Cmd:          []string{"server", "/data"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     MinioAccessKey,
			"MINIO_ROOT_PASSWORD": MinioSecretKey,
		},
		WaitingFor: wait.ForHTTP("/minio/health/live").
			WithPort(DefaultMinioPort).
			WithStartupTimeout(60 * time.Second),
	}

	container, host, port, err := startContainer(ctx, req, DefaultMinioPort)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s:%d", host, port)
	client, err := minio.New(endpoint, &minio.Options{
		Creds: credentials.NewStaticV4(MinioAccessKey, MinioSecretKey, ""),
	})
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &MinioContainer{Container: container, Endpoint: endpoint, Client: client}, nil
}

// UploadDir creates bucket and copies every regular file of dir under prefix.
func (m *MinioContainer) UploadDir(ctx context.Context, dir, bucket, prefix string) error {
	if err := m.Client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("make bucket %s: %w", bucket, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		key := e.Name()
		if prefix != "" {
			key = prefix + "/" + key
		}
		if _, err := m.Client.FPutObject(ctx, bucket, key, filepath.Join(dir, e.Name()), minio.PutObjectOptions{}); err != nil {
			return fmt.Errorf("upload %s: %w", key, err)
		}
	}
	return nil
}
