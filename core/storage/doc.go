// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small Client interface covering the
// operations the service uses: bucket checks, uploads of exported audit reports
// and listing. Both AWS S3 and self-hosted MinIO are supported.
//
// The interface keeps storage interactions mockable (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
