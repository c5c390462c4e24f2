// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gcs uploads result files to Google Cloud Storage.
package gcs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// An Uploader copies local files into a bucket.
type Uploader struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewUploader returns an Uploader for bucket. Objects are named
// prefix/<base name of the local file>.
//
// If credentialsFile is empty, the client uses Application Default
// Credentials (or the emulator named by STORAGE_EMULATOR_HOST).
func NewUploader(ctx context.Context, bucket, prefix, credentialsFile string) (*Uploader, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		if _, err := os.Stat(credentialsFile); err != nil {
			return nil, fmt.Errorf("gcs: credentials: %w", err)
		}
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs: creating client: %w", err)
	}
	return &Uploader{client: client, bucket: bucket, prefix: prefix}, nil
}

// ObjectName returns the object that Upload writes localPath to.
func (u *Uploader) ObjectName(localPath string) string {
	return path.Join(u.prefix, filepath.Base(localPath))
}

// Upload copies the file at localPath to the bucket and returns the
// object's gs:// URL.
func (u *Uploader) Upload(ctx context.Context, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	name := u.ObjectName(localPath)
	w := u.client.Bucket(u.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType(localPath)
	// Result files are small; send each in a single request.
	w.ChunkSize = 0
	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return "", fmt.Errorf("gcs: writing %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs: writing %s: %w", name, err)
	}
	return fmt.Sprintf("gs://%s/%s", u.bucket, name), nil
}

func contentType(name string) string {
	switch filepath.Ext(name) {
	case ".json":
		return "application/json"
	case ".png":
		return "image/png"
	}
	return "application/octet-stream"
}

// Close releases the resources of the underlying client.
func (u *Uploader) Close() error {
	return u.client.Close()
}
