package acquire

import (
	"context"
	"errors"
	"path"
	"path/filepath"

	"github.com/nguyentantai21042004/meetscribe/internal/storage"
)

type s3Resolver struct {
	store Fetcher
	dir   string
}

func (r *s3Resolver) Name() string { return "s3" }

func (r *s3Resolver) Resolve(ctx context.Context, req Request) (string, error) {
	if r.store == nil {
		return "", errors.New("object storage is not configured")
	}
	bucket, key, err := storage.ParseURL(req.Source)
	if err != nil {
		return "", err
	}

	dest := filepath.Join(r.dir, path.Base(key))
	if err := r.store.Fetch(ctx, bucket, key, dest); err != nil {
		return "", err
	}
	return dest, nil
}
