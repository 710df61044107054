package horoscope

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/zvezde365/zvezde-api/internal/config"
	"github.com/zvezde365/zvezde-api/internal/storage"
)

// Source loads the current horoscope document.
type Source interface {
	Load(ctx context.Context) (*Document, error)
	Name() string
}

// FileSource reads a YAML or JSON document from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return "file:" + s.Path }

func (s FileSource) Load(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	return Decode(data)
}

// ObjectGetter fetches a whole object by key. *storage.ObjectStore
// satisfies it.
type ObjectGetter interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Bucket() string
}

// S3Source reads the document from an S3 object.
type S3Source struct {
	Objects ObjectGetter
	Key     string
}

func (s S3Source) Name() string { return fmt.Sprintf("s3://%s/%s", s.Objects.Bucket(), s.Key) }

func (s S3Source) Load(ctx context.Context) (*Document, error) {
	data, err := s.Objects.Get(ctx, s.Key)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// NewSource builds the source named by cfg.Source ("file" or "s3").
func NewSource(ctx context.Context, cfg config.HoroscopeConfig) (Source, error) {
	switch cfg.Source {
	case "", "file":
		if cfg.Path == "" {
			return nil, errors.New("horoscopes: file source needs a path")
		}
		return FileSource{Path: cfg.Path}, nil
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, errors.New("horoscopes: s3 source needs a bucket")
		}
		objects, err := storage.NewObjectStore(ctx, cfg.S3Bucket, cfg.S3Region)
		if err != nil {
			return nil, err
		}
		return S3Source{Objects: objects, Key: cfg.S3Key}, nil
	default:
		return nil, fmt.Errorf("horoscopes: unknown source %q", cfg.Source)
	}
}
