package sink

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	storage "google.golang.org/api/storage/v1"

	"github.com/dqe-comms/battlecard-cli/internal/model"
)

// blobPrefix is where the map visualization expects battle card documents.
const blobPrefix = "csv-battle-cards/"

// GCSSink uploads batch output to a Google Cloud Storage bucket.
type GCSSink struct {
	objects objectInserter
	bucket  string
}

// objectInserter is the slice of the storage service the sink needs;
// narrowed for testability.
type objectInserter interface {
	Insert(ctx context.Context, bucket string, obj *storage.Object, data []byte) error
}

// NewGCS creates a sink backed by the Cloud Storage JSON API using
// application default credentials.
func NewGCS(ctx context.Context, bucket string, opts ...option.ClientOption) (*GCSSink, error) {
	svc, err := storage.NewService(ctx, opts...)
	if err != nil {
		return nil, eris.Wrap(err, "sink: create storage service")
	}
	return &GCSSink{
		objects: &serviceInserter{svc: svc},
		bucket:  bucket,
	}, nil
}

// Persist uploads the document to csv-battle-cards/<name>.json.
func (s *GCSSink) Persist(ctx context.Context, output model.BatchOutput, name string) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return eris.Wrap(err, "sink: marshal output")
	}

	objectName := blobPrefix + name + ".json"
	obj := &storage.Object{
		Name:        objectName,
		ContentType: "application/json",
	}

	if err := s.objects.Insert(ctx, s.bucket, obj, data); err != nil {
		return eris.Wrapf(err, "sink: upload gs://%s/%s", s.bucket, objectName)
	}

	zap.L().Info("sink: battle cards saved",
		zap.String("bucket", s.bucket),
		zap.String("object", objectName),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// serviceInserter adapts the generated storage service.
type serviceInserter struct {
	svc *storage.Service
}

func (i *serviceInserter) Insert(ctx context.Context, bucket string, obj *storage.Object, data []byte) error {
	_, err := i.svc.Objects.Insert(bucket, obj).
		Media(bytes.NewReader(data), googleapi.ContentType(obj.ContentType)).
		Context(ctx).
		Do()
	return err
}
