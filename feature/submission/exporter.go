package submission

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"pricing-modeller/core/storage"

	"github.com/minio/minio-go/v7"
)

// Exporter copies submitted models to object storage.
type Exporter struct {
	client storage.Client
	bucket string
	prefix string
}

// NewExporter creates an exporter writing to bucket under prefix.
func NewExporter(client storage.Client, bucket, prefix string) *Exporter {
	return &Exporter{client: client, bucket: bucket, prefix: prefix}
}

// ObjectName returns the object a submission is exported to.
func (e *Exporter) ObjectName(id string) string {
	return path.Join(e.prefix, id+".json")
}

// Export uploads the model JSON of a submission.
func (e *Exporter) Export(ctx context.Context, id string, data []byte) error {
	name := e.ObjectName(id)
	_, err := e.client.PutObject(ctx, e.bucket, name, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to export %s: %w", name, err)
	}
	return nil
}
