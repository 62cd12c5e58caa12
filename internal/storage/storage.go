package storage

import "github.com/solpin/solpin-service/internal/types"

type Storage interface {
	// CreateUpload appends one record and returns it with its assigned ID and
	// createdAt timestamp filled in.
	CreateUpload(record types.UploadRecord) (types.UploadRecord, error)
	// ListUploads returns up to limit records, newest first.
	ListUploads(limit int) ([]types.UploadRecord, error)
}
