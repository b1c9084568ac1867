package mongostore

import (
	"context"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/gridfs"

	"github.com/Pawarnaren/ConnectApp-Backend/store"
)

// ImageStore keeps uploaded images in a GridFS bucket.
type ImageStore struct {
	bucket *gridfs.Bucket
}

func NewImageStore(bucket *gridfs.Bucket) *ImageStore {
	return &ImageStore{bucket: bucket}
}

func (s *ImageStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	fileID := primitive.NewObjectID()
	uploadStream, err := s.bucket.OpenUploadStreamWithID(fileID, filename)
	if err != nil {
		return "", err
	}
	defer uploadStream.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = uploadStream.SetWriteDeadline(deadline)
	}
	if _, err := io.Copy(uploadStream, r); err != nil {
		return "", err
	}
	return fileID.Hex(), nil
}

func (s *ImageStore) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	fileID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}
	downloadStream, err := s.bucket.OpenDownloadStream(fileID)
	if err != nil {
		return nil, store.ErrNotFound
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = downloadStream.SetReadDeadline(deadline)
	}
	return downloadStream, nil
}
