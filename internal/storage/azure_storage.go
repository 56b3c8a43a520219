package storage

import (
	"context"
	"fmt"
	"image"
	"net/url"

	apperrors "go-zone-diff/internal/errors"
	"go-zone-diff/internal/logger"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/sirupsen/logrus"
)

// blobUploader is the subset of *azblob.Client the store needs
type blobUploader interface {
	UploadBuffer(ctx context.Context, containerName string, blobName string, buffer []byte, o *azblob.UploadBufferOptions) (azblob.UploadBufferResponse, error)
	URL() string
}

// AzureStore uploads PNG artifacts to a blob container, optionally
// mirroring each one to a local store first.
type AzureStore struct {
	client    blobUploader
	container string
	prefix    string
	mirror    ArtifactStore
}

// NewAzureStore creates a blob store authenticated with a shared account key
func NewAzureStore(accountName, accountKey, container string) (*AzureStore, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid Azure credentials", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net/", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, apperrors.NewInternalError("cannot create Azure client", err)
	}

	return &AzureStore{client: client, container: container}, nil
}

// WithPrefix places blobs under a virtual directory, typically the run ID
func (s *AzureStore) WithPrefix(prefix string) *AzureStore {
	c := *s
	c.prefix = prefix
	return &c
}

// WithMirror also writes every artifact to the given store
func (s *AzureStore) WithMirror(mirror ArtifactStore) *AzureStore {
	c := *s
	c.mirror = mirror
	return &c
}

func (s *AzureStore) blobName(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

// Save uploads img as a PNG blob and returns the blob URL
func (s *AzureStore) Save(ctx context.Context, name string, img image.Image) (string, error) {
	if s.mirror != nil {
		if _, err := s.mirror.Save(ctx, name, img); err != nil {
			return "", err
		}
	}

	data, err := encodePNG(img)
	if err != nil {
		return "", apperrors.NewIOError(fmt.Sprintf("cannot encode %s", name), err)
	}

	key := s.blobName(name)
	contentType := "image/png"
	_, err = s.client.UploadBuffer(ctx, s.container, key, data, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	if err != nil {
		return "", apperrors.NewIOError(fmt.Sprintf("upload of %s failed", key), err)
	}

	location, err := url.JoinPath(s.client.URL(), s.container, key)
	if err != nil {
		return "", apperrors.NewInternalError("cannot build blob URL", err)
	}

	logger.WithFields(logrus.Fields{
		"container": s.container,
		"blob":      key,
		"bytes":     len(data),
	}).Debug("Artifact uploaded")
	return location, nil
}
