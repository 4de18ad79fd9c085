package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	apperrors "go-photo-validator/internal/errors"
)

// AzureModelSource reads models from one Azure Blob Storage container.
type AzureModelSource struct {
	client    *azblob.Client
	container string
	maxBytes  int64
}

// NewAzureModelSource authenticates with a shared key against the account's
// public blob endpoint.
func NewAzureModelSource(accountName, accountKey, container string) (*AzureModelSource, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("azure credential: %w", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("azure client: %w", err)
	}

	return NewAzureModelSourceFromClient(client, container), nil
}

// NewAzureModelSourceFromClient wraps an existing client, for example one
// built from a SAS URL.
func NewAzureModelSourceFromClient(client *azblob.Client, container string) *AzureModelSource {
	return &AzureModelSource{
		client:    client,
		container: container,
		maxBytes:  DefaultMaxModelBytes,
	}
}

// Fetch implements ModelSource.
func (s *AzureModelSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := checkModelName(name); err != nil {
		return nil, err
	}

	resp, err := s.client.DownloadStream(ctx, s.container, name, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("blob %s/%s not found", s.container, name), err)
		}
		return nil, apperrors.NewNetworkError("blob download failed", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to read blob", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, apperrors.NewTooLargeError(fmt.Sprintf("blob exceeds %d bytes", s.maxBytes), nil)
	}
	return data, nil
}
