// -----------------------------------------------------------------------
// Google Drive Document Store - resolves and downloads source PDFs
// -----------------------------------------------------------------------

package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ternarybob/arbor"
	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/ternarybob/aperio/internal/common"
	"github.com/ternarybob/aperio/internal/interfaces"
	"github.com/ternarybob/aperio/internal/models"
)

// Service resolves and downloads PDF documents stored in Google Drive.
// Access is read-only; the service never creates or mutates Drive files.
type Service struct {
	files       *drive.FilesService
	maxFileSize int64
	logger      arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.DocumentStore = (*Service)(nil)

// NewService creates a Drive-backed document store. Credentials come from
// the configured service account file when set, otherwise from application
// default credentials (the Cloud Run service account).
func NewService(ctx context.Context, config *common.Config, logger arbor.ILogger) (*Service, error) {
	opts, err := clientOptions(ctx, config)
	if err != nil {
		return nil, err
	}

	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive client: %w", err)
	}

	return &Service{
		files:       svc.Files,
		maxFileSize: config.Drive.MaxFileSize,
		logger:      logger,
	}, nil
}

func clientOptions(ctx context.Context, config *common.Config) ([]option.ClientOption, error) {
	if config.Drive.CredentialsFile != "" {
		return []option.ClientOption{
			option.WithCredentialsFile(config.Drive.CredentialsFile),
			option.WithScopes(drive.DriveReadonlyScope),
		}, nil
	}

	creds, err := google.FindDefaultCredentials(ctx, drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to find default credentials: %w", err)
	}

	return []option.ClientOption{option.WithCredentials(creds)}, nil
}

// Resolve returns document metadata and verifies the file is a PDF within
// the size cap. No document bytes are transferred.
func (s *Service) Resolve(ctx context.Context, fileID string) (*models.DocumentMeta, error) {
	file, err := s.files.Get(fileID).Fields("name", "mimeType", "size").Context(ctx).Do()
	if err != nil {
		return nil, s.wrapDriveError(fileID, err)
	}

	meta := &models.DocumentMeta{
		Name:     file.Name,
		MimeType: file.MimeType,
		Size:     file.Size,
	}

	if err := s.validateMeta(fileID, meta); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("file_id", fileID).
		Str("file_name", meta.Name).
		Int64("size_bytes", meta.Size).
		Msg("Resolved Drive file")

	return meta, nil
}

// Download returns the raw document bytes.
func (s *Service) Download(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := s.files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, s.wrapDriveError(fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file contents: %w", err)
	}

	s.logger.Debug().
		Str("file_id", fileID).
		Int("size_bytes", len(data)).
		Msg("Downloaded Drive file")

	return data, nil
}

// Fetch resolves metadata and downloads the document in one call. The
// metadata checks run before any bytes move.
func (s *Service) Fetch(ctx context.Context, fileID string) (*models.DocumentMeta, []byte, error) {
	meta, err := s.Resolve(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}

	data, err := s.Download(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}

	return meta, data, nil
}

func (s *Service) validateMeta(fileID string, meta *models.DocumentMeta) error {
	if meta.MimeType != "application/pdf" {
		return models.NewResolutionError(fileID, fmt.Sprintf("File is not a PDF. MimeType: %s", meta.MimeType), nil)
	}

	if meta.Size > s.maxFileSize {
		return models.NewResolutionError(fileID, fmt.Sprintf("File size exceeds %dMB limit", s.maxFileSize/(1024*1024)), nil)
	}

	return nil
}

func (s *Service) wrapDriveError(fileID string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return models.NewNotFoundError(fileID, "File not found: "+fileID, err)
	}

	return fmt.Errorf("drive request failed: %w", err)
}
