package drive

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/ternarybob/aperio/internal/models"
)

func TestValidateMeta(t *testing.T) {
	service := &Service{maxFileSize: 100 * 1024 * 1024}

	tests := []struct {
		name    string
		meta    *models.DocumentMeta
		wantErr string
	}{
		{
			name: "pdf under cap",
			meta: &models.DocumentMeta{Name: "report.pdf", MimeType: "application/pdf", Size: 1024},
		},
		{
			name: "pdf exactly at cap",
			meta: &models.DocumentMeta{Name: "report.pdf", MimeType: "application/pdf", Size: 100 * 1024 * 1024},
		},
		{
			name:    "not a pdf",
			meta:    &models.DocumentMeta{Name: "scan.png", MimeType: "image/png", Size: 1024},
			wantErr: "File is not a PDF. MimeType: image/png",
		},
		{
			name:    "over the cap",
			meta:    &models.DocumentMeta{Name: "report.pdf", MimeType: "application/pdf", Size: 100*1024*1024 + 1},
			wantErr: "File size exceeds 100MB limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.validateMeta("file-1", tt.meta)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			var resErr *models.ResolutionError
			require.ErrorAs(t, err, &resErr)
			assert.Equal(t, tt.wantErr, resErr.Message)
			assert.Equal(t, "file-1", resErr.FileID)
			assert.False(t, resErr.NotFound)
		})
	}
}

func TestValidateMetaCapInMessage(t *testing.T) {
	service := &Service{maxFileSize: 10 * 1024 * 1024}

	err := service.validateMeta("file-1", &models.DocumentMeta{
		MimeType: "application/pdf",
		Size:     11 * 1024 * 1024,
	})

	var resErr *models.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "File size exceeds 10MB limit", resErr.Message)
}

func TestWrapDriveErrorNotFound(t *testing.T) {
	service := &Service{}

	apiErr := &googleapi.Error{Code: 404, Message: "File not found"}
	err := service.wrapDriveError("abc123", fmt.Errorf("call failed: %w", apiErr))

	var resErr *models.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.True(t, resErr.NotFound)
	assert.Equal(t, "File not found: abc123", resErr.Message)
	assert.ErrorIs(t, err, apiErr)
}

func TestWrapDriveErrorOtherCodes(t *testing.T) {
	service := &Service{}

	apiErr := &googleapi.Error{Code: 403, Message: "rate limit"}
	err := service.wrapDriveError("abc123", apiErr)

	var resErr *models.ResolutionError
	assert.False(t, errors.As(err, &resErr))
	assert.Contains(t, err.Error(), "drive request failed")
}

func TestWrapDriveErrorPlainError(t *testing.T) {
	service := &Service{}

	err := service.wrapDriveError("abc123", errors.New("connection reset"))

	var resErr *models.ResolutionError
	assert.False(t, errors.As(err, &resErr))
	assert.Contains(t, err.Error(), "connection reset")
}
