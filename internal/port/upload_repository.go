package port

import (
	"context"

	"simplimed/internal/domain"
)

// UploadRepository records upload metadata in the optional persistence
// backend. A nil repository means the feature is absent, not broken.
type UploadRepository interface {
	Create(ctx context.Context, rec *domain.UploadRecord) error
}
