package service

import (
	"context"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"simplimed/internal/config"
	"simplimed/internal/domain"
	"simplimed/internal/extract"
	"simplimed/internal/port"
)

// UploadInput is the DTO for file upload requests.
type UploadInput struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// UploadService persists an uploaded report and extracts its text.
type UploadService interface {
	Upload(ctx context.Context, input UploadInput) (*domain.Upload, error)
}

type uploadService struct {
	store     port.FileStore
	extractor *extract.Router
	archive   port.ObjectStorage    // optional, nil disables archival
	repo      port.UploadRepository // optional, nil disables the uploads log
	cfg       *config.UploadConfig
}

// NewUploadService creates an UploadService. archive and repo may be nil;
// both are best-effort side channels, never part of the upload contract.
func NewUploadService(
	store port.FileStore,
	extractor *extract.Router,
	archive port.ObjectStorage,
	repo port.UploadRepository,
	cfg *config.UploadConfig,
) UploadService {
	return &uploadService{
		store:     store,
		extractor: extractor,
		archive:   archive,
		repo:      repo,
		cfg:       cfg,
	}
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// buildStoredName builds the collision-resistant name
// <millisecond timestamp>-<sanitized base><original extension>.
func buildStoredName(originalName string, now time.Time) string {
	base := filepath.Base(originalName)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	name = unsafeNameChars.ReplaceAllString(name, "_")
	ext = unsafeNameChars.ReplaceAllString(strings.TrimPrefix(ext, "."), "_")
	if ext != "" {
		ext = "." + ext
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + name + ext
}

func (s *uploadService) Upload(ctx context.Context, input UploadInput) (*domain.Upload, error) {
	contentType := input.Header.Header.Get("Content-Type")

	if !domain.AllowedContentTypes[contentType] {
		return nil, domain.ErrUnsupportedFileType
	}
	if input.Header.Size > s.cfg.MaxBytes() {
		return nil, domain.ErrFileTooLarge
	}

	now := time.Now().UTC()
	saved := buildStoredName(input.Header.Filename, now)

	path, err := s.store.Save(ctx, saved, input.File)
	if err != nil {
		// Raw cause stays in the log; the caller gets a generic failure.
		log.Printf("uploadService.Upload: storage write failed for %s: %v", saved, err)
		return nil, domain.ErrStorageFailed
	}

	log.Printf("uploadService.Upload: stored %s as %s (%s, %d bytes)",
		input.Header.Filename, saved, contentType, input.Header.Size)

	extraction := s.extractor.Extract(path, contentType)

	s.archiveCopy(ctx, saved, path, contentType)
	s.record(ctx, input.Header, saved, contentType, extraction)

	return &domain.Upload{
		OriginalName: input.Header.Filename,
		StoredName:   saved,
		SizeBytes:    input.Header.Size,
		ContentType:  contentType,
		StoragePath:  path,
		UploadedAt:   now,
		Extraction:   extraction,
	}, nil
}

// archiveCopy mirrors the stored file to the optional archive bucket.
// Best-effort: failures are logged, never surfaced.
func (s *uploadService) archiveCopy(ctx context.Context, saved, path, contentType string) {
	if s.archive == nil {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		log.Printf("uploadService.archiveCopy: reopening %s: %v", path, err)
		return
	}
	defer func() { _ = f.Close() }()

	if err := s.archive.Upload(ctx, port.ArchiveInput{
		Key:         "uploads/" + saved,
		Body:        f,
		ContentType: contentType,
	}); err != nil {
		log.Printf("uploadService.archiveCopy: archiving %s: %v", saved, err)
	}
}

// record writes the optional uploads-log row. Metadata only, best-effort.
func (s *uploadService) record(ctx context.Context, header *multipart.FileHeader, saved, contentType string, extraction domain.ExtractionResult) {
	if s.repo == nil {
		return
	}
	rec := &domain.UploadRecord{
		OriginalName:      header.Filename,
		StoredName:        saved,
		SizeBytes:         header.Size,
		ContentType:       contentType,
		ExtractionMethod:  extraction.Method,
		ExtractionSuccess: extraction.Success,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		log.Printf("uploadService.record: recording %s: %v", saved, err)
	}
}
