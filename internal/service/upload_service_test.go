package service_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"simplimed/internal/config"
	"simplimed/internal/domain"
	"simplimed/internal/extract"
	"simplimed/internal/service"
	"simplimed/internal/storage/local"
	"simplimed/mocks"
)

// multipartFixture builds a real multipart.File/FileHeader pair the way gin
// would hand them to the handler.
func multipartFixture(t *testing.T, filename, contentType string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="medicalReport"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	file, header, err := req.FormFile("medicalReport")
	require.NoError(t, err)
	return file, header
}

func newLocalUploadService(t *testing.T, cfg *config.UploadConfig) service.UploadService {
	t.Helper()
	store, err := local.NewStore(t.TempDir())
	require.NoError(t, err)
	return service.NewUploadService(store, extract.NewRouter(), nil, nil, cfg)
}

var defaultUploadCfg = config.UploadConfig{Dir: "uploads", MaxFileSizeMB: 10}

func TestUploadService_PlainText_Success(t *testing.T) {
	cfg := defaultUploadCfg
	svc := newLocalUploadService(t, &cfg)

	content := []byte("Glucose: 95 mg/dL. Cholesterol: 180 mg/dL.")
	require.Len(t, content, 42)
	file, header := multipartFixture(t, "report.txt", "text/plain", content)

	up, err := svc.Upload(context.Background(), service.UploadInput{File: file, Header: header})

	require.NoError(t, err)
	assert.Equal(t, "report.txt", up.OriginalName)
	assert.Regexp(t, regexp.MustCompile(`^\d{13}-report\.txt$`), up.StoredName)
	assert.Equal(t, int64(len(content)), up.SizeBytes)
	assert.Equal(t, "text/plain", up.ContentType)

	assert.True(t, up.Extraction.Success)
	assert.Equal(t, domain.MethodDirectTextRead, up.Extraction.Method)
	assert.Equal(t, string(content), up.Extraction.Text)

	stored, err := os.ReadFile(up.StoragePath)
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestUploadService_SanitizesStoredName(t *testing.T) {
	cfg := defaultUploadCfg
	svc := newLocalUploadService(t, &cfg)

	file, header := multipartFixture(t, "my report (final).txt", "text/plain", []byte("x"))

	up, err := svc.Upload(context.Background(), service.UploadInput{File: file, Header: header})

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{13}-my_report__final_\.txt$`), up.StoredName)
}

func TestUploadService_Image_RoutedToOCR(t *testing.T) {
	cfg := defaultUploadCfg
	svc := newLocalUploadService(t, &cfg)

	file, header := multipartFixture(t, "scan.png", "image/png", []byte{0x89, 0x50, 0x4e, 0x47})

	up, err := svc.Upload(context.Background(), service.UploadInput{File: file, Header: header})

	require.NoError(t, err)
	assert.False(t, up.Extraction.Success)
	assert.Equal(t, domain.MethodImageRequiresOCR, up.Extraction.Method)
}

func TestUploadService_RejectsUnsupportedType(t *testing.T) {
	cfg := defaultUploadCfg
	mockStore := new(mocks.MockFileStore)
	svc := service.NewUploadService(mockStore, extract.NewRouter(), nil, nil, &cfg)

	file, header := multipartFixture(t, "macro.xlsm", "application/vnd.ms-excel", []byte("data"))

	up, err := svc.Upload(context.Background(), service.UploadInput{File: file, Header: header})

	assert.Nil(t, up)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	mockStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_RejectsOversizeBeforeStorage(t *testing.T) {
	cfg := defaultUploadCfg
	mockStore := new(mocks.MockFileStore)
	svc := service.NewUploadService(mockStore, extract.NewRouter(), nil, nil, &cfg)

	oversize := bytes.Repeat([]byte("a"), int(cfg.MaxBytes())+1)
	file, header := multipartFixture(t, "big.txt", "text/plain", oversize)

	up, err := svc.Upload(context.Background(), service.UploadInput{File: file, Header: header})

	assert.Nil(t, up)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	mockStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_StorageFailure_Sanitized(t *testing.T) {
	cfg := defaultUploadCfg
	mockStore := new(mocks.MockFileStore)
	mockStore.On("Save", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("disk full: /var/uploads"))
	svc := service.NewUploadService(mockStore, extract.NewRouter(), nil, nil, &cfg)

	file, header := multipartFixture(t, "report.txt", "text/plain", []byte("x"))

	up, err := svc.Upload(context.Background(), service.UploadInput{File: file, Header: header})

	assert.Nil(t, up)
	// The raw cause is logged, not returned.
	assert.ErrorIs(t, err, domain.ErrStorageFailed)
	assert.NotContains(t, err.Error(), "/var/uploads")
}

func TestUploadService_ArchiveFailure_BestEffort(t *testing.T) {
	cfg := defaultUploadCfg
	store, err := local.NewStore(t.TempDir())
	require.NoError(t, err)

	mockArchive := new(mocks.MockObjectStorage)
	mockArchive.On("Upload", mock.Anything, mock.Anything).
		Return(errors.New("bucket unavailable"))

	svc := service.NewUploadService(store, extract.NewRouter(), mockArchive, nil, &cfg)
	file, header := multipartFixture(t, "report.txt", "text/plain", []byte("hello"))

	up, err := svc.Upload(context.Background(), service.UploadInput{File: file, Header: header})

	require.NoError(t, err)
	assert.True(t, up.Extraction.Success)
	mockArchive.AssertExpectations(t)
}

func TestUploadService_RecordsUploadMetadata(t *testing.T) {
	cfg := defaultUploadCfg
	store, err := local.NewStore(t.TempDir())
	require.NoError(t, err)

	mockRepo := new(mocks.MockUploadRepository)
	var captured *domain.UploadRecord
	mockRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*domain.UploadRecord)
		}).
		Return(nil)

	svc := service.NewUploadService(store, extract.NewRouter(), nil, mockRepo, &cfg)
	file, header := multipartFixture(t, "report.txt", "text/plain", []byte("hello"))

	up, err := svc.Upload(context.Background(), service.UploadInput{File: file, Header: header})

	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, "report.txt", captured.OriginalName)
	assert.Equal(t, up.StoredName, captured.StoredName)
	assert.Equal(t, int64(5), captured.SizeBytes)
	assert.Equal(t, domain.MethodDirectTextRead, captured.ExtractionMethod)
	assert.True(t, captured.ExtractionSuccess)
}

func TestUploadService_RepoFailure_BestEffort(t *testing.T) {
	cfg := defaultUploadCfg
	store, err := local.NewStore(t.TempDir())
	require.NoError(t, err)

	mockRepo := new(mocks.MockUploadRepository)
	mockRepo.On("Create", mock.Anything, mock.Anything).
		Return(errors.New("connection refused"))

	svc := service.NewUploadService(store, extract.NewRouter(), nil, mockRepo, &cfg)
	file, header := multipartFixture(t, "report.txt", "text/plain", []byte("hello"))

	up, err := svc.Upload(context.Background(), service.UploadInput{File: file, Header: header})

	require.NoError(t, err)
	assert.True(t, up.Extraction.Success)
}
