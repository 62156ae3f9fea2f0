package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"simplimed/internal/domain"
	"simplimed/internal/handler"
	"simplimed/internal/service"
	"simplimed/mocks"
)

func newAnalyzeContext(t *testing.T, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, rec
}

func TestAnalyzeHandler_Success(t *testing.T) {
	mockService := new(mocks.MockAnalysisService)
	mockService.On("Analyze", mock.Anything, "Hemoglobin 13.5 g/dL").
		Return(&service.AnalysisOutput{
			Analysis: domain.AnalysisResult{
				Summary:         "Your hemoglobin is in the healthy range.",
				Parameters:      []domain.AnalysisParameter{},
				Recommendations: []string{"No action needed."},
				Disclaimer:      "Automated analysis.",
			},
			TokensUsed: 456,
		}, nil)

	c, rec := newAnalyzeContext(t, `{"text":"Hemoglobin 13.5 g/dL"}`)
	handler.NewAnalyzeHandler(mockService).Analyze(c)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, float64(456), resp["tokensUsed"])

	ts, err := time.Parse(time.RFC3339, resp["timestamp"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), ts, time.Minute)

	analysis := resp["analysis"].(map[string]interface{})
	assert.Equal(t, "Your hemoglobin is in the healthy range.", analysis["summary"])

	mockService.AssertExpectations(t)
}

func TestAnalyzeHandler_EmptyText(t *testing.T) {
	mockService := new(mocks.MockAnalysisService)
	mockService.On("Analyze", mock.Anything, "").
		Return(nil, domain.ErrNoText)

	c, rec := newAnalyzeContext(t, `{"text":""}`)
	handler.NewAnalyzeHandler(mockService).Analyze(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "No text provided for analysis", resp["error"])
}

func TestAnalyzeHandler_MissingBody(t *testing.T) {
	mockService := new(mocks.MockAnalysisService)
	mockService.On("Analyze", mock.Anything, "").
		Return(nil, domain.ErrNoText)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/analyze", nil)

	handler.NewAnalyzeHandler(mockService).Analyze(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockService.AssertExpectations(t)
}

func TestAnalyzeHandler_APIKeyMissing(t *testing.T) {
	mockService := new(mocks.MockAnalysisService)
	mockService.On("Analyze", mock.Anything, "some text").
		Return(nil, domain.ErrAPIKeyMissing)

	c, rec := newAnalyzeContext(t, `{"text":"some text"}`)
	handler.NewAnalyzeHandler(mockService).Analyze(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Groq API key not configured", resp["error"])
}

func TestAnalyzeHandler_ProviderFailure(t *testing.T) {
	mockService := new(mocks.MockAnalysisService)
	mockService.On("Analyze", mock.Anything, "some text").
		Return(nil, errors.New("analyzing report: groq API error (status 503): overloaded"))

	c, rec := newAnalyzeContext(t, `{"text":"some text"}`)
	handler.NewAnalyzeHandler(mockService).Analyze(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Failed to analyze report with AI", resp["message"])
	assert.Contains(t, resp["error"], "status 503")
}
