package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"lexigraph/backend/internal/constants"
	"lexigraph/backend/internal/vocabulary"
	apperrors "lexigraph/backend/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockVocabularyService struct {
	data      map[vocabulary.Language]vocabulary.Mapping
	err       error
	requested []vocabulary.Language
}

func (m *mockVocabularyService) FetchByLanguage(ctx context.Context, language vocabulary.Language) (vocabulary.Mapping, error) {
	m.requested = append(m.requested, language)
	if m.err != nil {
		return nil, m.err
	}
	if mapping, ok := m.data[language]; ok {
		return mapping, nil
	}
	return vocabulary.Mapping{}, nil
}

func (m *mockVocabularyService) FetchLanguages(ctx context.Context, languages ...vocabulary.Language) (map[vocabulary.Language]vocabulary.Mapping, error) {
	result := make(map[vocabulary.Language]vocabulary.Mapping, len(languages))
	for _, language := range languages {
		mapping, err := m.FetchByLanguage(ctx, language)
		if err != nil {
			return nil, fmt.Errorf("fetch %s vocabulary: %w", language, err)
		}
		result[language] = mapping
	}
	return result, nil
}

func newTestRouter(svc *mockVocabularyService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(svc, zap.NewNop())
}

func doGet(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	req, err := http.NewRequest("GET", path, nil)
	require.NoError(t, err)
	router.ServeHTTP(w, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(&mockVocabularyService{})

	w, body := doGet(t, router, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, w.Header().Get(constants.RequestIDHeader))
}

func TestRequestIDIsPropagated(t *testing.T) {
	router := newTestRouter(&mockVocabularyService{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	req.Header.Set(constants.RequestIDHeader, "req-123")
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(constants.RequestIDHeader))
}

func TestListLanguages(t *testing.T) {
	router := newTestRouter(&mockVocabularyService{})

	w, body := doGet(t, router, "/api/languages")

	assert.Equal(t, http.StatusOK, w.Code)
	languages, ok := body["languages"].([]interface{})
	require.True(t, ok)
	assert.Len(t, languages, len(vocabulary.Languages()))
	assert.Equal(t, map[string]interface{}{"code": "EN", "name": "English"}, languages[0])
}

func TestGetVocabulary(t *testing.T) {
	svc := &mockVocabularyService{
		data: map[vocabulary.Language]vocabulary.Mapping{
			vocabulary.English: {
				"dog": "a domesticated canine",
				"cat": "a domesticated feline",
			},
		},
	}
	router := newTestRouter(svc)

	w, body := doGet(t, router, "/api/vocabularies/en")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "EN", body["language"])
	assert.Equal(t, "English", body["name"])
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, map[string]interface{}{
		"dog": "a domesticated canine",
		"cat": "a domesticated feline",
	}, body["vocabulary"])
	assert.Equal(t, []vocabulary.Language{vocabulary.English}, svc.requested)
}

func TestGetVocabulary_UnknownLanguageIsEmpty(t *testing.T) {
	svc := &mockVocabularyService{}
	router := newTestRouter(svc)

	w, body := doGet(t, router, "/api/vocabularies/xx")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "XX", body["language"])
	assert.Equal(t, float64(0), body["count"])
	assert.Equal(t, map[string]interface{}{}, body["vocabulary"])
}

func TestGetVocabulary_Errors(t *testing.T) {
	cause := errors.New("driver failure")

	tests := []struct {
		name           string
		err            error
		wantStatus     int
		wantRetryAfter bool
	}{
		{
			name:           "connection failure",
			err:            apperrors.NewGraphConnectionFailed("neo4j://db", cause),
			wantStatus:     http.StatusServiceUnavailable,
			wantRetryAfter: true,
		},
		{
			name:       "query failure",
			err:        apperrors.NewGraphQueryFailed("MATCH", cause),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "context cancelled",
			err:        apperrors.NewContextCancelled("graph query", context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
		},
		{
			name:       "config error",
			err:        apperrors.NewConfigMissingRequired("NEO4J_URI"),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "unknown error",
			err:        cause,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockVocabularyService{err: tt.err})

			w, body := doGet(t, router, "/api/vocabularies/EN")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "Failed to fetch vocabulary", body["error"])
			if tt.wantRetryAfter {
				assert.Equal(t, "5", w.Header().Get("Retry-After"))
			} else {
				assert.Empty(t, w.Header().Get("Retry-After"))
			}
		})
	}
}

func TestGetVocabularies(t *testing.T) {
	svc := &mockVocabularyService{
		data: map[vocabulary.Language]vocabulary.Mapping{
			vocabulary.English: {"dog": "a domesticated canine"},
			vocabulary.German:  {"Hund": "ein Hund"},
		},
	}
	router := newTestRouter(svc)

	w, body := doGet(t, router, "/api/vocabularies?languages=en,DE,,")

	assert.Equal(t, http.StatusOK, w.Code)
	vocabularies, ok := body["vocabularies"].(map[string]interface{})
	require.True(t, ok)
	require.Len(t, vocabularies, 2)

	de, ok := vocabularies["DE"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "German", de["name"])
	assert.Equal(t, map[string]interface{}{"Hund": "ein Hund"}, de["vocabulary"])
}

func TestGetVocabularies_MissingParameter(t *testing.T) {
	router := newTestRouter(&mockVocabularyService{})

	w, body := doGet(t, router, "/api/vocabularies")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "languages query parameter is required", body["error"])
}

func TestGetVocabularies_Error(t *testing.T) {
	svc := &mockVocabularyService{err: apperrors.NewGraphQueryFailed("MATCH", errors.New("boom"))}
	router := newTestRouter(svc)

	w, _ := doGet(t, router, "/api/vocabularies?languages=EN,FR")

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetTerm(t *testing.T) {
	svc := &mockVocabularyService{
		data: map[vocabulary.Language]vocabulary.Mapping{
			vocabulary.English: {"dog": "a domesticated canine"},
		},
	}
	router := newTestRouter(svc)

	w, body := doGet(t, router, "/api/vocabularies/EN/Dog")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dog", body["term"])
	assert.Equal(t, "a domesticated canine", body["definition"])

	w, body = doGet(t, router, "/api/vocabularies/EN/wolf")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Term not found", body["error"])
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(&mockVocabularyService{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("OPTIONS", "/api/vocabularies/EN", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
