package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"lexigraph/backend/internal/vocabulary"
	apperrors "lexigraph/backend/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VocabularyService is the read side the HTTP API depends on
type VocabularyService interface {
	FetchByLanguage(ctx context.Context, language vocabulary.Language) (vocabulary.Mapping, error)
	FetchLanguages(ctx context.Context, languages ...vocabulary.Language) (map[vocabulary.Language]vocabulary.Mapping, error)
}

// Handler serves vocabulary over HTTP
type Handler struct {
	vocab  VocabularyService
	logger *zap.Logger
}

// NewRouter builds the gin engine with middleware and every route registered
func NewRouter(vocab VocabularyService, log *zap.Logger) *gin.Engine {
	h := &Handler{vocab: vocab, logger: log}

	router := gin.New()
	router.Use(requestID())
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())
	router.Use(cors())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/languages", h.listLanguages)
		api.GET("/vocabularies", h.getVocabularies)
		api.GET("/vocabularies/:language", h.getVocabulary)
		api.GET("/vocabularies/:language/:term", h.getTerm)
	}

	return router
}

type languageResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type vocabularyResponse struct {
	Language   string             `json:"language"`
	Name       string             `json:"name"`
	Count      int                `json:"count"`
	Vocabulary vocabulary.Mapping `json:"vocabulary"`
}

func (h *Handler) listLanguages(c *gin.Context) {
	languages := vocabulary.Languages()
	resp := make([]languageResponse, 0, len(languages))
	for _, language := range languages {
		resp = append(resp, languageResponse{Code: language.String(), Name: language.Name()})
	}
	c.JSON(http.StatusOK, gin.H{"languages": resp})
}

func (h *Handler) getVocabulary(c *gin.Context) {
	language, _ := vocabulary.ParseLanguage(c.Param("language"))

	mapping, err := h.vocab.FetchByLanguage(c.Request.Context(), language)
	if err != nil {
		h.writeError(c, "Failed to fetch vocabulary", err)
		return
	}

	c.JSON(http.StatusOK, newVocabularyResponse(language, mapping))
}

func (h *Handler) getVocabularies(c *gin.Context) {
	raw := c.Query("languages")
	if strings.TrimSpace(raw) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "languages query parameter is required"})
		return
	}

	var languages []vocabulary.Language
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		language, _ := vocabulary.ParseLanguage(part)
		languages = append(languages, language)
	}

	byLanguage, err := h.vocab.FetchLanguages(c.Request.Context(), languages...)
	if err != nil {
		h.writeError(c, "Failed to fetch vocabularies", err)
		return
	}

	resp := make(map[string]vocabularyResponse, len(byLanguage))
	for language, mapping := range byLanguage {
		resp[language.String()] = newVocabularyResponse(language, mapping)
	}
	c.JSON(http.StatusOK, gin.H{"vocabularies": resp})
}

func (h *Handler) getTerm(c *gin.Context) {
	language, _ := vocabulary.ParseLanguage(c.Param("language"))
	term := c.Param("term")

	mapping, err := h.vocab.FetchByLanguage(c.Request.Context(), language)
	if err != nil {
		h.writeError(c, "Failed to fetch vocabulary", err)
		return
	}

	entry, ok := mapping.Lookup(term)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Term not found"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func newVocabularyResponse(language vocabulary.Language, mapping vocabulary.Mapping) vocabularyResponse {
	return vocabularyResponse{
		Language:   language.String(),
		Name:       language.Name(),
		Count:      len(mapping),
		Vocabulary: mapping,
	}
}

func (h *Handler) writeError(c *gin.Context, message string, err error) {
	status := errorStatus(err)
	h.logger.Error(message,
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Int("status", status),
		zap.Error(err),
	)
	if apperrors.IsRetryable(err) {
		c.Header("Retry-After", "5")
	}
	c.JSON(status, gin.H{"error": message})
}

// errorStatus maps the error taxonomy onto HTTP status codes
func errorStatus(err error) int {
	var connErr *apperrors.ErrGraphConnectionFailed
	var queryErr *apperrors.ErrGraphQueryFailed

	switch {
	case errors.As(err, &connErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &queryErr):
		return http.StatusBadGateway
	case apperrors.IsErrorType(err, apperrors.ErrorTypeContext):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
