package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/indexcache"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/relindex"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/session"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/tableio"
)

// writeError maps domain errors onto HTTP statuses. Schema errors carry the
// missing columns and the expected header so the client can show both.
func (s *Server) writeError(c *gin.Context, err error) {
	var schemaErr *relindex.SchemaError
	var parseErr *relindex.ParseError
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.As(err, &schemaErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":           err.Error(),
			"kind":            "schema",
			"missing":         schemaErr.Missing,
			"expected_header": relindex.ExpectedHeaderLine(),
		})
	case errors.As(err, &parseErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "parse"})
	case errors.As(err, &maxBytesErr):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload exceeds size limit"})
	case errors.Is(err, tableio.ErrUnsupportedType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "unsupported_type"})
	case errors.Is(err, indexcache.ErrDatasetNotFound),
		errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, relindex.ErrUnknownCarrier):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		s.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
