package handler

import (
	"strconv"

	"github.com/avasilyev/football-stats-service/internal/repository"
	"github.com/avasilyev/football-stats-service/internal/service"
	"github.com/gin-gonic/gin"
)

// pathID parses a numeric path parameter. Returns a field-level validation
// error the response mapper turns into a 400.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.NewInvalidInputError([]service.FieldError{
			{Field: name, Message: "must be a valid integer > 0"},
		})
	}
	return id, nil
}

// pageFromQuery reads limit/offset; absent or garbage values fall through to
// zero and get normalized by the service layer.
func pageFromQuery(c *gin.Context) repository.Page {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return repository.Page{Limit: limit, Offset: offset}
}

// optIntQuery parses an optional integer query parameter. A present but
// malformed value is an error; absence is nil.
func optIntQuery(c *gin.Context, name string) (*int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, service.NewInvalidInputError([]service.FieldError{
			{Field: name, Message: "must be a valid integer"},
		})
	}
	return &v, nil
}

func optInt64Query(c *gin.Context, name string) (*int64, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, service.NewInvalidInputError([]service.FieldError{
			{Field: name, Message: "must be a valid integer"},
		})
	}
	return &v, nil
}
