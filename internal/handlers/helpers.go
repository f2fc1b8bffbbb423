package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/skillbridge/marketplace/internal/httperr"
)

// pagination reads page/limit query parameters with the usual clamping.
func pagination(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	return page, limit, (page - 1) * limit
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func parseUintParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// writeError maps domain and storage errors onto the HTTP taxonomy. Unknown
// errors become a 500 without leaking detail.
func writeError(c *gin.Context, err error) {
	if fe, ok := httperr.AsField(err); ok {
		httperr.WriteField(c, fe.Field, fe.Code, fe.Error())
		return
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		if strings.HasSuffix(be.Code, "_not_found") {
			httperr.NotFound(c, be.Code, be.Code)
			return
		}
		httperr.BadRequest(c, be.Code, be.Code)
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "not_found", "resource not found")
		return
	}

	httperr.Internal(c, "internal_error", "something went wrong")
}
