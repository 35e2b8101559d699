package rest

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pumpitfaxt/launchpad-indexer/internal/api/shared/constants"
)

// ListTokensQueryParams holds query parameters for GET /tokens
type ListTokensQueryParams struct {
	Page  int
	Limit int
	Query string
}

// ParseListTokensQuery parses query parameters for GET /tokens.
// Values that are not positive integers fall back to the defaults.
func ParseListTokensQuery(c *gin.Context) ListTokensQueryParams {
	params := ListTokensQueryParams{
		Page:  positiveIntQuery(c, "page", constants.DEFAULT_PAGE),
		Limit: positiveIntQuery(c, "limit", constants.DEFAULT_LIMIT),
		Query: strings.TrimSpace(c.Query("q")),
	}

	if params.Limit > constants.MAX_PAGE_LIMIT {
		params.Limit = constants.MAX_PAGE_LIMIT
	}
	if params.Page > constants.MAX_PAGE {
		params.Page = constants.MAX_PAGE
	}

	return params
}

func positiveIntQuery(c *gin.Context, key string, fallback int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
