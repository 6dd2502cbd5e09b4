package server

import (
	"errors"
	"strconv"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed skip/limit query parameters.
type Pagination struct {
	Skip  int
	Limit int
}

const (
	defaultPaginationLimit = 10
	maxPaginationLimit     = 100
)

// parsePagination extracts the skip and limit query parameters. Malformed and
// out-of-range values are rejected with 422, not defaulted or clamped: both
// must be integers, skip must be >= 0 and limit must be between 1 and 100.
// On failure it writes the response and returns errResponseWritten; callers
// should return nil in that case.
func (s *Server) parsePagination(c *fiber.Ctx) (Pagination, error) {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("skip must be an integer"))
		return Pagination{}, errResponseWritten
	}
	limit, err := queryInt(c, "limit", defaultPaginationLimit)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("limit must be an integer"))
		return Pagination{}, errResponseWritten
	}

	if skip < 0 {
		_ = models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("skip must be greater than or equal to 0"))
		return Pagination{}, errResponseWritten
	}
	if limit < 1 || limit > maxPaginationLimit {
		_ = models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("limit must be between 1 and 100"))
		return Pagination{}, errResponseWritten
	}

	return Pagination{Skip: skip, Limit: limit}, nil
}

// queryInt parses an integer query parameter. Unlike fiber's QueryInt it does
// not swallow malformed values by falling back to the default.
func queryInt(c *fiber.Ctx, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		label := "ID"
		if param == "commentId" {
			label = "comment ID"
		}
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+label))
		return 0, errResponseWritten
	}
	return uint(id), nil
}
