package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/thesis-api/internal/middleware"
	"github.com/noah-isme/thesis-api/internal/service"
	"github.com/noah-isme/thesis-api/internal/utils"
)

func requestContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx
}

func parseUintParam(c *fiber.Ctx, key string) (uint, error) {
	value := strings.TrimSpace(c.Params(key))
	if value == "" {
		return 0, fmt.Errorf("%s required", key)
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(parsed), nil
}

func userIDFromContext(c *fiber.Ctx) (uint, bool) {
	value := c.Locals("user_id")
	if value == nil {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

func userRoleFromContext(c *fiber.Ctx) string {
	if value := c.Locals("user_role"); value != nil {
		if role, ok := value.(string); ok {
			return role
		}
	}
	return ""
}

// actorFromContext resolves the authenticated principal seeded by the JWT
// middleware.
func actorFromContext(c *fiber.Ctx) (service.Actor, bool) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{UserID: userID, Role: userRoleFromContext(c)}, true
}

// respondServiceError translates service failures into HTTP responses:
// validation failures and invalid input become 400, missing entities 404,
// authorization failures 403, state collisions 409 and anything else 500.
func respondServiceError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return utils.SendError(c, fiber.StatusBadRequest, formatValidationError(validationErrors))
	}

	switch service.KindOf(err) {
	case service.KindNotFound:
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case service.KindInvalidInput:
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case service.KindForbidden:
		return utils.SendError(c, fiber.StatusForbidden, err.Error())
	case service.KindConflict:
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	}

	logger.Error().
		Err(err).
		Str("correlation_id", middleware.GetCorrelationID(c)).
		Str("path", c.Path()).
		Msg("request failed")

	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}

func formatValidationError(errs validator.ValidationErrors) string {
	fields := make([]string, 0, len(errs))
	for _, fieldError := range errs {
		fields = append(fields, strings.ToLower(fieldError.Field()))
	}
	return fmt.Sprintf("validation failed on: %s", strings.Join(fields, ", "))
}
