package handler

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/go-playground/validator/v10"

	internal_errors "github.com/yogeshrakate/skill-matrix-backend/internal/errors"
	"github.com/yogeshrakate/skill-matrix-backend/internal/logger"
)

func decodeValidate(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("invalid request body", "error", err)
		return &internal_errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: 400}
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("request body failed validation", "error", err)
		return &internal_errors.ErrorWithStatusCode{Message: "Required fields missing", StatusCode: 400}
	}
	return nil
}

// parseIntParam parses an optional integer query parameter,
// falling back to def when the parameter is absent.
func parseIntParam(param string, def int) (int, error) {
	if param == "" {
		return def, nil
	}
	val, err := strconv.Atoi(param)
	if err != nil {
		return 0, &internal_errors.ErrorWithStatusCode{Message: "Parameter must be an integer", StatusCode: 400}
	}
	return val, nil
}
