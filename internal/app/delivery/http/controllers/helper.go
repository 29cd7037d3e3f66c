package controllers

import (
	"context"
	"errors"
	"hospital-service/internal/pkg/exceptions"
	"hospital-service/internal/pkg/utils"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// decodeJSONBody decodes a single JSON object, rejecting unknown fields and bodies over limitInMegabyte.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, limitInMegabyte int, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, int64(limitInMegabyte)<<20)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(dst)
	if err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	return nil
}

func writeUsecaseError(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
