package controllers

import (
	"context"
	"hospital-service/internal/app/config"
	"hospital-service/internal/app/contracts"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/exceptions"
	"hospital-service/internal/pkg/utils"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SlotController struct {
	Log            *zap.Logger
	SlotUsecase    contracts.SlotUsecase
	InternalConfig *config.InternalConfig
}

var (
	slotControllerInstance *SlotController
	onceSlotController     sync.Once
)

func NewSlotController(logger *zap.Logger, slotUsecase contracts.SlotUsecase, internalConfig *config.InternalConfig) *SlotController {
	onceSlotController.Do(func() {
		slotControllerInstance = &SlotController{
			Log:            logger,
			SlotUsecase:    slotUsecase,
			InternalConfig: internalConfig,
		}
	})
	return slotControllerInstance
}

func (ctrl *SlotController) ListAvailableSlots(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("SlotController.ListAvailableSlots requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	doctorID := chi.URLParam(r, constvars.URLParamDoctorID)
	date := r.URL.Query().Get(constvars.URLQueryParamDate)

	ctrl.Log.Info("SlotController.ListAvailableSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingDateKey, date))

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(ctrl.InternalConfig.Scheduling.RequestTimeoutInSeconds)*time.Second)
	defer cancel()

	response, err := ctrl.SlotUsecase.ListAvailableSlots(ctx, doctorID, date)
	if err != nil {
		ctrl.Log.Error("SlotController.ListAvailableSlots error calling SlotUsecase.ListAvailableSlots",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("SlotController.ListAvailableSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingSlotCountKey, len(response.Available)))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAvailableSlotsSuccessMessage, response)
}
