package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/you-humble/mraos/internal/model"
	"github.com/you-humble/mraos/platform/logger"
)

const maxBodyBytes = 1 << 16

type FactoryService interface {
	Snapshot(ctx context.Context) model.Snapshot
	Metrics(ctx context.Context) model.FactoryMetrics
	Operators(ctx context.Context) []model.Operator
	Machines(ctx context.Context) []model.Machine
	WorkOrders(ctx context.Context) []model.WorkOrder
	Materials(ctx context.Context) []model.Material
	AuditLog(ctx context.Context) []model.AuditLogEntry
	Alerts(ctx context.Context, filter model.AlertsFilter) []model.Alert

	AssignOperator(ctx context.Context, params model.AssignOperatorParams) (*model.WorkOrder, error)
	AssignMachine(ctx context.Context, params model.AssignMachineParams) (*model.WorkOrder, error)
	AcknowledgeAlert(ctx context.Context, alertID string) (*model.Alert, error)
	UpdateOperatorStatus(ctx context.Context, id string, status model.ResourceStatus) (*model.Operator, error)
	UpdateMachineStatus(ctx context.Context, id string, status model.ResourceStatus) (*model.Machine, error)
	UpdateWorkOrderStatus(ctx context.Context, id string, status model.WorkOrderStatus) (*model.WorkOrder, error)

	Tick(ctx context.Context) model.FactoryMetrics
	Refresh(ctx context.Context) model.FactoryMetrics
}

type handler struct {
	svc FactoryService
}

func NewFactoryHandler(service FactoryService) *handler {
	return &handler{svc: service}
}

// Routes mounts the v1 API on r.
func (h *handler) Routes(r chi.Router) {
	r.Get("/snapshot", h.GetSnapshot)
	r.Get("/metrics", h.GetMetrics)
	r.Get("/operators", h.ListOperators)
	r.Get("/machines", h.ListMachines)
	r.Get("/work-orders", h.ListWorkOrders)
	r.Get("/materials", h.ListMaterials)
	r.Get("/audit-log", h.ListAuditLog)
	r.Get("/alerts", h.ListAlerts)

	r.Post("/work-orders/{id}/operators", h.AssignOperator)
	r.Post("/work-orders/{id}/machine", h.AssignMachine)
	r.Post("/alerts/{id}/acknowledge", h.AcknowledgeAlert)

	r.Put("/operators/{id}/status", h.UpdateOperatorStatus)
	r.Put("/machines/{id}/status", h.UpdateMachineStatus)
	r.Put("/work-orders/{id}/status", h.UpdateWorkOrderStatus)

	r.Post("/simulation/tick", h.Tick)
	r.Post("/simulation/refresh", h.Refresh)
}

func (h *handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.svc.Snapshot(r.Context()))
}

func (h *handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.svc.Metrics(r.Context()))
}

func (h *handler) ListOperators(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.svc.Operators(r.Context()))
}

func (h *handler) ListMachines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.svc.Machines(r.Context()))
}

func (h *handler) ListWorkOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.svc.WorkOrders(r.Context()))
}

func (h *handler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.svc.Materials(r.Context()))
}

func (h *handler) ListAuditLog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.svc.AuditLog(r.Context()))
}

func (h *handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	var filter model.AlertsFilter
	q := r.URL.Query()

	if v := q.Get("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, r, fmt.Errorf("invalid active %q: %w", v, model.ErrValidation))
			return
		}
		filter.ActiveOnly = active
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			writeError(w, r, fmt.Errorf("invalid limit %q: %w", v, model.ErrValidation))
			return
		}
		filter.Limit = limit
	}

	writeJSON(w, r, http.StatusOK, h.svc.Alerts(r.Context(), filter))
}

func (h *handler) AssignOperator(w http.ResponseWriter, r *http.Request) {
	var req assignOperatorRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	wo, err := h.svc.AssignOperator(r.Context(), model.AssignOperatorParams{
		OperatorID:  req.OperatorID,
		WorkOrderID: chi.URLParam(r, "id"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, wo)
}

func (h *handler) AssignMachine(w http.ResponseWriter, r *http.Request) {
	var req assignMachineRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	wo, err := h.svc.AssignMachine(r.Context(), model.AssignMachineParams{
		MachineID:   req.MachineID,
		WorkOrderID: chi.URLParam(r, "id"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, wo)
}

func (h *handler) AcknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.AcknowledgeAlert(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, a)
}

func (h *handler) UpdateOperatorStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	op, err := h.svc.UpdateOperatorStatus(r.Context(), chi.URLParam(r, "id"), model.ResourceStatus(req.Status))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, op)
}

func (h *handler) UpdateMachineStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	m, err := h.svc.UpdateMachineStatus(r.Context(), chi.URLParam(r, "id"), model.ResourceStatus(req.Status))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, m)
}

func (h *handler) UpdateWorkOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	wo, err := h.svc.UpdateWorkOrderStatus(r.Context(), chi.URLParam(r, "id"), model.WorkOrderStatus(req.Status))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, wo)
}

func (h *handler) Tick(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.svc.Tick(r.Context()))
}

func (h *handler) Refresh(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.svc.Refresh(r.Context()))
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %v: %w", err, model.ErrValidation)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error(r.Context(), "encode response", logger.ErrorF(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		logger.Error(r.Context(), "request failed", logger.String("path", r.URL.Path), logger.ErrorF(err))
	}

	writeJSON(w, r, status, errorResponse{Code: status, Message: err.Error()})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest // 400
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict // 409
	default:
		return http.StatusInternalServerError // 500
	}
}
