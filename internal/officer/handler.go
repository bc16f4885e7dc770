package officer

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	apperrors "github.com/mahfuzhasan/officer-registry/internal"
	"github.com/mahfuzhasan/officer-registry/internal/audit"
	"github.com/mahfuzhasan/officer-registry/internal/auth"
	"github.com/mahfuzhasan/officer-registry/internal/privacy"
	"github.com/mahfuzhasan/officer-registry/internal/transport"
	"github.com/mahfuzhasan/officer-registry/pkg/logger"
)

type ServiceAPI interface {
	GetOfficer(actor privacy.Actor, id int64, meta audit.RequestMeta) (RenderedRecord, error)
	ListOfficers(limit, offset int) ([]Summary, error)
	CreateOfficer(actor privacy.Actor, dto CreateOfficerDTO) (*Officer, error)
	UpdateVisibility(actor privacy.Actor, id int64, dto UpdateVisibilityDTO) error
	AuditTrail(actor privacy.Actor, subjectID int64, limit int) ([]*audit.Entry, error)
	ExportCSV(actor privacy.Actor, w io.Writer, meta audit.RequestMeta) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// GetOfficer handles the detailed read; this is the endpoint that writes
// audit entries for restricted fields.
func (h *Handler) GetOfficer(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid officer ID")
		return
	}

	record, err := h.Service.GetOfficer(user.Actor(), id, requestMeta(r))
	if err != nil {
		h.Logger.Error("GetOfficer: service error", "error", err, "officer_id", id, "accessor_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, record)
}

// ListOfficers serves the public summary list; no protected fields, no
// audit entries.
func (h *Handler) ListOfficers(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)

	summaries, err := h.Service.ListOfficers(limit, offset)
	if err != nil {
		h.Logger.Error("ListOfficers: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list officers")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"officers": summaries,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *Handler) CreateOfficer(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateOfficerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateOfficer: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateOfficer(user.Actor(), dto)
	if err != nil {
		h.Logger.Error("CreateOfficer: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateVisibility(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid officer ID")
		return
	}

	var dto UpdateVisibilityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateVisibility: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.UpdateVisibility(user.Actor(), id, dto); err != nil {
		h.Logger.Error("UpdateVisibility: service error", "error", err, "officer_id", id, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) GetAccessLogs(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid officer ID")
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	entries, err := h.Service.AuditTrail(user.Actor(), id, limit)
	if err != nil {
		if err == audit.ErrTrailForbidden {
			h.HandleServiceError(w, apperrors.ErrPermissionDenied)
			return
		}
		h.Logger.Error("GetAccessLogs: service error", "error", err, "officer_id", id, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"subject_id": id,
		"entries":    entries,
	})
}

// ExportOfficers renders the whole directory for the calling actor as
// CSV. The export is buffered so an audit failure aborts the response
// instead of truncating a 200.
func (h *Handler) ExportOfficers(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var buf bytes.Buffer
	if err := h.Service.ExportCSV(user.Actor(), &buf, requestMeta(r)); err != nil {
		h.Logger.Error("ExportOfficers: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="officers.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.Logger.Error("ExportOfficers: failed to write response", "error", err)
	}
}

func requestMeta(r *http.Request) audit.RequestMeta {
	return audit.RequestMeta{
		RequestID: apperrors.RequestIDFromContext(r.Context()),
		IP:        r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}

func paginationParams(r *http.Request) (limit, offset int) {
	limit = 20
	offset = 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}
	return limit, offset
}
