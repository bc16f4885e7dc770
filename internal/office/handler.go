package office

import (
	"net/http"

	"github.com/mahfuzhasan/officer-registry/internal/transport"
)

type ServiceAPI interface {
	GetAllOffices() ([]OfficeResponse, error)
	GetOfficeByName(name string) (*OfficeResponse, error)
	IsValidOffice(name string) bool
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetOffices(w http.ResponseWriter, r *http.Request) {
	offices, err := h.Service.GetAllOffices()
	if err != nil {
		h.Logger.Error("GetOffices: failed to get offices", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get offices")
		return
	}

	h.WriteJSON(w, http.StatusOK, OfficesResponse{
		Offices: offices,
	})
}
