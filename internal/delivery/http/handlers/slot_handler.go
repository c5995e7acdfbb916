package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tencoupons/slot-service/internal/domain"
	"github.com/tencoupons/slot-service/internal/usecase/slot"
	"github.com/tencoupons/slot-service/internal/usecase/timeframe"

	slotdto "github.com/tencoupons/slot-service/internal/usecase/dto/slot"
)

const dateLayout = "2006-01-02"

type CreateHeadSlotRequest struct {
	BusinessID  string   `json:"business_id"`
	SiteID      int64    `json:"site_id"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date"`
	RenewalRate *float64 `json:"renewal_rate,omitempty"`
	IsAutorenew bool     `json:"is_autorenew"`
}

type CreateChildSlotRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
}

type ChangeEndDateRequest struct {
	EndDate string `json:"end_date"`
}

type TransferSiteRequest struct {
	SiteID int64 `json:"site_id"`
}

type SetAutorenewRequest struct {
	Enabled bool `json:"enabled"`
}

type SlotResponse struct {
	ID           string   `json:"id"`
	BusinessID   string   `json:"business_id"`
	SiteID       int64    `json:"site_id"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	RenewalRate  *float64 `json:"renewal_rate,omitempty"`
	IsAutorenew  bool     `json:"is_autorenew"`
	Role         string   `json:"role"`
	ParentSlotID string   `json:"parent_slot_id,omitempty"`
}

type FamilyResponse struct {
	Head     SlotResponse   `json:"head"`
	Children []SlotResponse `json:"children"`
}

type TimeFrameResponse struct {
	ID            string `json:"id"`
	SlotID        string `json:"slot_id"`
	CouponID      string `json:"coupon_id"`
	StartDatetime string `json:"start_datetime"`
	EndDatetime   string `json:"end_datetime,omitempty"`
}

type CouponResponse struct {
	ID             string `json:"id"`
	BusinessID     string `json:"business_id"`
	Code           string `json:"code"`
	ExpirationDate string `json:"expiration_date"`
}

func toSlotResponse(s *domain.Slot) SlotResponse {
	resp := SlotResponse{
		ID:          s.ID,
		BusinessID:  s.BusinessID,
		SiteID:      s.SiteID,
		StartDate:   s.StartDate.Format(dateLayout),
		EndDate:     s.EndDate.Format(dateLayout),
		RenewalRate: s.RenewalRate,
		IsAutorenew: s.IsAutorenew,
		Role:        "head",
	}
	if parentID, ok := s.Role.ParentID(); ok {
		resp.Role = "child"
		resp.ParentSlotID = parentID
	}
	return resp
}

func toFamilyResponse(f *domain.Family) FamilyResponse {
	resp := FamilyResponse{
		Head:     toSlotResponse(f.Head),
		Children: make([]SlotResponse, len(f.Children)),
	}
	for i, child := range f.Children {
		resp.Children[i] = toSlotResponse(child)
	}
	return resp
}

func toTimeFrameResponse(f *domain.TimeFrame) TimeFrameResponse {
	resp := TimeFrameResponse{
		ID:            f.ID,
		SlotID:        f.SlotID,
		CouponID:      f.CouponID,
		StartDatetime: f.StartAt.Format(time.RFC3339),
	}
	if end, closed := f.Window.End(); closed {
		resp.EndDatetime = end.Format(time.RFC3339)
	}
	return resp
}

type SlotHandler struct {
	slots      slot.SlotUsecase
	frames     timeframe.TimeFrameUsecase
	placements domain.FlyerPlacementRepository
}

func NewSlotHandler(slots slot.SlotUsecase, frames timeframe.TimeFrameUsecase, placements domain.FlyerPlacementRepository) *SlotHandler {
	return &SlotHandler{slots: slots, frames: frames, placements: placements}
}

func parseDateOrEmpty(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

// CreateHeadSlot handles POST /slots
func (h *SlotHandler) CreateHeadSlot(w http.ResponseWriter, r *http.Request) {
	var req CreateHeadSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}
	if req.BusinessID == "" || req.EndDate == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "business_id and end_date required"})
		return
	}

	startDate, err := parseDateOrEmpty(req.StartDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid start_date; use YYYY-MM-DD"})
		return
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid end_date; use YYYY-MM-DD"})
		return
	}

	created, err := h.slots.CreateHeadSlot(r.Context(), &slotdto.CreateHeadSlotInput{
		BusinessID:  req.BusinessID,
		SiteID:      req.SiteID,
		StartDate:   startDate,
		EndDate:     endDate,
		RenewalRate: req.RenewalRate,
		IsAutorenew: req.IsAutorenew,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSlotResponse(created))
}

// CreateChildSlot handles POST /slots/{slotID}/children
func (h *SlotHandler) CreateChildSlot(w http.ResponseWriter, r *http.Request) {
	var req CreateChildSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid start_date; use YYYY-MM-DD"})
		return
	}
	endDate, err := parseDateOrEmpty(req.EndDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid end_date; use YYYY-MM-DD"})
		return
	}

	created, err := h.slots.CreateChildSlot(r.Context(), &slotdto.CreateChildSlotInput{
		ParentSlotID: chi.URLParam(r, "slotID"),
		StartDate:    startDate,
		EndDate:      endDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSlotResponse(created))
}

// GetSlot handles GET /slots/{slotID}
func (h *SlotHandler) GetSlot(w http.ResponseWriter, r *http.Request) {
	found, err := h.slots.GetSlotByID(r.Context(), chi.URLParam(r, "slotID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSlotResponse(found))
}

// RenewSlot handles POST /slots/{slotID}/renew
func (h *SlotHandler) RenewSlot(w http.ResponseWriter, r *http.Request) {
	renewed, err := h.slots.RenewSlot(r.Context(), chi.URLParam(r, "slotID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSlotResponse(renewed))
}

// ChangeEndDate handles PATCH /slots/{slotID}/end-date
func (h *SlotHandler) ChangeEndDate(w http.ResponseWriter, r *http.Request) {
	var req ChangeEndDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid end_date; use YYYY-MM-DD"})
		return
	}

	updated, err := h.slots.ChangeEndDate(r.Context(), chi.URLParam(r, "slotID"), endDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSlotResponse(updated))
}

// TransferSite handles PATCH /slots/{slotID}/site
func (h *SlotHandler) TransferSite(w http.ResponseWriter, r *http.Request) {
	var req TransferSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}

	updated, err := h.slots.TransferSite(r.Context(), chi.URLParam(r, "slotID"), req.SiteID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSlotResponse(updated))
}

// SetAutorenew handles PATCH /slots/{slotID}/autorenew
func (h *SlotHandler) SetAutorenew(w http.ResponseWriter, r *http.Request) {
	var req SetAutorenewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}

	updated, err := h.slots.SetAutorenew(r.Context(), chi.URLParam(r, "slotID"), req.Enabled)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSlotResponse(updated))
}

// GetFamily handles GET /slots/{slotID}/family
func (h *SlotHandler) GetFamily(w http.ResponseWriter, r *http.Request) {
	family, err := h.slots.FamilyOf(r.Context(), chi.URLParam(r, "slotID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFamilyResponse(family))
}

// ListFrames handles GET /slots/{slotID}/frames
func (h *SlotHandler) ListFrames(w http.ResponseWriter, r *http.Request) {
	frames, err := h.frames.ListSlotFrames(r.Context(), chi.URLParam(r, "slotID"))
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]TimeFrameResponse, len(frames))
	for i, frame := range frames {
		resp[i] = toTimeFrameResponse(frame)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetActiveCoupon handles GET /slots/{slotID}/active-coupon
func (h *SlotHandler) GetActiveCoupon(w http.ResponseWriter, r *http.Request) {
	coupon, err := h.slots.GetActiveCoupon(r.Context(), chi.URLParam(r, "slotID"))
	if err != nil {
		writeError(w, err)
		return
	}
	if coupon == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"active": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"active": true,
		"coupon": CouponResponse{
			ID:             coupon.ID,
			BusinessID:     coupon.BusinessID,
			Code:           coupon.Code,
			ExpirationDate: coupon.ExpirationDate.Format(dateLayout),
		},
	})
}

type CreateFlyerPlacementRequest struct {
	SendDate string `json:"send_date"`
}

// CreateFlyerPlacement handles POST /slots/{slotID}/flyer-placements.
// Recording a placement freezes the slot's site.
func (h *SlotHandler) CreateFlyerPlacement(w http.ResponseWriter, r *http.Request) {
	var req CreateFlyerPlacementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}
	sendDate, err := time.Parse(dateLayout, req.SendDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid send_date; use YYYY-MM-DD"})
		return
	}

	found, err := h.slots.GetSlotByID(r.Context(), chi.URLParam(r, "slotID"))
	if err != nil {
		writeError(w, err)
		return
	}

	placement := &domain.FlyerPlacement{
		ID:       uuid.New().String(),
		SlotID:   found.ID,
		SiteID:   found.SiteID,
		SendDate: sendDate,
	}
	if err := h.placements.CreatePlacement(r.Context(), placement); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": placement.ID})
}

// ListCurrentFamilies handles GET /businesses/{businessID}/families
func (h *SlotHandler) ListCurrentFamilies(w http.ResponseWriter, r *http.Request) {
	families, err := h.slots.ListCurrentFamilies(r.Context(), chi.URLParam(r, "businessID"))
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]FamilyResponse, len(families))
	for i, family := range families {
		resp[i] = toFamilyResponse(family)
	}
	writeJSON(w, http.StatusOK, resp)
}
