package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tencoupons/slot-service/internal/usecase/display"

	displaydto "github.com/tencoupons/slot-service/internal/usecase/dto/display"
)

type TurnOnRequest struct {
	AdvertiserID string `json:"advertiser_id"`
	BusinessID   string `json:"business_id"`
	CouponID     string `json:"coupon_id"`
}

type TurnOffRequest struct {
	AdvertiserID string `json:"advertiser_id"`
	CouponID     string `json:"coupon_id"`
	SlotID       string `json:"slot_id"`
}

type DisplayRenewRequest struct {
	AdvertiserID string `json:"advertiser_id"`
	SlotID       string `json:"slot_id"`
}

type DisplayAutorenewRequest struct {
	AdvertiserID string `json:"advertiser_id"`
	BusinessID   string `json:"business_id"`
	SlotID       string `json:"slot_id"`
	Enabled      bool   `json:"enabled"`
}

type TurnOnResponse struct {
	PurchaseRequired bool   `json:"purchase_required"`
	SlotID           string `json:"slot_id,omitempty"`
	FrameID          string `json:"frame_id,omitempty"`
	ExpirationDate   string `json:"expiration_date,omitempty"`
}

type DisplayHandler struct {
	display display.DisplayUsecase
}

func NewDisplayHandler(displayUsecase display.DisplayUsecase) *DisplayHandler {
	return &DisplayHandler{display: displayUsecase}
}

// TurnOn handles POST /display/on
func (h *DisplayHandler) TurnOn(w http.ResponseWriter, r *http.Request) {
	var req TurnOnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}
	if req.AdvertiserID == "" || req.BusinessID == "" || req.CouponID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "advertiser_id, business_id and coupon_id required"})
		return
	}

	out, err := h.display.TurnOn(r.Context(), &displaydto.TurnOnInput{
		AdvertiserID: req.AdvertiserID,
		BusinessID:   req.BusinessID,
		CouponID:     req.CouponID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	resp := TurnOnResponse{PurchaseRequired: out.PurchaseRequired}
	if !out.PurchaseRequired {
		resp.SlotID = out.SlotID
		resp.FrameID = out.FrameID
		resp.ExpirationDate = out.ExpirationDate.Format(dateLayout)
	}
	writeJSON(w, http.StatusOK, resp)
}

// TurnOff handles POST /display/off
func (h *DisplayHandler) TurnOff(w http.ResponseWriter, r *http.Request) {
	var req TurnOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}
	if req.AdvertiserID == "" || req.CouponID == "" || req.SlotID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "advertiser_id, coupon_id and slot_id required"})
		return
	}

	err := h.display.TurnOff(r.Context(), &displaydto.TurnOffInput{
		AdvertiserID: req.AdvertiserID,
		CouponID:     req.CouponID,
		SlotID:       req.SlotID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "off"})
}

// Renew handles POST /display/renew
func (h *DisplayHandler) Renew(w http.ResponseWriter, r *http.Request) {
	var req DisplayRenewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}

	renewed, err := h.display.Renew(r.Context(), req.AdvertiserID, req.SlotID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSlotResponse(renewed))
}

// SetAutorenew handles POST /display/autorenew
func (h *DisplayHandler) SetAutorenew(w http.ResponseWriter, r *http.Request) {
	var req DisplayAutorenewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}

	err := h.display.SetAutorenew(r.Context(), req.AdvertiserID, req.BusinessID, req.SlotID, req.Enabled)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
