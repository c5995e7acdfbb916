package display

import (
	"context"
	"time"

	"github.com/tencoupons/slot-service/internal/domain"
)

// Renew extends the slot's paid range by one renewal period, cascading
// through lineage children. It never opens or closes time frames.
func (uc *DefaultDisplayUsecase) Renew(ctx context.Context, advertiserID, slotID string) (*domain.Slot, error) {
	target, err := uc.SlotUsecase.GetSlotByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if err := uc.requireBusinessOwner(ctx, advertiserID, target.BusinessID); err != nil {
		return nil, err
	}

	renewed, err := uc.SlotUsecase.RenewSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}

	uc.publishEvent(domain.SlotEvent{
		EventType:  domain.EventSlotRenewed,
		SlotID:     renewed.ID,
		BusinessID: renewed.BusinessID,
		SiteID:     renewed.SiteID,
		EndDate:    renewed.EndDate.Format("2006-01-02"),
		OccurredAt: time.Now().UTC(),
	})
	return renewed, nil
}

// SetAutorenew flips autorenew for a slot the advertiser's business owns.
func (uc *DefaultDisplayUsecase) SetAutorenew(ctx context.Context, advertiserID, businessID, slotID string, on bool) error {
	if err := uc.requireBusinessOwner(ctx, advertiserID, businessID); err != nil {
		return err
	}
	target, err := uc.SlotUsecase.GetSlotByID(ctx, slotID)
	if err != nil {
		return err
	}
	// Cannot modify a slot of a different business.
	if target.BusinessID != businessID {
		return domain.ErrAuthorizationDenied
	}
	_, err = uc.SlotUsecase.SetAutorenew(ctx, slotID, on)
	return err
}
