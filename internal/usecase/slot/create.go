package slot

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tencoupons/slot-service/internal/domain"
	slotdto "github.com/tencoupons/slot-service/internal/usecase/dto/slot"
)

// CreateHeadSlot allocates a new slot as the head of its own lineage,
// invoked when an advertiser purchases a placement.
func (uc *DefaultSlotUsecase) CreateHeadSlot(ctx context.Context, input *slotdto.CreateHeadSlotInput) (*domain.Slot, error) {
	startDate := domain.DateOf(input.StartDate)
	if input.StartDate.IsZero() {
		startDate = domain.DateOf(time.Now())
	}
	rate := input.RenewalRate
	if rate == nil {
		defaultRate := float64(domain.DefaultRenewalRate)
		rate = &defaultRate
	}

	head := &domain.Slot{
		ID:          uuid.New().String(),
		BusinessID:  input.BusinessID,
		SiteID:      input.SiteID,
		StartDate:   startDate,
		EndDate:     domain.DateOf(input.EndDate),
		RenewalRate: rate,
		IsAutorenew: input.IsAutorenew,
		Role:        domain.HeadRole(),
	}
	if input.EndDate.IsZero() {
		head.EndDate = time.Time{}
	}

	err := uc.SlotRepo.InTx(ctx, func(tx domain.SlotTx) error {
		if err := CheckSlot(head, nil, nil, false); err != nil {
			return err
		}
		return tx.InsertSlot(head)
	})
	if err != nil {
		uc.recordRejection(err)
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordSlotCreated(head.SiteID, "head")
	}
	slog.Info("head slot created", "slot_id", head.ID, "business_id", head.BusinessID, "site_id", head.SiteID)
	return head, nil
}

// CreateChildSlot allocates a new generation under an existing lineage,
// used when a renewal or display restart should not reuse the current
// generation. The child always attaches to the lineage head.
func (uc *DefaultSlotUsecase) CreateChildSlot(ctx context.Context, input *slotdto.CreateChildSlotInput) (*domain.Slot, error) {
	var child *domain.Slot
	err := uc.SlotRepo.InTx(ctx, func(tx domain.SlotTx) error {
		parent, err := tx.SlotForUpdate(input.ParentSlotID)
		if err != nil {
			return err
		}
		headID := parent.ID
		if parentID, ok := parent.Role.ParentID(); ok {
			headID = parentID
		}

		startDate := domain.DateOf(input.StartDate)
		if input.StartDate.IsZero() {
			startDate = domain.DateOf(time.Now())
		}
		endDate := domain.DateOf(input.EndDate)
		if input.EndDate.IsZero() {
			endDate = parent.EndDate
		}

		child = &domain.Slot{
			ID:         uuid.New().String(),
			BusinessID: parent.BusinessID,
			SiteID:     parent.SiteID,
			StartDate:  startDate,
			EndDate:    endDate,
			Role:       domain.ChildRole(headID),
		}
		if err := CheckSlot(child, nil, nil, false); err != nil {
			return err
		}
		return tx.InsertSlot(child)
	})
	if err != nil {
		uc.recordRejection(err)
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordSlotCreated(child.SiteID, "child")
	}
	slog.Info("child slot created", "slot_id", child.ID, "parent_slot_id", input.ParentSlotID)
	return child, nil
}

func (uc *DefaultSlotUsecase) recordRejection(err error) {
	if uc.Metrics == nil {
		return
	}
	if rule := domain.ViolatedRule(err); rule != "" {
		uc.Metrics.RecordSlotRejected(rule)
	}
}
