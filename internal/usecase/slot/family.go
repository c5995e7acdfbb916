package slot

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tencoupons/slot-service/internal/domain"
	slotdto "github.com/tencoupons/slot-service/internal/usecase/dto/slot"
	"github.com/tencoupons/slot-service/internal/usecase/timeframe"
)

// FamilyOf resolves the lineage a slot belongs to: its head and every
// current child of that head.
func (uc *DefaultSlotUsecase) FamilyOf(ctx context.Context, slotID string) (*domain.Family, error) {
	slot, err := uc.SlotRepo.GetSlotByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	head := slot
	if parentID, ok := slot.Role.ParentID(); ok {
		head, err = uc.SlotRepo.GetSlotByID(ctx, parentID)
		if err != nil {
			return nil, err
		}
	}
	children, err := uc.SlotRepo.ListChildren(ctx, head.ID)
	if err != nil {
		return nil, err
	}
	return &domain.Family{Head: head, Children: children}, nil
}

// ListCurrentFamilies groups the business's currently running slots into
// lineages, heads first. A child whose head is no longer current starts no
// family of its own and is dropped.
func (uc *DefaultSlotUsecase) ListCurrentFamilies(ctx context.Context, businessID string) ([]*domain.Family, error) {
	slots, err := uc.SlotRepo.ListCurrentBusinessSlots(ctx, businessID, time.Now())
	if err != nil {
		return nil, err
	}

	var families []*domain.Family
	byHead := make(map[string]*domain.Family)
	for _, s := range slots {
		if s.Role.IsHead() {
			family := &domain.Family{Head: s}
			byHead[s.ID] = family
			families = append(families, family)
		}
	}
	for _, s := range slots {
		parentID, ok := s.Role.ParentID()
		if !ok {
			continue
		}
		if family, found := byHead[parentID]; found {
			family.Children = append(family.Children, s)
		}
	}
	return families, nil
}

// CheckAvailableFamilySlot scans the business's current families for a
// member without an active time frame. Idle heads win over idle children,
// idle children of an older family over capacity in a younger one; a
// family below the size cap offers room for a new child. A nil ParentSlot
// in the result means every family is full: the advertiser must purchase.
func (uc *DefaultSlotUsecase) CheckAvailableFamilySlot(ctx context.Context, businessID string) (*slotdto.FamilyAvailability, error) {
	families, err := uc.ListCurrentFamilies(ctx, businessID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, family := range families {
		active, err := uc.FrameRepo.HasActiveFrame(ctx, family.Head.ID, now)
		if err != nil {
			return nil, err
		}
		if !active {
			return &slotdto.FamilyAvailability{
				ParentSlot:      family.Head,
				PublishToParent: true,
			}, nil
		}
		for _, child := range family.Children {
			active, err := uc.FrameRepo.HasActiveFrame(ctx, child.ID, now)
			if err != nil {
				return nil, err
			}
			if !active {
				return &slotdto.FamilyAvailability{
					ParentSlot:     family.Head,
					ChildSlot:      child,
					PublishToChild: true,
				}, nil
			}
		}
		if len(family.Children) < domain.MaxChildrenPerFamily {
			return &slotdto.FamilyAvailability{ParentSlot: family.Head}, nil
		}
	}
	return &slotdto.FamilyAvailability{}, nil
}

// PublishCoupon puts a coupon live on the slot the availability scan
// picked: an idle head, an idle child realigned with its head, or a brand
// new child generation. The frame opens in the same transaction as the
// slot write so a concurrent publish to the same family serializes.
func (uc *DefaultSlotUsecase) PublishCoupon(ctx context.Context, avail *slotdto.FamilyAvailability, couponID string) (*domain.Slot, *domain.TimeFrame, error) {
	if avail == nil || avail.ParentSlot == nil {
		return nil, nil, domain.ErrNotFound
	}

	var target *domain.Slot
	var frame *domain.TimeFrame
	err := uc.SlotRepo.InTx(ctx, func(tx domain.SlotTx) error {
		parent, err := tx.SlotForUpdate(avail.ParentSlot.ID)
		if err != nil {
			return err
		}

		switch {
		case avail.PublishToChild:
			child, err := tx.SlotForUpdate(avail.ChildSlot.ID)
			if err != nil {
				return err
			}
			// An idle child may lag behind its head after renewals.
			childOriginal := *child
			child.SiteID = parent.SiteID
			child.EndDate = parent.EndDate
			childFrames, err := tx.FramesBySlot(child.ID)
			if err != nil {
				return err
			}
			hasPlacements, err := tx.HasFlyerPlacements(child.ID)
			if err != nil {
				return err
			}
			if err := CheckSlot(child, &childOriginal, childFrames, hasPlacements); err != nil {
				return err
			}
			if err := tx.UpdateSlot(child); err != nil {
				return err
			}
			target = child
		case avail.PublishToParent:
			target = parent
		default:
			child := &domain.Slot{
				ID:         uuid.New().String(),
				BusinessID: parent.BusinessID,
				SiteID:     parent.SiteID,
				StartDate:  domain.DateOf(time.Now()),
				EndDate:    parent.EndDate,
				Role:       domain.ChildRole(parent.ID),
			}
			if err := CheckSlot(child, nil, nil, false); err != nil {
				return err
			}
			if err := tx.InsertSlot(child); err != nil {
				return err
			}
			target = child
		}

		frame = &domain.TimeFrame{
			ID:       uuid.New().String(),
			SlotID:   target.ID,
			CouponID: couponID,
			StartAt:  time.Now().UTC(),
			Window:   domain.OpenWindow(),
		}
		siblings, err := tx.FramesBySlot(target.ID)
		if err != nil {
			return err
		}
		if err := timeframe.ValidateFrame(target, frame, siblings); err != nil {
			return err
		}
		return tx.InsertFrame(frame)
	})
	if err != nil {
		uc.recordRejection(err)
		return nil, nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordFrameOpened(target.SiteID)
	}
	return target, frame, nil
}
