package mappers

import (
	"github.com/tencoupons/slot-service/internal/domain"
	"github.com/tencoupons/slot-service/internal/infrastructure/postgres/models"
)

func ToDomainSlot(model *models.SlotModel) *domain.Slot {
	role := domain.HeadRole()
	if model.ParentSlotID != "" && model.ParentSlotID != model.ID {
		role = domain.ChildRole(model.ParentSlotID)
	}
	return &domain.Slot{
		ID:          model.ID,
		BusinessID:  model.BusinessID,
		SiteID:      model.SiteID,
		StartDate:   model.StartDate,
		EndDate:     model.EndDate,
		RenewalRate: model.RenewalRate,
		IsAutorenew: model.IsAutorenew,
		Role:        role,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func ToGORMSlot(slot *domain.Slot) *models.SlotModel {
	// A head stores its own id as parent, keeping lineage queries uniform.
	parentID := slot.ID
	if id, ok := slot.Role.ParentID(); ok {
		parentID = id
	}
	return &models.SlotModel{
		ID:           slot.ID,
		BusinessID:   slot.BusinessID,
		SiteID:       slot.SiteID,
		StartDate:    slot.StartDate,
		EndDate:      slot.EndDate,
		RenewalRate:  slot.RenewalRate,
		IsAutorenew:  slot.IsAutorenew,
		ParentSlotID: parentID,
		CreatedAt:    slot.CreatedAt,
		UpdatedAt:    slot.UpdatedAt,
	}
}
