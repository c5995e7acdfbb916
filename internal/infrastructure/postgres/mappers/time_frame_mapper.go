package mappers

import (
	"time"

	"github.com/tencoupons/slot-service/internal/domain"
	"github.com/tencoupons/slot-service/internal/infrastructure/postgres/models"
)

func ToDomainTimeFrame(model *models.SlotTimeFrameModel) *domain.TimeFrame {
	window := domain.OpenWindow()
	if model.EndDatetime != nil {
		window = domain.ClosedWindow(*model.EndDatetime)
	}
	return &domain.TimeFrame{
		ID:        model.ID,
		SlotID:    model.SlotID,
		CouponID:  model.CouponID,
		StartAt:   model.StartDatetime,
		Window:    window,
		CreatedAt: model.CreatedAt,
	}
}

func ToGORMTimeFrame(frame *domain.TimeFrame) *models.SlotTimeFrameModel {
	var endDatetime *time.Time
	if end, closed := frame.Window.End(); closed {
		endDatetime = &end
	}
	return &models.SlotTimeFrameModel{
		ID:            frame.ID,
		SlotID:        frame.SlotID,
		CouponID:      frame.CouponID,
		StartDatetime: frame.StartAt,
		EndDatetime:   endDatetime,
		CreatedAt:     frame.CreatedAt,
	}
}
