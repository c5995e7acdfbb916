package repository

import (
	"context"
	"errors"
	"time"

	"github.com/tencoupons/slot-service/internal/domain"
	"github.com/tencoupons/slot-service/internal/infrastructure/postgres/mappers"
	"github.com/tencoupons/slot-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultSlotRepository struct {
	DB *gorm.DB
}

func NewDefaultSlotRepository(db *gorm.DB) *DefaultSlotRepository {
	return &DefaultSlotRepository{DB: db}
}

func (r *DefaultSlotRepository) GetSlotByID(ctx context.Context, slotID string) (*domain.Slot, error) {
	var model models.SlotModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", slotID).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return mappers.ToDomainSlot(&model), nil
}

func (r *DefaultSlotRepository) ListBusinessSlots(ctx context.Context, businessID string) ([]*domain.Slot, error) {
	var slotModels []models.SlotModel
	err := r.DB.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("parent_slot_id, start_date").
		Find(&slotModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlots(slotModels), nil
}

func (r *DefaultSlotRepository) ListCurrentBusinessSlots(ctx context.Context, businessID string, today time.Time) ([]*domain.Slot, error) {
	var slotModels []models.SlotModel
	err := r.DB.WithContext(ctx).
		Where("business_id = ? AND start_date <= ? AND end_date >= ?", businessID, today, today).
		Order("parent_slot_id, start_date").
		Find(&slotModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlots(slotModels), nil
}

func (r *DefaultSlotRepository) ListChildren(ctx context.Context, parentID string) ([]*domain.Slot, error) {
	var slotModels []models.SlotModel
	err := r.DB.WithContext(ctx).
		Where("parent_slot_id = ? AND id <> parent_slot_id", parentID).
		Order("start_date").
		Find(&slotModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlots(slotModels), nil
}

func (r *DefaultSlotRepository) ListExpiringAutorenew(ctx context.Context, by time.Time) ([]*domain.Slot, error) {
	var slotModels []models.SlotModel
	err := r.DB.WithContext(ctx).
		Where("is_autorenew = ? AND end_date <= ?", true, by).
		Order("end_date").
		Find(&slotModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlots(slotModels), nil
}

// InTx runs fn inside one database transaction. Everything the unit of work
// reads through ForUpdate methods stays locked until commit.
func (r *DefaultSlotRepository) InTx(ctx context.Context, fn func(tx domain.SlotTx) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&slotTx{db: tx})
	})
}

type slotTx struct {
	db *gorm.DB
}

// forUpdate takes a row lock where the dialect supports it. SQLite, used in
// tests, serializes writers on its own.
func (t *slotTx) forUpdate() *gorm.DB {
	if t.db.Dialector.Name() == "postgres" {
		return t.db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return t.db
}

func (t *slotTx) SlotForUpdate(slotID string) (*domain.Slot, error) {
	var model models.SlotModel
	if err := t.forUpdate().First(&model, "id = ?", slotID).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return mappers.ToDomainSlot(&model), nil
}

func (t *slotTx) ChildrenForUpdate(parentID string) ([]*domain.Slot, error) {
	var slotModels []models.SlotModel
	err := t.forUpdate().
		Where("parent_slot_id = ? AND id <> parent_slot_id", parentID).
		Order("start_date").
		Find(&slotModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlots(slotModels), nil
}

func (t *slotTx) FramesBySlot(slotID string) ([]*domain.TimeFrame, error) {
	var frameModels []models.SlotTimeFrameModel
	err := t.db.
		Where("slot_id = ?", slotID).
		Order("start_datetime").
		Find(&frameModels).Error
	if err != nil {
		return nil, err
	}
	frames := make([]*domain.TimeFrame, len(frameModels))
	for i, frameModel := range frameModels {
		frames[i] = mappers.ToDomainTimeFrame(&frameModel)
	}
	return frames, nil
}

func (t *slotTx) FrameByID(frameID string) (*domain.TimeFrame, error) {
	var model models.SlotTimeFrameModel
	if err := t.db.First(&model, "id = ?", frameID).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return mappers.ToDomainTimeFrame(&model), nil
}

func (t *slotTx) OpenFrame(slotID string) (*domain.TimeFrame, error) {
	var model models.SlotTimeFrameModel
	err := t.db.
		Where("slot_id = ? AND end_datetime IS NULL", slotID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainTimeFrame(&model), nil
}

func (t *slotTx) HasFlyerPlacements(slotID string) (bool, error) {
	var count int64
	err := t.db.Model(&models.FlyerPlacementModel{}).
		Where("slot_id = ?", slotID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (t *slotTx) InsertSlot(slot *domain.Slot) error {
	return t.db.Create(mappers.ToGORMSlot(slot)).Error
}

func (t *slotTx) UpdateSlot(slot *domain.Slot) error {
	return t.db.Save(mappers.ToGORMSlot(slot)).Error
}

func (t *slotTx) InsertFrame(frame *domain.TimeFrame) error {
	return t.db.Create(mappers.ToGORMTimeFrame(frame)).Error
}

func (t *slotTx) UpdateFrame(frame *domain.TimeFrame) error {
	return t.db.Save(mappers.ToGORMTimeFrame(frame)).Error
}

func toDomainSlots(slotModels []models.SlotModel) []*domain.Slot {
	slots := make([]*domain.Slot, len(slotModels))
	for i, slotModel := range slotModels {
		slots[i] = mappers.ToDomainSlot(&slotModel)
	}
	return slots
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
