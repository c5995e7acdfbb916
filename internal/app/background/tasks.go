package background

import (
	"context"
	"log"
	"time"

	"github.com/tencoupons/slot-service/internal/config"
	"github.com/tencoupons/slot-service/internal/domain"
	"github.com/tencoupons/slot-service/internal/usecase/slot"
)

type BackgroundTasks struct {
	SlotUsecase slot.SlotUsecase
	SlotRepo    domain.SlotRepository
	Autorenew   config.Autorenew
}

func NewBackgroundTasks(slotUC slot.SlotUsecase, slotRepo domain.SlotRepository, autorenew config.Autorenew) *BackgroundTasks {
	return &BackgroundTasks{
		SlotUsecase: slotUC,
		SlotRepo:    slotRepo,
		Autorenew:   autorenew,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	if bt.Autorenew.Enabled {
		go bt.startAutorenewSweep(ctx)
	}
}

// startAutorenewSweep periodically renews autorenew slots whose end date is
// close. Renewal failures on one slot do not stop the sweep.
func (bt *BackgroundTasks) startAutorenewSweep(ctx context.Context) {
	ticker := time.NewTicker(bt.Autorenew.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bt.sweepAutorenew(ctx)
		}
	}
}

func (bt *BackgroundTasks) sweepAutorenew(ctx context.Context) {
	by := time.Now().UTC().Add(bt.Autorenew.RenewAhead)
	expiring, err := bt.SlotRepo.ListExpiringAutorenew(ctx, by)
	if err != nil {
		log.Printf("Autorenew sweep error: %v\n", err)
		return
	}

	for _, expiringSlot := range expiring {
		// Children follow their head in the cascade, the sweep only touches heads.
		if !expiringSlot.Role.IsHead() {
			continue
		}
		if _, err := bt.SlotUsecase.RenewSlot(ctx, expiringSlot.ID); err != nil {
			log.Printf("Autorenew failed for slot %s: %v\n", expiringSlot.ID, err)
		}
	}
}
