package postgres

import (
	"log"

	"github.com/tencoupons/slot-service/internal/config"
	"github.com/tencoupons/slot-service/internal/infrastructure/logger"
	"github.com/tencoupons/slot-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.SlotConfig) *gorm.DB {
	dsn := cfg.SlotDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.BusinessModel{},
		&models.CouponModel{},
		&models.SlotModel{},
		&models.SlotTimeFrameModel{},
		&models.FlyerPlacementModel{},
		&logger.FrameEvent{},
	)

	return db
}
