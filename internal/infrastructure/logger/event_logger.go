package logger

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const (
	FrameActionOpened = "opened"
	FrameActionClosed = "closed"
)

// FrameEvent is an audit row written whenever a time frame opens or closes.
type FrameEvent struct {
	ID        uint `gorm:"primaryKey"`
	FrameID   string
	SlotID    string
	CouponID  string
	Action    string
	Timestamp time.Time
}

type FrameEventLogger interface {
	LogFrameEvent(ctx context.Context, event FrameEvent) error
}

type PGFrameEventLogger struct {
	db *gorm.DB
}

func NewPGFrameEventLogger(db *gorm.DB) *PGFrameEventLogger {
	return &PGFrameEventLogger{db: db}
}

func (l *PGFrameEventLogger) LogFrameEvent(ctx context.Context, event FrameEvent) error {
	return l.db.WithContext(ctx).Create(&event).Error
}
