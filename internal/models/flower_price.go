package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TimeSlot string

const (
	TimeSlotMorning   TimeSlot = "morning"
	TimeSlotAfternoon TimeSlot = "afternoon"
	TimeSlotEvening   TimeSlot = "evening"
)

// FlowerPrice holds the three slot prices for one flower on one day. The
// one-row-per-(flower, date) invariant is kept by the upsert in the pricing
// handler, not by a unique constraint.
type FlowerPrice struct {
	ID             string          `gorm:"type:uuid;primaryKey"`
	RetailerID     string          `gorm:"type:uuid;index:idx_flower_prices_lookup;not null"`
	FlowerTypeID   string          `gorm:"type:uuid;index:idx_flower_prices_lookup;not null"`
	FlowerType     FlowerType      `gorm:"foreignKey:FlowerTypeID"`
	PriceDate      time.Time       `gorm:"type:date;index:idx_flower_prices_lookup;not null"`
	MorningPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	AfternoonPrice decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	EveningPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SlotPrice returns the price for a time slot.
func (p *FlowerPrice) SlotPrice(slot TimeSlot) decimal.Decimal {
	switch slot {
	case TimeSlotAfternoon:
		return p.AfternoonPrice
	case TimeSlotEvening:
		return p.EveningPrice
	default:
		return p.MorningPrice
	}
}
