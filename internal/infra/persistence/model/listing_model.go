package model

import (
	"time"

	"github.com/google/uuid"
)

// PropertyModel mirrors the 'properties' table. Prices are stored in minor currency units.
type PropertyModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Reference string    `gorm:"type:varchar(50);unique;not null"`
	Title     string    `gorm:"type:varchar(255);not null"`
	OwnerName string    `gorm:"type:varchar(100)"`
	Price     int64     `gorm:"not null"`
	Status    string    `gorm:"type:varchar(20);not null;index"`
	AgentID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PropertyModel) TableName() string {
	return "properties"
}

// LeadModel mirrors the 'leads' table.
type LeadModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Phone     string    `gorm:"type:varchar(30);not null"`
	Source    string    `gorm:"type:varchar(50)"`
	Status    string    `gorm:"type:varchar(20);not null;index"`
	AgentID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (LeadModel) TableName() string {
	return "leads"
}
