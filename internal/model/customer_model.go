package model

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Identificacion string    `gorm:"type:varchar(11);not null;uniqueIndex"`
	Nombre         string    `gorm:"type:varchar(100);not null"`
	Telefono       string    `gorm:"type:varchar(10)"`
	Email          string    `gorm:"type:varchar(255)"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Customer) TableName() string {
	return "customers"
}
