package entity

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a registered supermarket customer. Identificacion is the
// unique business key (4-11 digits).
type Customer struct {
	Id             uuid.UUID
	Identificacion string
	Nombre         string
	Telefono       string
	Email          string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
