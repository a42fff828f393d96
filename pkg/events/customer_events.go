package events

import "time"

const CustomerRegisteredType = "CUSTOMER_REGISTERED"

// CustomerRegisteredEvent fires after a new customer completes
// onboarding and the record is committed.
type CustomerRegisteredEvent struct {
	Identificacion string
	Nombre         string
	Email          string
	OccurredAt     time.Time
}

func NewCustomerRegistered(identificacion, nombre, email string) CustomerRegisteredEvent {
	return CustomerRegisteredEvent{
		Identificacion: identificacion,
		Nombre:         nombre,
		Email:          email,
		OccurredAt:     time.Now(),
	}
}

func (e CustomerRegisteredEvent) EventType() string {
	return CustomerRegisteredType
}

func (e CustomerRegisteredEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"identificacion": e.Identificacion,
		"nombre":         e.Nombre,
		"email":          e.Email,
		"occurred_at":    e.OccurredAt,
	}
}

func (e CustomerRegisteredEvent) Timestamp() time.Time {
	return e.OccurredAt
}
