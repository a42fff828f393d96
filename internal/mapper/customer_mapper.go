package mapper

import (
	"time"

	"retail-assistant-be/internal/entity"
	"retail-assistant-be/internal/model"
)

type CustomerMapper struct{}

func NewCustomerMapper() *CustomerMapper {
	return &CustomerMapper{}
}

func (m *CustomerMapper) ToEntity(c *model.Customer) *entity.Customer {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Customer{
		Id:             c.Id,
		Identificacion: c.Identificacion,
		Nombre:         c.Nombre,
		Telefono:       c.Telefono,
		Email:          c.Email,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *CustomerMapper) ToModel(c *entity.Customer) *model.Customer {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Customer{
		Id:             c.Id,
		Identificacion: c.Identificacion,
		Nombre:         c.Nombre,
		Telefono:       c.Telefono,
		Email:          c.Email,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *CustomerMapper) ToEntities(models []*model.Customer) []*entity.Customer {
	entities := make([]*entity.Customer, len(models))
	for i, c := range models {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
