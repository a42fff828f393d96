package contract

import (
	"context"

	"retail-assistant-be/internal/entity"
	"retail-assistant-be/internal/repository/specification"
)

// CustomerRepository is the persistence side of the customer directory.
// FindByIdentificacion returns (nil, nil) when no customer matches; Create
// returns entity.ErrDuplicateIdentification on a unique-index violation.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	FindByIdentificacion(ctx context.Context, identificacion string) (*entity.Customer, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Customer, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Customer, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
