package service

import (
	"context"
	"errors"
	"fmt"

	"retail-assistant-be/internal/entity"
	"retail-assistant-be/internal/pkg/logger"
	"retail-assistant-be/internal/repository/unitofwork"
	"retail-assistant-be/pkg/dialogue"
	"retail-assistant-be/pkg/events"
	pktNats "retail-assistant-be/pkg/nats"
)

// CustomerDirectory backs the onboarding flow with the customers table.
// It satisfies dialogue.Directory.
type CustomerDirectory struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

var _ dialogue.Directory = &CustomerDirectory{}

func NewCustomerDirectory(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, log logger.ILogger) *CustomerDirectory {
	return &CustomerDirectory{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (d *CustomerDirectory) Lookup(ctx context.Context, identificacion string) (*dialogue.Customer, error) {
	uow := d.uowFactory.NewUnitOfWork(ctx)

	customer, err := uow.CustomerRepository().FindByIdentificacion(ctx, identificacion)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrDirectoryUnavailable, err)
	}
	if customer == nil {
		return nil, nil
	}

	return &dialogue.Customer{
		Identificacion: customer.Identificacion,
		Nombre:         customer.Nombre,
		Telefono:       customer.Telefono,
		Email:          customer.Email,
	}, nil
}

func (d *CustomerDirectory) Create(ctx context.Context, customer *dialogue.Customer) (*dialogue.Customer, error) {
	uow := d.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrDirectoryUnavailable, err)
	}

	record := &entity.Customer{
		Identificacion: customer.Identificacion,
		Nombre:         customer.Nombre,
		Telefono:       customer.Telefono,
		Email:          customer.Email,
	}

	if err := uow.CustomerRepository().Create(ctx, record); err != nil {
		uow.Rollback()
		if errors.Is(err, entity.ErrDuplicateIdentification) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", entity.ErrDirectoryUnavailable, err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrDirectoryUnavailable, err)
	}

	// Registration is durable; the event is best effort.
	if d.eventPublisher != nil {
		evt := events.NewCustomerRegistered(record.Identificacion, record.Nombre, record.Email)
		if err := d.eventPublisher.Publish(ctx, evt); err != nil {
			d.logger.Warn("CustomerDirectory", "Failed to publish CUSTOMER_REGISTERED event", map[string]interface{}{
				"identificacion": record.Identificacion,
				"error":          err.Error(),
			})
		}
	}

	return &dialogue.Customer{
		Identificacion: record.Identificacion,
		Nombre:         record.Nombre,
		Telefono:       record.Telefono,
		Email:          record.Email,
	}, nil
}
