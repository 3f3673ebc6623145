package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oltiademi/hatom-invoice-task/internal/application/dto"
	"github.com/oltiademi/hatom-invoice-task/internal/domain"
	"github.com/oltiademi/hatom-invoice-task/internal/domain/entity"
	"github.com/oltiademi/hatom-invoice-task/internal/domain/repository"
)

// ServiceUseCase casos de uso CRUD del catálogo de servicios.
type ServiceUseCase struct {
	repo repository.ServiceRepository
}

// NewServiceUseCase construye el caso de uso.
func NewServiceUseCase(repo repository.ServiceRepository) *ServiceUseCase {
	return &ServiceUseCase{repo: repo}
}

// Create crea una entrada del catálogo; el nombre es único por regla de negocio.
func (uc *ServiceUseCase) Create(in dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	if in.ServiceName == "" || !in.ServicePrice.IsPositive() {
		return nil, fmt.Errorf("%w: serviceName y servicePrice (positivo) requeridos", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.FindByName(in.ServiceName)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: servicio %q", domain.ErrDuplicate, in.ServiceName)
	}
	now := time.Now()
	svc := &entity.Service{
		ID:           uuid.New().String(),
		ServiceName:  in.ServiceName,
		ServicePrice: in.ServicePrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(svc); err != nil {
		return nil, err
	}
	return toServiceResponse(svc), nil
}

// FindAll lista el catálogo completo.
func (uc *ServiceUseCase) FindAll() ([]*dto.ServiceResponse, error) {
	list, err := uc.repo.FindAll()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toServiceResponse(s))
	}
	return out, nil
}

// FindByID obtiene una entrada por su ID.
func (uc *ServiceUseCase) FindByID(id string) (*dto.ServiceResponse, error) {
	svc, err := uc.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, fmt.Errorf("%w: servicio %s", domain.ErrNotFound, id)
	}
	return toServiceResponse(svc), nil
}

// Update aplica un parche campo a campo. No afecta los snapshots de facturas
// ya emitidas.
func (uc *ServiceUseCase) Update(id string, patch dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	svc, err := uc.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, fmt.Errorf("%w: servicio %s", domain.ErrNotFound, id)
	}
	if patch.ServiceName != nil {
		if *patch.ServiceName == "" {
			return nil, fmt.Errorf("%w: serviceName vacío", domain.ErrInvalidInput)
		}
		svc.ServiceName = *patch.ServiceName
	}
	if patch.ServicePrice != nil {
		if !patch.ServicePrice.IsPositive() {
			return nil, fmt.Errorf("%w: servicePrice debe ser positivo", domain.ErrInvalidInput)
		}
		svc.ServicePrice = *patch.ServicePrice
	}
	svc.UpdatedAt = time.Now()
	if err := uc.repo.Save(svc); err != nil {
		return nil, err
	}
	return toServiceResponse(svc), nil
}

// DeleteByID elimina una entrada del catálogo. Las facturas emitidas conservan
// su snapshot de nombre y precio.
func (uc *ServiceUseCase) DeleteByID(id string) error {
	svc, err := uc.repo.FindByID(id)
	if err != nil {
		return err
	}
	if svc == nil {
		return fmt.Errorf("%w: servicio %s", domain.ErrNotFound, id)
	}
	return uc.repo.DeleteByID(id)
}

func toServiceResponse(s *entity.Service) *dto.ServiceResponse {
	return &dto.ServiceResponse{
		ID:           s.ID,
		ServiceName:  s.ServiceName,
		ServicePrice: s.ServicePrice,
	}
}
