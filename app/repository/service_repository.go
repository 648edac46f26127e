package repository

import (
	"gorm.io/gorm"

	"github.com/AndesHost/ServiPanel/app/models"
)

// serviceRepository implements the ServiceRepository interface
type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service repository instance
func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

// Create creates a new service in the database
func (r *serviceRepository) Create(service *models.Service) error {
	return r.db.Create(service).Error
}

// GetByID retrieves a service by ID with its client preloaded
func (r *serviceRepository) GetByID(id uint) (*models.Service, error) {
	var service models.Service
	err := r.db.Preload("Client").First(&service, id).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// GetByClientID retrieves all services belonging to a client
func (r *serviceRepository) GetByClientID(clientID uint) ([]models.Service, error) {
	var services []models.Service
	err := r.db.Where("client_id = ?", clientID).Order("created_at DESC").Find(&services).Error
	return services, err
}

// Update updates an existing service
func (r *serviceRepository) Update(service *models.Service) error {
	return r.db.Save(service).Error
}

// UpdateStatus sets only the stored status of a service
func (r *serviceRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Service{}).Where("id = ?", id).
		Update("status", status).Error
}

// ApplyRenewal advances the service's cycle per a confirmed renewal. It runs
// inside the caller's transaction so the service, intent and payment commit
// together.
func (r *serviceRepository) ApplyRenewal(tx *gorm.DB, delta RenewalDelta) error {
	if tx == nil {
		tx = r.db
	}
	result := tx.Model(&models.Service{}).Where("id = ?", delta.ServiceID).Updates(map[string]interface{}{
		"cycle_start_date":  delta.CycleStartDate,
		"billing_cycle":     delta.BillingCycle,
		"custom_cycle_text": delta.CustomCycleText,
		"status":            delta.Status,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete soft-deletes a service by ID
func (r *serviceRepository) Delete(id uint) error {
	return r.db.Delete(&models.Service{}, id).Error
}

// List retrieves services with pagination, newest first
func (r *serviceRepository) List(offset, limit int) ([]models.Service, error) {
	var services []models.Service
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&services).Error
	return services, err
}

// ListWithClients retrieves services with their clients preloaded
func (r *serviceRepository) ListWithClients(offset, limit int) ([]models.Service, error) {
	var services []models.Service
	err := r.db.Preload("Client").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&services).Error
	return services, err
}

// ListBillable returns services whose stored status can produce alerts.
// Clients are preloaded because alert templates need their name and email.
func (r *serviceRepository) ListBillable() ([]models.Service, error) {
	var services []models.Service
	err := r.db.Preload("Client").
		Where("status IN ?", []string{models.ServiceStatusActive, models.ServiceStatusPendingPayment}).
		Find(&services).Error
	return services, err
}

// Count returns the total number of services
func (r *serviceRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Service{}).Count(&count).Error
	return count, err
}
