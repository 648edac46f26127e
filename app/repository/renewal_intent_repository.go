package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AndesHost/ServiPanel/app/models"
	"github.com/AndesHost/ServiPanel/internal/pkg/renewal"
)

// renewalIntentRepository implements the RenewalIntentRepository interface.
// It also satisfies renewal.IntentStore so the coordinator can run on top
// of it directly.
type renewalIntentRepository struct {
	db *gorm.DB
}

// NewRenewalIntentRepository creates a new renewal intent repository instance
func NewRenewalIntentRepository(db *gorm.DB) RenewalIntentRepository {
	return &renewalIntentRepository{db: db}
}

// FindPendingByServiceID returns the service's pending intent, or nil when
// none exists
func (r *renewalIntentRepository) FindPendingByServiceID(serviceID uint) (*models.RenewalIntent, error) {
	var intent models.RenewalIntent
	err := r.db.Where("service_id = ? AND status = ?", serviceID, models.RenewalIntentStatusPending).
		First(&intent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

// CreatePending inserts a pending intent. The pending check and the insert
// run in one transaction with the existing rows locked, so concurrent
// requests for the same service cannot both succeed.
func (r *renewalIntentRepository) CreatePending(intent *models.RenewalIntent) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.RenewalIntent{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("service_id = ? AND status = ?", intent.ServiceID, models.RenewalIntentStatusPending).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return renewal.ErrRenewalAlreadyPending
		}
		intent.Status = models.RenewalIntentStatusPending
		return tx.Create(intent).Error
	})
}

// GetByUUID retrieves an intent by its public identifier
func (r *renewalIntentRepository) GetByUUID(uuid string) (*models.RenewalIntent, error) {
	var intent models.RenewalIntent
	err := r.db.Where("uuid = ?", uuid).First(&intent).Error
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

// MarkCancelled cancels a pending intent, freeing the service's renewal slot
func (r *renewalIntentRepository) MarkCancelled(uuid string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		intent, err := lockIntentByUUID(tx, uuid)
		if err != nil {
			return err
		}
		if !intent.IsPending() {
			return renewal.ErrIntentNotPending
		}
		return tx.Model(intent).Update("status", models.RenewalIntentStatusCancelled).Error
	})
}

// Complete marks the intent completed, applies the service delta and records
// the payment in a single transaction. A partially renewed service cannot
// appear after a crash.
func (r *renewalIntentRepository) Complete(uuid string, delta RenewalDelta, payment *models.Payment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		intent, err := lockIntentByUUID(tx, uuid)
		if err != nil {
			return err
		}
		if !intent.IsPending() {
			return renewal.ErrIntentNotPending
		}

		if err := tx.Model(intent).Update("status", models.RenewalIntentStatusCompleted).Error; err != nil {
			return fmt.Errorf("failed to complete intent: %w", err)
		}

		svcRepo := &serviceRepository{db: r.db}
		if err := svcRepo.ApplyRenewal(tx, delta); err != nil {
			return fmt.Errorf("failed to apply renewal to service: %w", err)
		}

		if payment != nil {
			payment.IntentID = &intent.ID
			payment.ServiceID = intent.ServiceID
			if err := tx.Create(payment).Error; err != nil {
				return fmt.Errorf("failed to record payment: %w", err)
			}
		}
		return nil
	})
}

// ListByServiceID returns a service's intents, newest first
func (r *renewalIntentRepository) ListByServiceID(serviceID uint) ([]models.RenewalIntent, error) {
	var intents []models.RenewalIntent
	err := r.db.Where("service_id = ?", serviceID).Order("created_at DESC").Find(&intents).Error
	return intents, err
}

func lockIntentByUUID(tx *gorm.DB, uuid string) (*models.RenewalIntent, error) {
	var intent models.RenewalIntent
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("uuid = ?", uuid).First(&intent).Error
	if err != nil {
		return nil, err
	}
	return &intent, nil
}
