package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/AndesHost/ServiPanel/app/models"
)

// ClientRepository defines the interface for client-related database operations
type ClientRepository interface {
	Create(client *models.Client) error
	GetByID(id uint) (*models.Client, error)
	GetByEmail(email string) (*models.Client, error)
	Update(client *models.Client) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Client, error)
	Count() (int64, error)
	Search(query string) ([]models.Client, error)
}

// ServiceRepository defines the interface for service-related database operations
type ServiceRepository interface {
	Create(service *models.Service) error
	GetByID(id uint) (*models.Service, error)
	GetByClientID(clientID uint) ([]models.Service, error)
	Update(service *models.Service) error
	UpdateStatus(id uint, status string) error
	// ApplyRenewal advances the service's cycle per a confirmed renewal.
	ApplyRenewal(tx *gorm.DB, delta RenewalDelta) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Service, error)
	ListWithClients(offset, limit int) ([]models.Service, error)
	// ListBillable returns services whose status can produce alerts.
	ListBillable() ([]models.Service, error)
	Count() (int64, error)
}

// RenewalDelta mirrors the coordinator's service delta for persistence.
type RenewalDelta struct {
	ServiceID       uint
	CycleStartDate  time.Time
	BillingCycle    string
	CustomCycleText string
	Status          string
}

// RenewalIntentRepository defines the interface for renewal intent persistence.
// It is the transactional backend for the renewal coordinator.
type RenewalIntentRepository interface {
	FindPendingByServiceID(serviceID uint) (*models.RenewalIntent, error)
	// CreatePending inserts a pending intent, re-checking the
	// one-pending-per-service invariant inside a transaction. Returns
	// renewal.ErrRenewalAlreadyPending on conflict.
	CreatePending(intent *models.RenewalIntent) error
	GetByUUID(uuid string) (*models.RenewalIntent, error)
	MarkCancelled(uuid string) error
	// Complete marks the intent completed, applies the service delta and
	// records the payment in one transaction.
	Complete(uuid string, delta RenewalDelta, payment *models.Payment) error
	ListByServiceID(serviceID uint) ([]models.RenewalIntent, error)
}

// PaymentRepository defines the interface for payment records
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	ListByServiceID(serviceID uint) ([]models.Payment, error)
	List(offset, limit int) ([]models.Payment, error)
	Count() (int64, error)
}

// EmailTemplateRepository defines the interface for notification templates
type EmailTemplateRepository interface {
	GetByKey(key string) (*models.EmailTemplate, error)
	GetAll() ([]models.EmailTemplate, error)
	Save(template *models.EmailTemplate) error
}

// NotificationLogRepository tracks sent alerts for dedupe across scan passes
type NotificationLogRepository interface {
	Create(entry *models.NotificationLog) error
	// WasSent reports whether the phase already fired for this service and
	// expiration date.
	WasSent(serviceID uint, phase string, expirationDate time.Time) (bool, error)
	ListByServiceID(serviceID uint) ([]models.NotificationLog, error)
}

// SettingRepository defines the interface for application settings
type SettingRepository interface {
	GetRenewalSettings() (*models.RenewalSettings, error)
	SaveRenewalSettings(settings *models.RenewalSettings) error
	GetAlertSettings() (*models.AlertSettings, error)
	SaveAlertSettings(settings *models.AlertSettings) error
	GetValue(key string) (string, error)
	SetValue(key, value string) error
}

// UserRepository defines the interface for staff user operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetActiveByIDs(ids []uint) ([]models.User, error)
	List() ([]models.User, error)
	Update(user *models.User) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	Client          ClientRepository
	Service         ServiceRepository
	RenewalIntent   RenewalIntentRepository
	Payment         PaymentRepository
	EmailTemplate   EmailTemplateRepository
	NotificationLog NotificationLogRepository
	Setting         SettingRepository
	User            UserRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Client:          NewClientRepository(db),
		Service:         NewServiceRepository(db),
		RenewalIntent:   NewRenewalIntentRepository(db),
		Payment:         NewPaymentRepository(db),
		EmailTemplate:   NewEmailTemplateRepository(db),
		NotificationLog: NewNotificationLogRepository(db),
		Setting:         NewSettingRepository(db),
		User:            NewUserRepository(db),
	}
}
