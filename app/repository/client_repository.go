package repository

import (
	"gorm.io/gorm"

	"github.com/AndesHost/ServiPanel/app/models"
)

// clientRepository implements the ClientRepository interface
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository instance
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

// Create creates a new client in the database
func (r *clientRepository) Create(client *models.Client) error {
	return r.db.Create(client).Error
}

// GetByID retrieves a client by their ID
func (r *clientRepository) GetByID(id uint) (*models.Client, error) {
	var client models.Client
	err := r.db.First(&client, id).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// GetByEmail retrieves a client by their email address
func (r *clientRepository) GetByEmail(email string) (*models.Client, error) {
	var client models.Client
	err := r.db.Where("email = ?", email).First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// Update updates an existing client
func (r *clientRepository) Update(client *models.Client) error {
	return r.db.Save(client).Error
}

// Delete removes a client by ID
func (r *clientRepository) Delete(id uint) error {
	return r.db.Delete(&models.Client{}, id).Error
}

// List retrieves clients with pagination, newest first
func (r *clientRepository) List(offset, limit int) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&clients).Error
	return clients, err
}

// Count returns the total number of clients
func (r *clientRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Client{}).Count(&count).Error
	return count, err
}

// Search finds clients by name or email fragment
func (r *clientRepository) Search(query string) ([]models.Client, error) {
	var clients []models.Client
	pattern := "%" + query + "%"
	err := r.db.Where("name LIKE ? OR email LIKE ?", pattern, pattern).
		Order("name ASC").Limit(50).Find(&clients).Error
	return clients, err
}
