package repository

import (
	"gorm.io/gorm"

	"github.com/AndesHost/ServiPanel/app/models"
)

// emailTemplateRepository implements the EmailTemplateRepository interface
type emailTemplateRepository struct {
	db *gorm.DB
}

// NewEmailTemplateRepository creates a new email template repository instance
func NewEmailTemplateRepository(db *gorm.DB) EmailTemplateRepository {
	return &emailTemplateRepository{db: db}
}

// GetByKey retrieves a template by its unique key
func (r *emailTemplateRepository) GetByKey(key string) (*models.EmailTemplate, error) {
	var template models.EmailTemplate
	err := r.db.Where("`key` = ?", key).First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// GetAll returns all templates ordered by key
func (r *emailTemplateRepository) GetAll() ([]models.EmailTemplate, error) {
	var templates []models.EmailTemplate
	err := r.db.Order("`key` ASC").Find(&templates).Error
	return templates, err
}

// Save creates or updates a template by key
func (r *emailTemplateRepository) Save(template *models.EmailTemplate) error {
	var existing models.EmailTemplate
	err := r.db.Where("`key` = ?", template.Key).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.Create(template).Error
	}
	if err != nil {
		return err
	}
	template.ID = existing.ID
	return r.db.Save(template).Error
}
