package repository

import (
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/AndesHost/ServiPanel/app/models"
	"github.com/AndesHost/ServiPanel/internal/pkg/cache"
)

// Redis snapshot keys. Other instances read these to pick up settings
// changes without a restart; a short TTL bounds staleness.
const (
	renewalSettingsCacheKey = "settings:renewal"
	alertSettingsCacheKey   = "settings:alerts"
	settingsCacheTTL        = 5 * time.Minute
)

// settingRepository implements the SettingRepository interface
type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository instance
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

// GetRenewalSettings returns the renewal configuration, preferring a fresh
// Redis snapshot over the local in-memory copy
func (r *settingRepository) GetRenewalSettings() (*models.RenewalSettings, error) {
	var cached models.RenewalSettings
	if err := cache.GetJSON(renewalSettingsCacheKey, &cached); err == nil {
		return &cached, nil
	}
	return models.GetRenewalSettings(), nil
}

// SaveRenewalSettings validates, persists and publishes renewal settings
func (r *settingRepository) SaveRenewalSettings(settings *models.RenewalSettings) error {
	if err := models.SaveRenewalSettings(r.db, settings); err != nil {
		return err
	}
	if err := cache.SetJSON(renewalSettingsCacheKey, settings, settingsCacheTTL); err != nil {
		log.Warnf("Failed to publish renewal settings snapshot: %v", err)
	}
	return nil
}

// GetAlertSettings returns the alert configuration, preferring a fresh Redis
// snapshot over the local in-memory copy
func (r *settingRepository) GetAlertSettings() (*models.AlertSettings, error) {
	var cached models.AlertSettings
	if err := cache.GetJSON(alertSettingsCacheKey, &cached); err == nil {
		return &cached, nil
	}
	return models.GetAlertSettings(), nil
}

// SaveAlertSettings validates, persists and publishes alert settings
func (r *settingRepository) SaveAlertSettings(settings *models.AlertSettings) error {
	if err := models.SaveAlertSettings(r.db, settings); err != nil {
		return err
	}
	if err := cache.SetJSON(alertSettingsCacheKey, settings, settingsCacheTTL); err != nil {
		log.Warnf("Failed to publish alert settings snapshot: %v", err)
	}
	return nil
}

// GetValue returns a raw setting value by key
func (r *settingRepository) GetValue(key string) (string, error) {
	var setting models.Setting
	err := r.db.Where("setting_key = ?", key).First(&setting).Error
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

// SetValue creates or updates a raw string setting
func (r *settingRepository) SetValue(key, value string) error {
	var setting models.Setting
	err := r.db.Where("setting_key = ?", key).First(&setting).Error
	if err == gorm.ErrRecordNotFound {
		setting = models.Setting{Key: key, Value: value, Type: "string"}
		return r.db.Create(&setting).Error
	}
	if err != nil {
		return err
	}
	setting.Value = value
	return r.db.Save(&setting).Error
}
