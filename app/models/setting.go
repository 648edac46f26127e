package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Setting represents a system setting row. Structured configuration
// (renewal, alerts) is stored as a JSON value under a well-known key.
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:setting_key;size:255;not null;uniqueIndex" json:"key" validate:"required,min=1,max=255"`
	Value     string    `gorm:"type:text" json:"value"`
	Type      string    `gorm:"size:50;not null" json:"type" validate:"required"` // string, boolean, integer, json
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	settingKeyRenewal = "renewal_settings"
	settingKeyAlerts  = "alert_settings"
)

// Renewal period keys used by discount tiers and renewal requests.
const (
	PeriodKeyMonthly    = "monthly"
	PeriodKeyQuarterly  = "quarterly"
	PeriodKeySemiannual = "semiannual"
	PeriodKeyAnnual     = "annual"
	PeriodKeyBiennial   = "biennial"
	PeriodKeyTriennial  = "triennial"
)

// DiscountTier is a named renewal period with an associated discount.
type DiscountTier struct {
	Enabled bool    `json:"enabled"`
	Percent float64 `json:"percent" validate:"gte=0,lte=100"`
	Label   string  `json:"label"`
}

// TaxSettings configures the tax applied on renewal quotes.
type TaxSettings struct {
	Enabled   bool    `json:"enabled"`
	Percent   float64 `json:"percent" validate:"gte=0,lte=100"`
	Inclusive bool    `json:"inclusive"`
	Name      string  `json:"name"`
}

// PricingRules bound renewal quote amounts. MaximumAmount zero means no
// ceiling.
type PricingRules struct {
	RoundToNearest int64           `json:"round_to_nearest" validate:"gt=0"`
	MinimumAmount  decimal.Decimal `json:"minimum_amount"`
	MaximumAmount  decimal.Decimal `json:"maximum_amount"`
}

// RenewalSettings is the process-wide renewal pricing configuration.
type RenewalSettings struct {
	DiscountTiers map[string]DiscountTier `json:"discount_tiers"`
	Tax           TaxSettings             `json:"tax"`
	Pricing       PricingRules            `json:"pricing"`
}

// AlertPhaseSettings configures one notification phase. ThresholdDays means
// "days before expiration" for pre-expiry and "days of grace after
// expiration" for the grace phase; the expired phase fires once grace is
// exhausted and only honors Enabled.
type AlertPhaseSettings struct {
	Enabled           bool   `json:"enabled"`
	ThresholdDays     int    `json:"threshold_days" validate:"gte=0"`
	ClientTemplateKey string `json:"client_template_key"`
	AdminTemplateKey  string `json:"admin_template_key"`
	NotifyAdmins      bool   `json:"notify_admins"`
	AdminUserIDs      []uint `json:"admin_user_ids"`
}

// AlertSettings is the process-wide notification configuration.
type AlertSettings struct {
	CompanyName string             `json:"company_name"`
	PreExpiry   AlertPhaseSettings `json:"pre_expiry"`
	GracePeriod AlertPhaseSettings `json:"grace_period"`
	Expired     AlertPhaseSettings `json:"expired"`
}

// ErrInvalidSettings wraps every settings validation failure so callers can
// distinguish bad input from storage errors with errors.Is.
var ErrInvalidSettings = errors.New("invalid settings")

var (
	renewalSettings *RenewalSettings
	alertSettings   *AlertSettings
	settingsMu      sync.RWMutex

	settingsValidator = validator.New()
)

// DefaultRenewalSettings returns the configuration used before operators
// customize anything.
func DefaultRenewalSettings() *RenewalSettings {
	return &RenewalSettings{
		DiscountTiers: map[string]DiscountTier{
			PeriodKeyMonthly:    {Enabled: false, Percent: 0, Label: "Monthly"},
			PeriodKeyQuarterly:  {Enabled: true, Percent: 5, Label: "Quarterly"},
			PeriodKeySemiannual: {Enabled: true, Percent: 8, Label: "Semiannual"},
			PeriodKeyAnnual:     {Enabled: true, Percent: 12, Label: "Annual"},
			PeriodKeyBiennial:   {Enabled: true, Percent: 18, Label: "Biennial"},
			PeriodKeyTriennial:  {Enabled: true, Percent: 25, Label: "Triennial"},
		},
		Tax: TaxSettings{
			Enabled:   false,
			Percent:   19,
			Inclusive: false,
			Name:      "IVA",
		},
		Pricing: PricingRules{
			RoundToNearest: 1,
			MinimumAmount:  decimal.Zero,
			MaximumAmount:  decimal.Zero,
		},
	}
}

// DefaultAlertSettings returns the notification configuration used before
// operators customize anything.
func DefaultAlertSettings() *AlertSettings {
	return &AlertSettings{
		CompanyName: "AndesHost",
		PreExpiry: AlertPhaseSettings{
			Enabled:           true,
			ThresholdDays:     7,
			ClientTemplateKey: TemplateKeyPreExpiryClient,
			AdminTemplateKey:  TemplateKeyPreExpiryAdmin,
		},
		GracePeriod: AlertPhaseSettings{
			Enabled:           true,
			ThresholdDays:     3,
			ClientTemplateKey: TemplateKeyGracePeriodClient,
			AdminTemplateKey:  TemplateKeyGracePeriodAdmin,
		},
		Expired: AlertPhaseSettings{
			Enabled:           true,
			ClientTemplateKey: TemplateKeyExpiredClient,
			AdminTemplateKey:  TemplateKeyExpiredAdmin,
		},
	}
}

// Validate checks the renewal settings invariants.
func (s *RenewalSettings) Validate() error {
	if err := settingsValidator.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	for key, tier := range s.DiscountTiers {
		if tier.Percent < 0 || tier.Percent > 100 {
			return fmt.Errorf("%w: discount tier %s: percent must be between 0 and 100", ErrInvalidSettings, key)
		}
	}
	if s.Pricing.RoundToNearest <= 0 {
		return fmt.Errorf("%w: round_to_nearest must be positive", ErrInvalidSettings)
	}
	if s.Pricing.MinimumAmount.IsNegative() {
		return fmt.Errorf("%w: minimum_amount must not be negative", ErrInvalidSettings)
	}
	if s.Pricing.MaximumAmount.IsPositive() && s.Pricing.MaximumAmount.LessThan(s.Pricing.MinimumAmount) {
		return fmt.Errorf("%w: maximum_amount must not be below minimum_amount", ErrInvalidSettings)
	}
	return nil
}

// Tier returns the discount tier for a renewal period key, if configured.
func (s *RenewalSettings) Tier(periodKey string) (DiscountTier, bool) {
	tier, ok := s.DiscountTiers[periodKey]
	return tier, ok
}

// Validate checks the alert settings invariants.
func (s *AlertSettings) Validate() error {
	if err := settingsValidator.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return nil
}

// Phase returns the settings for a named alert phase.
func (s *AlertSettings) Phase(phase string) *AlertPhaseSettings {
	switch phase {
	case "pre_expiry":
		return &s.PreExpiry
	case "grace_period":
		return &s.GracePeriod
	case "expired":
		return &s.Expired
	default:
		return nil
	}
}

// GetRenewalSettings returns the current renewal configuration snapshot.
func GetRenewalSettings() *RenewalSettings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	if renewalSettings == nil {
		return DefaultRenewalSettings()
	}
	return renewalSettings
}

// GetAlertSettings returns the current alert configuration snapshot.
func GetAlertSettings() *AlertSettings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	if alertSettings == nil {
		return DefaultAlertSettings()
	}
	return alertSettings
}

// LoadSettings loads renewal and alert settings from the database into
// memory, merging stored values over the defaults.
func LoadSettings(db *gorm.DB) error {
	settingsMu.Lock()
	defer settingsMu.Unlock()

	renewalSettings = DefaultRenewalSettings()
	alertSettings = DefaultAlertSettings()

	var rows []Setting
	if err := db.Where("setting_key IN ?", []string{settingKeyRenewal, settingKeyAlerts}).Find(&rows).Error; err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	for _, row := range rows {
		switch row.Key {
		case settingKeyRenewal:
			if err := json.Unmarshal([]byte(row.Value), renewalSettings); err != nil {
				return fmt.Errorf("failed to decode renewal settings: %w", err)
			}
		case settingKeyAlerts:
			if err := json.Unmarshal([]byte(row.Value), alertSettings); err != nil {
				return fmt.Errorf("failed to decode alert settings: %w", err)
			}
		}
	}
	return nil
}

// SaveRenewalSettings validates, persists and publishes renewal settings.
func SaveRenewalSettings(db *gorm.DB, s *RenewalSettings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if err := saveJSONSetting(db, settingKeyRenewal, s); err != nil {
		return err
	}
	settingsMu.Lock()
	renewalSettings = s
	settingsMu.Unlock()
	return nil
}

// SaveAlertSettings validates, persists and publishes alert settings.
func SaveAlertSettings(db *gorm.DB, s *AlertSettings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if err := saveJSONSetting(db, settingKeyAlerts, s); err != nil {
		return err
	}
	settingsMu.Lock()
	alertSettings = s
	settingsMu.Unlock()
	return nil
}

func saveJSONSetting(db *gorm.DB, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}

	var setting Setting
	result := db.Where("setting_key = ?", key).First(&setting)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			setting = Setting{Key: key, Value: string(raw), Type: "json"}
			if err := db.Create(&setting).Error; err != nil {
				return fmt.Errorf("failed to create setting %s: %w", key, err)
			}
			return nil
		}
		return fmt.Errorf("failed to query setting %s: %w", key, result.Error)
	}

	setting.Value = string(raw)
	if err := db.Save(&setting).Error; err != nil {
		return fmt.Errorf("failed to update setting %s: %w", key, err)
	}
	return nil
}
