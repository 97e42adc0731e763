// Package settings owns the invoice-settings persistence façade and the
// in-memory editing session that feeds the invoice preview.
package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/printdesk/printdesk/internal/auth"
	"github.com/printdesk/printdesk/internal/cache"
	"github.com/printdesk/printdesk/internal/models"
)

var (
	// ErrAuthenticationRequired is returned for any read or write without an
	// authenticated principal in the context.
	ErrAuthenticationRequired = errors.New("authentication_required")
	// ErrNotFound is returned when the target record does not exist in the
	// caller's scope.
	ErrNotFound = errors.New("setting_not_found")
	// ErrStorageUnavailable wraps transport/server failures from the store.
	// Failures are always surfaced; the façade never falls back to a
	// synthetic record.
	ErrStorageUnavailable = errors.New("settings_storage_unavailable")
)

// DefaultRecordName is the name given to the record auto-created on first
// load for a user with no saved settings.
const DefaultRecordName = "Default"

const defaultCacheTTL = 60 * time.Second

// Store is the gorm-backed persistence façade. The default record per user is
// cached briefly to de-duplicate reads from the preview path; every mutation
// invalidates the cache entry.
type Store struct {
	DB       *gorm.DB
	cache    *cache.TTL[uint, models.InvoiceSettingRecord]
	cacheTTL time.Duration
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db, cache: cache.NewTTL[uint, models.InvoiceSettingRecord](), cacheTTL: defaultCacheTTL}
}

func principal(ctx context.Context) (uint, error) {
	uid, ok := auth.UserIDFromContext(ctx)
	if !ok || uid == 0 {
		return 0, ErrAuthenticationRequired
	}
	return uid, nil
}

// LoadDefault returns the caller's default settings, creating an empty
// template record when the user has none yet.
func (s *Store) LoadDefault(ctx context.Context) (models.InvoiceSettings, error) {
	uid, err := principal(ctx)
	if err != nil {
		return models.InvoiceSettings{}, err
	}
	if rec, ok := s.cache.Get(uid); ok {
		return rec.Settings()
	}

	var rec models.InvoiceSettingRecord
	err = s.DB.Where("user_id = ? AND is_default = ?", uid, true).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No default record. A record may still carry the reserved name (for
		// example after being demoted via Save); promote it rather than
		// colliding with the (user_id, name) uniqueness.
		err = s.DB.Where("user_id = ? AND name = ?", uid, DefaultRecordName).First(&rec).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			rec = models.InvoiceSettingRecord{UserID: uid, Name: DefaultRecordName, IsDefault: true}
			if serr := rec.SetSettings(models.DefaultInvoiceSettings()); serr != nil {
				return models.InvoiceSettings{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, serr)
			}
			if cerr := s.DB.Create(&rec).Error; cerr != nil {
				return models.InvoiceSettings{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, cerr)
			}
		case err != nil:
			return models.InvoiceSettings{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		default:
			rec.IsDefault = true
			if uerr := s.DB.Model(&rec).Update("is_default", true).Error; uerr != nil {
				return models.InvoiceSettings{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, uerr)
			}
		}
	} else if err != nil {
		return models.InvoiceSettings{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.cache.Set(uid, rec, s.cacheTTL)
	return rec.Settings()
}

// Save upserts a named settings record for the caller. When isDefault is set,
// all other records lose their default flag in the same transaction: a user
// has at most one default record.
func (s *Store) Save(ctx context.Context, settings models.InvoiceSettings, name string, isDefault bool) (*models.InvoiceSettingRecord, error) {
	uid, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	var rec models.InvoiceSettingRecord
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if isDefault {
			if err := tx.Model(&models.InvoiceSettingRecord{}).
				Where("user_id = ? AND name <> ?", uid, name).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		err := tx.Where("user_id = ? AND name = ?", uid, name).First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rec = models.InvoiceSettingRecord{UserID: uid, Name: name, IsDefault: isDefault}
			if serr := rec.SetSettings(settings); serr != nil {
				return serr
			}
			return tx.Create(&rec).Error
		}
		if err != nil {
			return err
		}
		rec.IsDefault = isDefault
		if serr := rec.SetSettings(settings); serr != nil {
			return serr
		}
		return tx.Save(&rec).Error
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.cache.Delete(uid)
	return &rec, nil
}

// List returns the caller's records, newest first.
func (s *Store) List(ctx context.Context) ([]models.InvoiceSettingRecord, error) {
	uid, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	var recs []models.InvoiceSettingRecord
	if err := s.DB.Where("user_id = ?", uid).Order("created_at desc, id desc").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return recs, nil
}

// Delete removes one record in the caller's scope.
func (s *Store) Delete(ctx context.Context, id uint) error {
	uid, err := principal(ctx)
	if err != nil {
		return err
	}
	res := s.DB.Where("id = ? AND user_id = ?", id, uid).Delete(&models.InvoiceSettingRecord{})
	if res.Error != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.cache.Delete(uid)
	return nil
}

// SetDefault marks one record as the caller's default, clearing the flag on
// every other record first (strict single-default semantics).
func (s *Store) SetDefault(ctx context.Context, id uint) error {
	uid, err := principal(ctx)
	if err != nil {
		return err
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.InvoiceSettingRecord{}).
			Where("user_id = ? AND id <> ?", uid, id).
			Update("is_default", false).Error; err != nil {
			return err
		}
		res := tx.Model(&models.InvoiceSettingRecord{}).
			Where("id = ? AND user_id = ?", id, uid).
			Update("is_default", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	s.cache.Delete(uid)
	return nil
}
