package app

import (
	"errors"
	"time"

	"github.com/granjalabs/granjapos/internal/domain"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SettingsManager reads and writes sys_config rows with type coercion.
type SettingsManager struct {
	db *gorm.DB
}

func NewSettingsManager(db *gorm.DB) *SettingsManager {
	return &SettingsManager{db: db}
}

func (m *SettingsManager) getValue(category, name string) (string, bool) {
	var cfg domain.SysConfig
	err := m.db.Where("type = ? and name = ?", category, name).First(&cfg).Error
	if err != nil {
		return "", false
	}
	return cfg.Value, true
}

func (m *SettingsManager) GetString(category, name string) string {
	v, _ := m.getValue(category, name)
	return v
}

func (m *SettingsManager) GetInt64(category, name string) int64 {
	v, ok := m.getValue(category, name)
	if !ok {
		return 0
	}
	return cast.ToInt64(v)
}

func (m *SettingsManager) GetBool(category, name string) bool {
	v, ok := m.getValue(category, name)
	if !ok {
		return false
	}
	return cast.ToBool(v)
}

func (m *SettingsManager) Set(category, name, value string) error {
	var cfg domain.SysConfig
	err := m.db.Where("type = ? and name = ?", category, name).First(&cfg).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return m.db.Create(&domain.SysConfig{
			Type:      category,
			Name:      name,
			Value:     value,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}).Error
	case err != nil:
		return err
	}
	return m.db.Model(&domain.SysConfig{}).
		Where("id = ?", cfg.ID).
		Updates(map[string]interface{}{"value": value, "updated_at": time.Now()}).Error
}

// ensureSetting seeds a default value when the key does not exist yet.
func (m *SettingsManager) ensureSetting(sort int, category, name, value, remark string) {
	var count int64
	m.db.Model(&domain.SysConfig{}).
		Where("type = ? and name = ?", category, name).
		Count(&count)
	if count == 0 {
		m.db.Create(&domain.SysConfig{
			Sort:   sort,
			Type:   category,
			Name:   name,
			Value:  value,
			Remark: remark,
		})
		zap.L().Info("initialized config",
			zap.String("key", category+"."+name),
			zap.String("default", value))
	}
}
