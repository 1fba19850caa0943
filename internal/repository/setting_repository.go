package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"habit-tracker/internal/model"
)

// SettingRepository stores per-chat preferences.
type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetOrCreate returns the settings row for a chat, creating defaults on first
// contact.
func (r *SettingRepository) GetOrCreate(ctx context.Context, chatID int64) (*model.ChatSetting, error) {
	var setting model.ChatSetting
	db := r.db.WithContext(ctx)
	err := db.Where("chat_id = ?", chatID).First(&setting).Error
	switch {
	case err == nil:
		return &setting, nil
	case err == gorm.ErrRecordNotFound:
		setting = model.ChatSetting{ChatID: chatID}
		if err := db.Create(&setting).Error; err != nil {
			return nil, fmt.Errorf("create chat setting: %w", err)
		}
		return &setting, nil
	default:
		return nil, fmt.Errorf("find chat setting: %w", err)
	}
}

// SetReportHours stores a per-chat report interval override (0 resets to the
// global default).
func (r *SettingRepository) SetReportHours(ctx context.Context, chatID int64, hours int) error {
	setting, err := r.GetOrCreate(ctx, chatID)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Model(setting).Update("report_hours", hours).Error; err != nil {
		return fmt.Errorf("update report hours: %w", err)
	}
	return nil
}

// MarkReportSent records when the chat last received a scheduled report, so
// the next delivery waits out the chat's interval.
func (r *SettingRepository) MarkReportSent(ctx context.Context, chatID int64, at time.Time) error {
	setting, err := r.GetOrCreate(ctx, chatID)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Model(setting).Update("last_report_at", at).Error; err != nil {
		return fmt.Errorf("update last report time: %w", err)
	}
	return nil
}

// SetCalendarWindow remembers the month/year the chat last looked at, so the
// calendar reopens where it was left.
func (r *SettingRepository) SetCalendarWindow(ctx context.Context, chatID int64, year, month int) error {
	setting, err := r.GetOrCreate(ctx, chatID)
	if err != nil {
		return err
	}
	updates := map[string]interface{}{
		"calendar_year":  year,
		"calendar_month": month,
	}
	if err := r.db.WithContext(ctx).Model(setting).Updates(updates).Error; err != nil {
		return fmt.Errorf("update calendar window: %w", err)
	}
	return nil
}
