package model

import "time"

// User stores Telegram user metadata so scheduled reports know whom to reach.
// Task data itself is never persisted locally; the backend owns it.
type User struct {
	ID         uint  `gorm:"primaryKey"`
	TelegramID int64 `gorm:"uniqueIndex"`
	FirstName  string
	LastName   string
	Username   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ChatSetting keeps per-chat preferences: an optional report interval override
// and the last calendar window the chat was looking at.
type ChatSetting struct {
	ID            uint  `gorm:"primaryKey"`
	ChatID        int64 `gorm:"uniqueIndex"`
	ReportHours   int   // 0 means use the global default
	CalendarYear  int
	CalendarMonth int       // 1-12, 0 means current month
	LastReportAt  time.Time // zero until the first report goes out
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
