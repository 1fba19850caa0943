package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"habit-tracker/internal/calendar"
	"habit-tracker/internal/logger"
	"habit-tracker/internal/model"
)

const (
	cbCalPrev   = "cal:prev"
	cbCalNext   = "cal:next"
	cbCalToday  = "cal:today"
	cbCalPicker = "cal:picker"
	cbCalGo     = "cal:go"
	cbCalCancel = "cal:cancel"
	cbCalNoop   = "cal:noop"

	cbCalDayPrefix   = "cal:day:"
	cbCalMonthPrefix = "cal:pm:"
	cbCalYearPrefix  = "cal:py:"
)

// handleCalendar opens the calendar screen: refresh the projection, restore
// the chat's last window, render the month grid.
func (b *Bot) handleCalendar(ctx context.Context, msg *tgbotapi.Message) error {
	if _, err := b.ensureUser(ctx, msg.From); err != nil {
		return err
	}

	sess := b.getSession(msg.From.ID)
	if sess.picker == nil {
		sess.picker = b.restorePicker(ctx, msg.Chat.ID)
	}

	if err := b.projector.Refresh(ctx); err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("📡 Could not fetch habits for the calendar: %s", escape(err.Error())))
	}

	text, markup := b.renderCalendar(sess.picker)
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ParseMode = tgbotapi.ModeHTML
	out.ReplyMarkup = markup
	_, err := b.api.Send(out)
	return err
}

// restorePicker seeds the month picker from the chat's stored window, falling
// back to the current month.
func (b *Bot) restorePicker(ctx context.Context, chatID int64) *calendar.MonthPicker {
	now := time.Now()
	year, month := now.Year(), now.Month()
	if setting, err := b.settings.GetOrCreate(ctx, chatID); err == nil {
		if setting.CalendarYear > 0 && setting.CalendarMonth >= 1 && setting.CalendarMonth <= 12 {
			year, month = setting.CalendarYear, time.Month(setting.CalendarMonth)
		}
	}
	return calendar.NewMonthPicker(year, month)
}

func (b *Bot) handleCalendarCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	sess := b.getSession(cb.From.ID)
	chatID := cb.Message.Chat.ID
	if sess.picker == nil {
		sess.picker = b.restorePicker(ctx, chatID)
	}
	picker := sess.picker

	data := cb.Data
	switch {
	case data == cbCalNoop:
		return nil

	case data == cbCalPrev:
		picker.Prev()
		b.persistWindow(ctx, chatID, picker)
		return b.redrawCalendar(cb, picker)

	case data == cbCalNext:
		picker.Next()
		b.persistWindow(ctx, chatID, picker)
		return b.redrawCalendar(cb, picker)

	case data == cbCalToday:
		now := time.Now()
		sess.picker = calendar.NewMonthPicker(now.Year(), now.Month())
		b.persistWindow(ctx, chatID, sess.picker)
		return b.redrawCalendar(cb, sess.picker)

	case data == cbCalPicker:
		picker.Open()
		return b.redrawCalendar(cb, picker)

	case strings.HasPrefix(data, cbCalMonthPrefix):
		if m, err := strconv.Atoi(strings.TrimPrefix(data, cbCalMonthPrefix)); err == nil {
			picker.SelectMonth(time.Month(m))
		}
		return b.redrawCalendar(cb, picker)

	case strings.HasPrefix(data, cbCalYearPrefix):
		if y, err := strconv.Atoi(strings.TrimPrefix(data, cbCalYearPrefix)); err == nil {
			picker.SelectYear(y)
		}
		return b.redrawCalendar(cb, picker)

	case data == cbCalGo:
		picker.Go()
		b.persistWindow(ctx, chatID, picker)
		return b.redrawCalendar(cb, picker)

	case data == cbCalCancel:
		picker.Cancel()
		return b.redrawCalendar(cb, picker)

	case strings.HasPrefix(data, cbCalDayPrefix):
		return b.handleDayPressed(ctx, cb, strings.TrimPrefix(data, cbCalDayPrefix))

	default:
		return nil
	}
}

// handleDayPressed shows what is scheduled on the tapped day and opens the
// habit form pre-filled with that date.
func (b *Bot) handleDayPressed(ctx context.Context, cb *tgbotapi.CallbackQuery, date string) error {
	chatID := cb.Message.Chat.ID

	day, err := time.ParseInLocation(model.DateLayout, date, time.Local)
	if err != nil {
		return nil
	}

	events := b.projector.EventsOn(day.Year(), day.Month(), day.Day())
	if len(events) > 0 {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("📆 <b>%s</b>\n", day.Format("Mon, 02 Jan 2006")))
		for _, ev := range events {
			if ev.AllDay {
				sb.WriteString(fmt.Sprintf("• %s — all day\n", escape(ev.Title)))
			} else {
				sb.WriteString(fmt.Sprintf("• %s — %s–%s\n", escape(ev.Title), ev.Start.Format("15:04"), ev.End.Format("15:04")))
			}
		}
		if err := b.sendText(chatID, strings.TrimSpace(sb.String())); err != nil {
			return err
		}
	}

	logger.Info("calendar day pressed", zap.Int64("user", cb.From.ID), zap.String("date", date))
	return b.startNewHabitForm(ctx, cb.From, chatID, date)
}

func (b *Bot) persistWindow(ctx context.Context, chatID int64, picker *calendar.MonthPicker) {
	year, month := picker.Visible()
	if err := b.settings.SetCalendarWindow(ctx, chatID, year, int(month)); err != nil {
		logger.Error("persist calendar window", err, zap.Int64("chat", chatID))
	}
}

func (b *Bot) redrawCalendar(cb *tgbotapi.CallbackQuery, picker *calendar.MonthPicker) error {
	text, markup := b.renderCalendar(picker)
	edit := tgbotapi.NewEditMessageTextAndMarkup(cb.Message.Chat.ID, cb.Message.MessageID, text, markup)
	edit.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(edit)
	return err
}

// renderCalendar draws either the month grid or, while the picker dialog is
// open, the month/year selection view.
func (b *Bot) renderCalendar(picker *calendar.MonthPicker) (string, tgbotapi.InlineKeyboardMarkup) {
	if picker.IsOpen() {
		return b.renderMonthYearPicker(picker)
	}
	return b.renderMonthGrid(picker)
}

func (b *Bot) renderMonthGrid(picker *calendar.MonthPicker) (string, tgbotapi.InlineKeyboardMarkup) {
	year, month := picker.Visible()
	counts := b.projector.EventCounts(year, month)

	text := fmt.Sprintf("📆 <b>%s %d</b>\nTap a day to add a habit there; days with habits are marked.", month, year)

	var rows [][]tgbotapi.InlineKeyboardButton

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("📅 %s %d", month, year), cbCalPicker),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️", cbCalPrev),
		tgbotapi.NewInlineKeyboardButtonData("Today", cbCalToday),
		tgbotapi.NewInlineKeyboardButtonData("▶️", cbCalNext),
	))

	weekdays := []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}
	var header []tgbotapi.InlineKeyboardButton
	for _, wd := range weekdays {
		header = append(header, tgbotapi.NewInlineKeyboardButtonData(wd, cbCalNoop))
	}
	rows = append(rows, header)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	// Monday-first column for the 1st of the month.
	lead := (int(first.Weekday()) + 6) % 7
	days := calendar.DaysIn(year, month)

	var row []tgbotapi.InlineKeyboardButton
	for i := 0; i < lead; i++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(" ", cbCalNoop))
	}
	for d := 1; d <= days; d++ {
		label := strconv.Itoa(d)
		if counts[d] > 0 {
			label += "•"
		}
		date := fmt.Sprintf("%04d-%02d-%02d", year, int(month), d)
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, cbCalDayPrefix+date))
		if len(row) == 7 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		for len(row) < 7 {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(" ", cbCalNoop))
		}
		rows = append(rows, row)
	}

	return text, tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) renderMonthYearPicker(picker *calendar.MonthPicker) (string, tgbotapi.InlineKeyboardMarkup) {
	pendingYear, pendingMonth := picker.Pending()

	text := "📅 <b>Select month and year</b>\nGo applies the selection, Cancel keeps the current view."

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for m := time.January; m <= time.December; m++ {
		label := m.String()[:3]
		if m == pendingMonth {
			label = "• " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%d", cbCalMonthPrefix, int(m))))
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}

	var years []tgbotapi.InlineKeyboardButton
	for y := pendingYear - 3; y <= pendingYear+3; y++ {
		label := strconv.Itoa(y)
		if y == pendingYear {
			label = "•" + label
		}
		years = append(years, tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%d", cbCalYearPrefix, y)))
	}
	rows = append(rows, years)

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✅ Go", cbCalGo),
		tgbotapi.NewInlineKeyboardButtonData("↩️ Cancel", cbCalCancel),
	))

	return text, tgbotapi.NewInlineKeyboardMarkup(rows...)
}
