package bot

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"habit-tracker/internal/api"
	"habit-tracker/internal/form"
	"habit-tracker/internal/logger"
	"habit-tracker/internal/model"
)

type formStage int

const (
	stageNone formStage = iota
	stageTitle
	stageDescription
	stageSchedule
	stageUnit
	stageUnitValue
	stageDate
	stageAllDay
	stageStartTime
	stageEndTime
	stageHabitType
	stageNotes
	stageCategory
	stageReview
	stageEditMenu
	stageEditValue
)

// fieldStages maps form fields to the conversation step that collects them,
// so validation errors can rewind the dialog to the first offending field.
var fieldStages = map[string]formStage{
	form.FieldTitle:      stageTitle,
	form.FieldStartDate:  stageDate,
	form.FieldStartTime:  stageStartTime,
	form.FieldEndTime:    stageEndTime,
	form.FieldUnitValue:  stageUnitValue,
	form.FieldCategoryID: stageCategory,
}

// startNewHabitForm opens a fresh draft. A non-empty date pre-fills
// start_date, the way a calendar day press opens the form.
func (b *Bot) startNewHabitForm(ctx context.Context, from *tgbotapi.User, chatID int64, date string) error {
	if _, err := b.ensureUser(ctx, from); err != nil {
		return err
	}

	sess := b.getSession(from.ID)
	if date != "" {
		sess.controller = form.NewControllerForDate(date)
	} else {
		sess.controller = form.NewController()
	}
	sess.stage = stageTitle

	logger.Info("start habit form", zap.Int64("user", from.ID), zap.String("date", date))

	intro := "🆕 Creating a new habit.\n<b>Step 1:</b> what should it be called?"
	if date != "" {
		intro = fmt.Sprintf("🆕 New habit on <b>%s</b>.\n<b>Step 1:</b> what should it be called?", date)
	}
	return b.sendWithReplyMarkup(chatID, intro, cancelKeyboard())
}

func (b *Bot) handleFormMessage(ctx context.Context, msg *tgbotapi.Message, sess *session) error {
	if sess.controller == nil {
		b.clearSession(msg.From.ID)
		return b.sendText(msg.Chat.ID, "The dialog got out of sync. Start again with /newhabit.")
	}

	text := strings.TrimSpace(msg.Text)
	c := sess.controller

	switch sess.stage {
	case stageTitle:
		c.Set(form.FieldTitle, text)
		sess.stage = stageDescription
		return b.sendWithReplyMarkup(msg.Chat.ID, "✏️ Add a short description (or Skip).", skipKeyboard())

	case stageDescription:
		if !isSkipInput(text) {
			c.Set(form.FieldDescription, text)
		}
		sess.stage = stageSchedule
		return b.sendWithReplyMarkup(msg.Chat.ID, "🔁 How often? Pick a schedule (or Skip).", scheduleKeyboard())

	case stageSchedule:
		if !isSkipInput(text) {
			c.Set(form.FieldScheduleType, normalizeChoice(text))
		}
		sess.stage = stageUnit
		return b.sendWithReplyMarkup(msg.Chat.ID, "📏 What do you measure it in? (e.g. minutes; or Skip)", unitKeyboard())

	case stageUnit:
		if !isSkipInput(text) {
			c.Set(form.FieldUnit, normalizeChoice(text))
		}
		sess.stage = stageUnitValue
		return b.sendWithReplyMarkup(msg.Chat.ID, "🎯 How much per session? (a whole number; or Skip)", skipKeyboard())

	case stageUnitValue:
		if !isSkipInput(text) {
			c.Set(form.FieldUnitValue, text)
			if m, bad := form.Validate(c.Draft())[form.FieldUnitValue]; bad {
				return b.sendWithReplyMarkup(msg.Chat.ID, m+". Try again or Skip.", skipKeyboard())
			}
		}
		sess.stage = stageDate
		return b.askForDate(msg.Chat.ID, c)

	case stageDate:
		if isSkipInput(text) {
			if c.Draft().StartDate == "" {
				c.Set(form.FieldStartDate, time.Now().Format(model.DateLayout))
			}
		} else {
			c.Set(form.FieldStartDate, text)
			if m, bad := form.Validate(c.Draft())[form.FieldStartDate]; bad {
				return b.sendWithReplyMarkup(msg.Chat.ID, m+", e.g. <code>2026-09-15</code>.", skipKeyboard())
			}
		}
		sess.stage = stageAllDay
		return b.sendWithReplyMarkup(msg.Chat.ID, "🕐 Is this an all-day habit?", yesNoKeyboard())

	case stageAllDay:
		switch {
		case isYesInput(text):
			c.SetAllDay(true)
			sess.stage = stageHabitType
			return b.sendWithReplyMarkup(msg.Chat.ID, "🏷 What kind of habit is it?", habitTypeKeyboard())
		case isNoInput(text):
			c.SetAllDay(false)
			sess.stage = stageStartTime
			return b.sendWithReplyMarkup(msg.Chat.ID, "⏰ Start time, 24-hour <code>HH:MM</code> (or Skip).", skipKeyboard())
		default:
			return b.sendWithReplyMarkup(msg.Chat.ID, "Please answer Yes or No.", yesNoKeyboard())
		}

	case stageStartTime:
		if !isSkipInput(text) {
			c.Set(form.FieldStartTime, text)
			if m, bad := form.Validate(c.Draft())[form.FieldStartTime]; bad {
				return b.sendWithReplyMarkup(msg.Chat.ID, m+", e.g. <code>07:30</code>.", skipKeyboard())
			}
		}
		sess.stage = stageEndTime
		return b.sendWithReplyMarkup(msg.Chat.ID, "⏰ End time, 24-hour <code>HH:MM</code> (or Skip).", skipKeyboard())

	case stageEndTime:
		if !isSkipInput(text) {
			c.Set(form.FieldEndTime, text)
			if m, bad := form.Validate(c.Draft())[form.FieldEndTime]; bad {
				return b.sendWithReplyMarkup(msg.Chat.ID, m+". Try again or Skip.", skipKeyboard())
			}
		}
		sess.stage = stageHabitType
		return b.sendWithReplyMarkup(msg.Chat.ID, "🏷 What kind of habit is it?", habitTypeKeyboard())

	case stageHabitType:
		if !isSkipInput(text) {
			c.Set(form.FieldHabitType, normalizeChoice(text))
		}
		sess.stage = stageNotes
		return b.sendWithReplyMarkup(msg.Chat.ID, "📝 Any notes? (or Skip)", skipKeyboard())

	case stageNotes:
		if !isSkipInput(text) {
			c.Set(form.FieldNotes, text)
		}
		sess.stage = stageCategory
		return b.sendWithReplyMarkup(msg.Chat.ID, "📂 Category ID, if any (a number; or Skip).", skipKeyboard())

	case stageCategory:
		if !isSkipInput(text) {
			c.Set(form.FieldCategoryID, text)
			if m, bad := form.Validate(c.Draft())[form.FieldCategoryID]; bad {
				return b.sendWithReplyMarkup(msg.Chat.ID, m+". Try again or Skip.", skipKeyboard())
			}
		}
		sess.stage = stageReview
		return b.sendWithReplyMarkup(msg.Chat.ID, draftSummary(c.Draft()), confirmKeyboard())

	case stageReview:
		switch {
		case isConfirmInput(text):
			return b.submitForm(ctx, msg.Chat.ID, msg.From.ID, sess)
		case isCancelInput(text):
			b.clearSession(msg.From.ID)
			return b.sendText(msg.Chat.ID, "⏪ Habit discarded.")
		default:
			return b.sendWithReplyMarkup(msg.Chat.ID, "Confirm to save or Cancel to discard.", confirmKeyboard())
		}

	case stageEditValue:
		return b.handleEditValue(msg, sess)

	default:
		b.clearSession(msg.From.ID)
		return b.sendText(msg.Chat.ID, "Dialog reset. Start again with /newhabit.")
	}
}

func (b *Bot) askForDate(chatID int64, c *form.Controller) error {
	if d := c.Draft().StartDate; d != "" {
		return b.sendWithReplyMarkup(chatID,
			fmt.Sprintf("📅 Start date is <b>%s</b>. Send another <code>YYYY-MM-DD</code> or Skip to keep it.", d),
			skipKeyboard())
	}
	return b.sendWithReplyMarkup(chatID,
		"📅 Start date as <code>YYYY-MM-DD</code> (or Skip for today).",
		skipKeyboard())
}

// submitForm runs the validate-then-send flow. Field errors rewind the dialog
// to the first offending step; backend or network failures keep the draft and
// the review stage so Confirm can retry.
func (b *Bot) submitForm(ctx context.Context, chatID, userID int64, sess *session) error {
	task, fieldErrs, err := b.habits.Submit(ctx, sess.controller)

	if len(fieldErrs) > 0 {
		return b.rewindToFirstError(chatID, sess, fieldErrs)
	}

	if err != nil {
		var text string
		if apiErr, ok := err.(*api.APIError); ok && apiErr.Detail != "" {
			text = fmt.Sprintf("❌ The backend rejected the habit: %s\nConfirm to retry or Cancel to discard.", escape(apiErr.Detail))
		} else if _, ok := err.(*api.APIError); ok {
			text = "❌ Could not save the habit. Confirm to retry or Cancel to discard."
		} else {
			text = "📡 Network error, the habit was not saved. Check the backend connection, then Confirm to retry or Cancel to discard."
		}
		logger.Error("submit habit", err, zap.Int64("user", userID))
		return b.sendWithReplyMarkup(chatID, text, confirmKeyboard())
	}

	b.clearSession(userID)
	logger.Info("habit saved", zap.Int("task", task.ID), zap.Int64("user", userID))

	if err := b.sendText(chatID, fmt.Sprintf("✅ Habit <b>%s</b> saved as #%d.", escape(task.Title), task.ID)); err != nil {
		return err
	}
	// Refresh only after the create/update response was observed, so the
	// saved habit is already part of the authoritative list.
	return b.sendHabitList(ctx, chatID)
}

func (b *Bot) rewindToFirstError(chatID int64, sess *session, fieldErrs form.FieldErrors) error {
	var sb strings.Builder
	sb.WriteString("⚠️ <b>Please fix the following:</b>\n")

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Slice(fields, func(i, j int) bool {
		return fieldStages[fields[i]] < fieldStages[fields[j]]
	})
	for _, field := range fields {
		sb.WriteString(fmt.Sprintf("• %s: %s\n", field, escape(fieldErrs[field])))
	}

	first := fields[0]
	sess.stage = fieldStages[first]
	if sess.stage == stageNone {
		sess.stage = stageReview
	}
	sb.WriteString(fmt.Sprintf("\nLet's redo <b>%s</b> — send a new value.", first))
	return b.sendWithReplyMarkup(chatID, sb.String(), skipKeyboard())
}

func draftSummary(d form.Draft) string {
	var sb strings.Builder
	if d.TaskID > 0 {
		sb.WriteString(fmt.Sprintf("🔍 <b>Review habit #%d</b>\n", d.TaskID))
	} else {
		sb.WriteString("🔍 <b>Review the new habit</b>\n")
	}
	sb.WriteString(fmt.Sprintf("• <b>Title:</b> %s\n", escape(d.Title)))
	if d.Description != "" {
		sb.WriteString(fmt.Sprintf("• <b>Description:</b> %s\n", escape(d.Description)))
	}
	if d.ScheduleType != "" {
		sb.WriteString(fmt.Sprintf("• <b>Schedule:</b> %s\n", escape(strings.ReplaceAll(d.ScheduleType, "_", " "))))
	}
	if d.Unit != "" || d.UnitValue != "" {
		sb.WriteString(fmt.Sprintf("• <b>Goal:</b> %s %s\n", escape(d.UnitValue), escape(d.Unit)))
	}
	if d.StartDate != "" {
		sb.WriteString(fmt.Sprintf("• <b>Date:</b> %s\n", escape(d.StartDate)))
	}
	if d.AllDay {
		sb.WriteString("• <b>Time:</b> all day\n")
	} else if d.StartTime != "" || d.EndTime != "" {
		sb.WriteString(fmt.Sprintf("• <b>Time:</b> %s–%s\n", escape(d.StartTime), escape(d.EndTime)))
	}
	if d.HabitType != "" {
		sb.WriteString(fmt.Sprintf("• <b>Type:</b> %s\n", escape(d.HabitType)))
	}
	if d.Notes != "" {
		sb.WriteString(fmt.Sprintf("• <b>Notes:</b> %s\n", escape(d.Notes)))
	}
	if d.CategoryID != "" {
		sb.WriteString(fmt.Sprintf("• <b>Category ID:</b> %s\n", escape(d.CategoryID)))
	}
	if d.TaskID > 0 {
		status := "not completed"
		if d.Completed {
			status = "completed"
		}
		sb.WriteString(fmt.Sprintf("• <b>Status:</b> %s\n", status))
	}
	sb.WriteString("\nConfirm to save, Cancel to discard.")
	return sb.String()
}

// normalizeChoice turns a keyboard label like "Every other day" into the wire
// value "every_other_day"; free text passes through the same way.
func normalizeChoice(text string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(text)), " ", "_")
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func skipKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSkip),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func yesNoKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnYes),
			tgbotapi.NewKeyboardButton(btnNo),
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func confirmKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnConfirm),
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func scheduleKeyboard() tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	var row []tgbotapi.KeyboardButton
	for _, s := range model.ScheduleTypes() {
		row = append(row, tgbotapi.NewKeyboardButton(labelFromChoice(s)))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnSkip),
		tgbotapi.NewKeyboardButton(btnCancelDialog),
	))
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func unitKeyboard() tgbotapi.ReplyKeyboardMarkup {
	var row []tgbotapi.KeyboardButton
	for _, u := range model.Units() {
		row = append(row, tgbotapi.NewKeyboardButton(u))
	}
	kb := tgbotapi.NewReplyKeyboard(
		row,
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSkip),
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func habitTypeKeyboard() tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	var row []tgbotapi.KeyboardButton
	for _, h := range model.HabitTypes() {
		row = append(row, tgbotapi.NewKeyboardButton(h))
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnSkip),
		tgbotapi.NewKeyboardButton(btnCancelDialog),
	))
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func labelFromChoice(value string) string {
	label := strings.ReplaceAll(value, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
