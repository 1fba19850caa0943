package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"habit-tracker/internal/api"
	"habit-tracker/internal/form"
	"habit-tracker/internal/logger"
)

// editableFields drives the edit menu: field key plus the label shown on its
// button, in screen order.
var editableFields = []struct {
	field string
	label string
}{
	{form.FieldTitle, "Title"},
	{form.FieldDescription, "Description"},
	{form.FieldScheduleType, "Schedule"},
	{form.FieldUnit, "Unit"},
	{form.FieldUnitValue, "Unit value"},
	{form.FieldStartDate, "Start date"},
	{form.FieldAllDay, "All day"},
	{form.FieldStartTime, "Start time"},
	{form.FieldEndTime, "End time"},
	{form.FieldHabitType, "Habit type"},
	{form.FieldNotes, "Notes"},
	{form.FieldCategoryID, "Category ID"},
}

// startEditForm loads a task into a draft and shows the field menu. The draft
// is discarded after save or cancel; the backend copy stays authoritative.
func (b *Bot) startEditForm(ctx context.Context, from *tgbotapi.User, chatID int64, taskID int) error {
	if _, err := b.ensureUser(ctx, from); err != nil {
		return err
	}

	task, err := b.habits.Get(ctx, taskID)
	if err != nil {
		if api.IsNotFound(err) {
			return b.sendText(chatID, "Habit not found, it may have been deleted.")
		}
		return b.sendText(chatID, fmt.Sprintf("Could not load the habit: %s", escape(err.Error())))
	}

	sess := b.getSession(from.ID)
	sess.controller = form.NewControllerFromTask(*task)
	sess.stage = stageEditMenu
	sess.editField = ""

	logger.Info("start habit edit", zap.Int64("user", from.ID), zap.Int("task", taskID))
	return b.sendEditMenu(chatID, sess)
}

func (b *Bot) sendEditMenu(chatID int64, sess *session) error {
	d := sess.controller.Draft()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("✏️ <b>Editing habit #%d</b>\nPick a field to change, then Save.\n\n", d.TaskID))
	sb.WriteString(editValueLines(d))

	if errs := sess.controller.Errors(); len(errs) > 0 {
		sb.WriteString("\n⚠️ <b>Fix before saving:</b>\n")
		for _, ef := range editableFields {
			if m, ok := errs[ef.field]; ok {
				sb.WriteString(fmt.Sprintf("• %s: %s\n", ef.label, escape(m)))
			}
		}
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, ef := range editableFields {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(ef.label, cbEditFieldPrefix+ef.field))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	toggleLabel := "☑️ Mark completed"
	if d.Completed {
		toggleLabel = "🔄 Mark not completed"
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(toggleLabel, cbEditToggle),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("💾 Save", cbEditSave),
		tgbotapi.NewInlineKeyboardButtonData(btnCancel, cbEditCancel),
	))

	msg := tgbotapi.NewMessage(chatID, strings.TrimSpace(sb.String()))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	_, err := b.api.Send(msg)
	return err
}

func editValueLines(d form.Draft) string {
	show := func(v string) string {
		if strings.TrimSpace(v) == "" {
			return "—"
		}
		return escape(v)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("• Title: %s\n", show(d.Title)))
	sb.WriteString(fmt.Sprintf("• Description: %s\n", show(d.Description)))
	sb.WriteString(fmt.Sprintf("• Schedule: %s\n", show(strings.ReplaceAll(d.ScheduleType, "_", " "))))
	sb.WriteString(fmt.Sprintf("• Goal: %s %s\n", show(d.UnitValue), show(d.Unit)))
	sb.WriteString(fmt.Sprintf("• Start date: %s\n", show(d.StartDate)))
	if d.AllDay {
		sb.WriteString("• Time: all day\n")
	} else {
		sb.WriteString(fmt.Sprintf("• Time: %s–%s\n", show(d.StartTime), show(d.EndTime)))
	}
	sb.WriteString(fmt.Sprintf("• Habit type: %s\n", show(d.HabitType)))
	sb.WriteString(fmt.Sprintf("• Notes: %s\n", show(d.Notes)))
	sb.WriteString(fmt.Sprintf("• Category ID: %s\n", show(d.CategoryID)))
	if d.Completed {
		sb.WriteString("• Status: completed ✅\n")
	} else {
		sb.WriteString("• Status: not completed\n")
	}
	return sb.String()
}

func (b *Bot) handleEditCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	sess := b.getSession(cb.From.ID)
	chatID := cb.Message.Chat.ID

	if sess.controller == nil || (sess.stage != stageEditMenu && sess.stage != stageEditValue) {
		return b.sendText(chatID, "No edit in progress. Open one from /habits.")
	}

	data := cb.Data
	switch {
	case strings.HasPrefix(data, cbEditFieldPrefix):
		field := strings.TrimPrefix(data, cbEditFieldPrefix)
		sess.editField = field
		sess.stage = stageEditValue
		return b.promptEditValue(chatID, field)

	case data == cbEditToggle:
		sess.controller.SetCompleted(!sess.controller.Draft().Completed)
		return b.sendEditMenu(chatID, sess)

	case data == cbEditSave:
		return b.saveEdit(ctx, chatID, cb.From.ID, sess)

	case data == cbEditCancel:
		b.clearSession(cb.From.ID)
		return b.sendText(chatID, "⏪ Edit cancelled, nothing was changed.")

	default:
		return nil
	}
}

func (b *Bot) promptEditValue(chatID int64, field string) error {
	switch field {
	case form.FieldAllDay:
		return b.sendWithReplyMarkup(chatID, "🕐 All-day habit?", yesNoKeyboard())
	case form.FieldScheduleType:
		return b.sendWithReplyMarkup(chatID, "🔁 Pick the new schedule.", scheduleKeyboard())
	case form.FieldUnit:
		return b.sendWithReplyMarkup(chatID, "📏 Pick the new unit.", unitKeyboard())
	case form.FieldHabitType:
		return b.sendWithReplyMarkup(chatID, "🏷 Pick the new habit type.", habitTypeKeyboard())
	case form.FieldStartDate:
		return b.sendWithReplyMarkup(chatID, "📅 New start date as <code>YYYY-MM-DD</code>.", cancelKeyboard())
	case form.FieldStartTime, form.FieldEndTime:
		return b.sendWithReplyMarkup(chatID, "⏰ New time, 24-hour <code>HH:MM</code>.", cancelKeyboard())
	default:
		return b.sendWithReplyMarkup(chatID, "✏️ Send the new value (or <code>-</code> to clear).", cancelKeyboard())
	}
}

// handleEditValue consumes the next message as the new value for the field
// picked on the edit menu, then returns to the menu.
func (b *Bot) handleEditValue(msg *tgbotapi.Message, sess *session) error {
	text := strings.TrimSpace(msg.Text)
	c := sess.controller

	switch sess.editField {
	case form.FieldAllDay:
		switch {
		case isYesInput(text):
			c.SetAllDay(true)
		case isNoInput(text):
			c.SetAllDay(false)
		default:
			return b.sendWithReplyMarkup(msg.Chat.ID, "Please answer Yes or No.", yesNoKeyboard())
		}
	case form.FieldScheduleType, form.FieldUnit, form.FieldHabitType:
		if text == "-" {
			c.Set(sess.editField, "")
		} else {
			c.Set(sess.editField, normalizeChoice(text))
		}
	default:
		if text == "-" {
			text = ""
		}
		c.Set(sess.editField, text)
	}

	sess.editField = ""
	sess.stage = stageEditMenu
	return b.sendEditMenu(msg.Chat.ID, sess)
}

// saveEdit validates and PUTs the draft. Field errors and backend failures
// keep the menu (and the draft) alive for correction.
func (b *Bot) saveEdit(ctx context.Context, chatID, userID int64, sess *session) error {
	task, fieldErrs, err := b.habits.Submit(ctx, sess.controller)

	if len(fieldErrs) > 0 {
		return b.sendEditMenu(chatID, sess)
	}

	if err != nil {
		var text string
		if apiErr, ok := err.(*api.APIError); ok && apiErr.Detail != "" {
			text = fmt.Sprintf("❌ The backend rejected the update: %s", escape(apiErr.Detail))
		} else if ok := api.IsNotFound(err); ok {
			text = "❌ The habit no longer exists on the backend."
		} else if _, ok := err.(*api.APIError); ok {
			text = "❌ Could not update the habit."
		} else {
			text = "📡 Network error, the update was not saved. Try Save again."
		}
		logger.Error("update habit", err, zap.Int64("user", userID))
		if sendErr := b.sendText(chatID, text); sendErr != nil {
			return sendErr
		}
		return b.sendEditMenu(chatID, sess)
	}

	b.clearSession(userID)
	logger.Info("habit updated", zap.Int("task", task.ID), zap.Int64("user", userID))

	if err := b.sendText(chatID, fmt.Sprintf("✅ Habit <b>%s</b> (#%d) updated.", escape(task.Title), task.ID)); err != nil {
		return err
	}
	return b.sendHabitList(ctx, chatID)
}
