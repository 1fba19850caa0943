package bot

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"habit-tracker/internal/api"
	"habit-tracker/internal/calendar"
	"habit-tracker/internal/config"
	"habit-tracker/internal/form"
	"habit-tracker/internal/logger"
	"habit-tracker/internal/model"
	"habit-tracker/internal/repository"
	"habit-tracker/internal/service"
)

const (
	cbEditPrefix      = "edit:"
	cbDeletePrefix    = "del:"
	cbDeleteYesPrefix = "delyes:"
	cbDeleteNo        = "delno"
	cbEditFieldPrefix = "ef:"
	cbEditSave        = "esave"
	cbEditCancel      = "ecancel"
	cbEditToggle      = "etoggle"
)

const (
	btnSkip         = "⏭️ Skip"
	btnYes          = "Yes"
	btnNo           = "No"
	btnConfirm      = "✅ Confirm"
	btnCancel       = "↩️ Cancel"
	btnCancelDialog = "⏪ Cancel input"

	menuLabelNewHabit = "➕ New habit"
	menuLabelHabits   = "📋 My habits"
	menuLabelCalendar = "📆 Calendar"
	menuLabelHelp     = "ℹ️ Help"
)

// session holds everything in flight for one chat: the form conversation, a
// pending delete confirmation, and the calendar window.
type session struct {
	stage      formStage
	controller *form.Controller
	editField  string

	pendingDelete int

	picker *calendar.MonthPicker
}

// Bot wires the Telegram API to the habit backend services. It is the only
// owner of per-chat session state.
type Bot struct {
	api       *tgbotapi.BotAPI
	users     *repository.UserRepository
	settings  *repository.SettingRepository
	habits    *service.HabitService
	agenda    *service.AgendaService
	projector *calendar.Projector
	config    *config.Config

	mu       sync.Mutex
	sessions map[int64]*session
}

func New(token string, users *repository.UserRepository, settings *repository.SettingRepository, habits *service.HabitService, agenda *service.AgendaService, projector *calendar.Projector, cfg *config.Config) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	logger.Info("bot authorized", zap.String("account", botAPI.Self.UserName))

	return &Bot{
		api:       botAPI,
		users:     users,
		settings:  settings,
		habits:    habits,
		agenda:    agenda,
		projector: projector,
		config:    cfg,
		sessions:  make(map[int64]*session),
	}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	logger.Info("start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				logger.Error("handle callback", err)
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				logger.Error("handle message", err)
			}
		}
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	if !msg.IsCommand() && isCancelDialogInput(msg.Text) {
		b.clearSession(msg.From.ID)
		return b.sendText(msg.Chat.ID, "⏪ Input cancelled. Back to the main menu.")
	}

	if !msg.IsCommand() {
		if handled, err := b.handleMenuAlias(ctx, msg); handled {
			return err
		}
	}

	if msg.IsCommand() {
		logger.Info("command",
			zap.Int64("user", msg.From.ID),
			zap.String("command", msg.Command()))
		return b.handleCommand(ctx, msg)
	}

	sess := b.getSession(msg.From.ID)

	if sess.pendingDelete > 0 {
		return b.handleDeleteConfirmationText(ctx, msg, sess)
	}

	if sess.stage != stageNone {
		return b.handleFormMessage(ctx, msg, sess)
	}

	return b.sendText(msg.Chat.ID, "I didn't catch that. Try /newhabit to add a habit or /help for the command list.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.handleStart(ctx, msg)
	case "help":
		return b.handleHelp(msg)
	case "habits":
		return b.handleListHabits(ctx, msg)
	case "newhabit":
		return b.startNewHabitForm(ctx, msg.From, msg.Chat.ID, "")
	case "calendar":
		return b.handleCalendar(ctx, msg)
	case "agenda":
		return b.handleAgenda(ctx, msg)
	case "delete":
		return b.handleDeleteCommand(ctx, msg)
	case "newcategory":
		return b.handleNewCategory(ctx, msg)
	case "categories":
		return b.handleListCategories(ctx, msg)
	case "settings":
		return b.handleSettings(ctx, msg)
	case "interval":
		return b.handleInterval(ctx, msg)
	case "cancel":
		b.clearSession(msg.From.ID)
		return b.sendText(msg.Chat.ID, "⏪ Current input cancelled.")
	default:
		return b.sendText(msg.Chat.ID, "Unknown command. See /help.")
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	if _, err := b.ensureUser(ctx, msg.From); err != nil {
		return err
	}

	name := strings.TrimSpace(msg.From.FirstName)
	if name == "" {
		name = "there"
	}

	text := fmt.Sprintf(
		"👋 Hi, %s!\n<b>I track your habits against the habit backend.</b>\n\nCommands:\n"+
			"• /newhabit — add a habit step by step\n"+
			"• /habits — list habits, edit or delete them\n"+
			"• /calendar — month view with your habits\n"+
			"• /agenda — today's report right now\n"+
			"• /interval &lt;hours&gt; — how often to send reports\n"+
			"• /help — hints\n"+
			"• /cancel — abort the current input",
		escape(name),
	)

	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	text := "ℹ️ <b>Hints</b>\n" +
		"• /newhabit — add a habit step by step\n" +
		"• /habits — list habits with edit and delete buttons\n" +
		"• /delete &lt;id&gt; — delete a habit by number\n" +
		"• /calendar — month grid; tap a day to add a habit there\n" +
		"• /agenda — today's habits and what's overdue\n" +
		"• /categories — list backend categories\n" +
		"• /newcategory &lt;name&gt; — add a category\n" +
		"• /settings — current report settings\n" +
		"• /interval &lt;hours&gt; — report cadence\n" +
		"• /cancel — abort the current input"
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleAgenda(ctx context.Context, msg *tgbotapi.Message) error {
	if _, err := b.ensureUser(ctx, msg.From); err != nil {
		return err
	}
	text, err := b.agenda.DailySummary(ctx, time.Now())
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not build the report: %s", escape(err.Error())))
	}
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleSettings(ctx context.Context, msg *tgbotapi.Message) error {
	setting, err := b.settings.GetOrCreate(ctx, msg.Chat.ID)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not load settings: %s", escape(err.Error())))
	}

	hours := int(b.config.ReportInterval.Hours())
	if setting.ReportHours > 0 {
		hours = setting.ReportHours
	}
	var window string
	if setting.CalendarYear > 0 && setting.CalendarMonth > 0 {
		window = fmt.Sprintf("%s %d", time.Month(setting.CalendarMonth), setting.CalendarYear)
	} else {
		window = "current month"
	}

	text := "⚙️ <b>Settings</b>\n" +
		fmt.Sprintf("• Report every: %d hours\n", hours) +
		fmt.Sprintf("• Calendar opens at: %s\n", window) +
		fmt.Sprintf("• Backend: %s", escape(b.config.APIBaseURL))
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleInterval(ctx context.Context, msg *tgbotapi.Message) error {
	args := strings.TrimSpace(msg.CommandArguments())
	if args == "" {
		current := b.effectiveReportHours(ctx, msg.Chat.ID)
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Current report interval: %d hours. Send a number of hours, e.g. /interval 6", current))
	}
	hours, err := strconv.Atoi(args)
	if err != nil || hours <= 0 {
		return b.sendText(msg.Chat.ID, "The interval must be a positive number of hours, e.g. /interval 6")
	}

	if err := b.settings.SetReportHours(ctx, msg.Chat.ID, hours); err != nil {
		logger.Error("persist report interval", err, zap.Int64("chat", msg.Chat.ID))
		return b.sendText(msg.Chat.ID, "Could not save the interval, try again.")
	}
	return b.sendText(msg.Chat.ID, fmt.Sprintf("Report interval updated: this chat gets a report every %d hours.", hours))
}

// effectiveReportHours is the chat's interval override, or the global default.
func (b *Bot) effectiveReportHours(ctx context.Context, chatID int64) int {
	if setting, err := b.settings.GetOrCreate(ctx, chatID); err == nil && setting.ReportHours > 0 {
		return setting.ReportHours
	}
	return int(b.config.ReportInterval.Hours())
}

// SendDailyReports sends the agenda summary to every known user whose interval
// has elapsed. The scheduler calls this on a fixed check cadence; the per-chat
// settings decide who actually gets a message, so /interval takes effect
// without rescheduling anything.
func (b *Bot) SendDailyReports(ctx context.Context) error {
	users, err := b.users.ListAll(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	for _, user := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		setting, err := b.settings.GetOrCreate(ctx, user.TelegramID)
		if err != nil {
			logger.Error("load chat settings", err, zap.Int64("user", user.TelegramID))
			continue
		}
		if !reportDue(setting, b.config.ReportInterval, now) {
			continue
		}
		text, err := b.agenda.DailySummary(ctx, now)
		if err != nil {
			logger.Error("build summary", err, zap.Int64("user", user.TelegramID))
			continue
		}
		if err := b.sendText(user.TelegramID, text); err != nil {
			logger.Error("send summary", err, zap.Int64("user", user.TelegramID))
			continue
		}
		if err := b.settings.MarkReportSent(ctx, user.TelegramID, now); err != nil {
			logger.Error("mark report sent", err, zap.Int64("user", user.TelegramID))
		}
	}
	return nil
}

// reportDue decides whether a chat should get a report now. The chat's
// ReportHours override wins over the global interval; a chat that never got a
// report is always due. With no interval at all (fixed-time mode) every check
// tick delivers.
func reportDue(setting *model.ChatSetting, fallback time.Duration, now time.Time) bool {
	interval := fallback
	if setting.ReportHours > 0 {
		interval = time.Duration(setting.ReportHours) * time.Hour
	}
	if interval <= 0 || setting.LastReportAt.IsZero() {
		return true
	}
	return now.Sub(setting.LastReportAt) >= interval
}

func (b *Bot) handleListHabits(ctx context.Context, msg *tgbotapi.Message) error {
	if _, err := b.ensureUser(ctx, msg.From); err != nil {
		return err
	}
	return b.sendHabitList(ctx, msg.Chat.ID)
}

// sendHabitList renders the home screen: every habit with edit and delete
// buttons. The list is always fetched fresh from the backend.
func (b *Bot) sendHabitList(ctx context.Context, chatID int64) error {
	tasks, err := b.habits.List(ctx)
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Could not fetch habits: %s", escape(err.Error())))
	}

	if len(tasks) == 0 {
		return b.sendText(chatID, "No habits yet. Add one with /newhabit.")
	}

	catNames := b.habits.CategoryNames(ctx)

	var builder strings.Builder
	builder.WriteString("📋 <b>Your habits</b>\n")
	builder.WriteString("Tap ✏️ to edit or 🗑 to delete.\n\n")

	var buttons [][]tgbotapi.InlineKeyboardButton
	for _, task := range tasks {
		builder.WriteString(formatHabit(task, catNames))
		buttons = append(buttons, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("✏️ #%d · %s", task.ID, shortTitle(task.Title, 20)), fmt.Sprintf("%s%d", cbEditPrefix, task.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Delete", fmt.Sprintf("%s%d", cbDeletePrefix, task.ID)),
		))
	}

	out := tgbotapi.NewMessage(chatID, strings.TrimSpace(builder.String()))
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(buttons...)
	out.ParseMode = tgbotapi.ModeHTML
	_, err = b.api.Send(out)
	return err
}

func formatHabit(task model.Task, catNames map[int]string) string {
	var sb strings.Builder

	icon := "🟢"
	if task.Completed {
		icon = "✅"
	}
	sb.WriteString(fmt.Sprintf("%s <b>#%d</b> %s\n", icon, task.ID, escape(strings.TrimSpace(task.Title))))

	var details []string
	if task.HabitType != "" {
		details = append(details, escape(task.HabitType))
	}
	if task.ScheduleType != "" {
		details = append(details, escape(strings.ReplaceAll(task.ScheduleType, "_", " ")))
	}
	if task.CategoryID != nil {
		if name, ok := catNames[*task.CategoryID]; ok {
			details = append(details, escape(name))
		}
	}
	if len(details) > 0 {
		sb.WriteString(fmt.Sprintf("   🏷 %s\n", strings.Join(details, " · ")))
	}

	if task.StartDate != "" {
		if task.AllDay {
			sb.WriteString(fmt.Sprintf("   📅 %s · all day\n", task.StartDate))
		} else {
			ev := calendar.ProjectEvent(task)
			sb.WriteString(fmt.Sprintf("   📅 %s · %s–%s\n", task.StartDate, ev.Start.Format("15:04"), ev.End.Format("15:04")))
		}
	}

	if task.Unit != "" && task.UnitValue != nil {
		sb.WriteString(fmt.Sprintf("   🎯 %d %s\n", *task.UnitValue, escape(task.Unit)))
	}

	sb.WriteByte('\n')
	return sb.String()
}

func (b *Bot) handleNewCategory(ctx context.Context, msg *tgbotapi.Message) error {
	name := strings.TrimSpace(msg.CommandArguments())
	if name == "" {
		return b.sendText(msg.Chat.ID, "Give the category a name: /newcategory Health")
	}
	created, err := b.habits.CreateCategory(ctx, name)
	if err != nil {
		if apiErr, ok := err.(*api.APIError); ok && apiErr.Detail != "" {
			return b.sendText(msg.Chat.ID, fmt.Sprintf("❌ The backend rejected the category: %s", escape(apiErr.Detail)))
		}
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not create the category: %s", escape(err.Error())))
	}
	logger.Info("category created", zap.Int("category", created.ID), zap.Int64("user", msg.From.ID))
	return b.sendText(msg.Chat.ID, fmt.Sprintf("📂 Category <b>%s</b> created with ID %d. Use it in the habit form.", escape(created.Name), created.ID))
}

func (b *Bot) handleListCategories(ctx context.Context, msg *tgbotapi.Message) error {
	names := b.habits.CategoryNames(ctx)
	if len(names) == 0 {
		return b.sendText(msg.Chat.ID, "No categories yet. Add one with /newcategory Health.")
	}

	ids := make([]int, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var sb strings.Builder
	sb.WriteString("📂 <b>Categories</b>\n")
	for _, id := range ids {
		sb.WriteString(fmt.Sprintf("• %d · %s\n", id, escape(names[id])))
	}
	return b.sendText(msg.Chat.ID, strings.TrimSpace(sb.String()))
}

func (b *Bot) handleDeleteCommand(ctx context.Context, msg *tgbotapi.Message) error {
	args := strings.TrimSpace(msg.CommandArguments())
	if args == "" {
		return b.sendText(msg.Chat.ID, "Give me the habit ID: /delete 12")
	}
	taskID, err := strconv.Atoi(args)
	if err != nil || taskID <= 0 {
		return b.sendText(msg.Chat.ID, "The habit ID must be a number.")
	}
	return b.askDeleteConfirmation(ctx, msg.Chat.ID, msg.From, taskID)
}

func (b *Bot) askDeleteConfirmation(ctx context.Context, chatID int64, from *tgbotapi.User, taskID int) error {
	if _, err := b.ensureUser(ctx, from); err != nil {
		return err
	}

	task, err := b.habits.Get(ctx, taskID)
	if err != nil {
		if api.IsNotFound(err) {
			return b.sendText(chatID, "Habit not found.")
		}
		return b.sendText(chatID, fmt.Sprintf("Error: %s", escape(err.Error())))
	}

	sess := b.getSession(from.ID)
	sess.pendingDelete = task.ID

	text := fmt.Sprintf("Delete habit \"%s\" (#%d)?", escape(strings.TrimSpace(task.Title)), task.ID)
	markup := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(btnConfirm, fmt.Sprintf("%s%d", cbDeleteYesPrefix, task.ID)),
		tgbotapi.NewInlineKeyboardButtonData(btnCancel, cbDeleteNo),
	))
	out := tgbotapi.NewMessage(chatID, text)
	out.ParseMode = tgbotapi.ModeHTML
	out.ReplyMarkup = markup
	_, err = b.api.Send(out)
	return err
}

func (b *Bot) handleDeleteConfirmationText(ctx context.Context, msg *tgbotapi.Message, sess *session) error {
	text := strings.TrimSpace(msg.Text)
	switch {
	case isConfirmInput(text):
		taskID := sess.pendingDelete
		sess.pendingDelete = 0
		return b.deleteAndRefresh(ctx, msg.Chat.ID, taskID)
	case isCancelInput(text):
		sess.pendingDelete = 0
		return b.sendText(msg.Chat.ID, "Deletion cancelled.")
	default:
		return b.sendText(msg.Chat.ID, "Confirm or cancel the deletion first.")
	}
}

func (b *Bot) deleteAndRefresh(ctx context.Context, chatID int64, taskID int) error {
	if err := b.habits.Delete(ctx, taskID); err != nil {
		if api.IsNotFound(err) {
			return b.sendText(chatID, "Habit not found or already deleted.")
		}
		return b.sendText(chatID, fmt.Sprintf("Could not delete the habit: %s", escape(err.Error())))
	}

	logger.Info("habit deleted", zap.Int("task", taskID))
	if err := b.sendText(chatID, fmt.Sprintf("🗑 Habit #%d deleted.", taskID)); err != nil {
		return err
	}
	return b.sendHabitList(ctx, chatID)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil {
		return nil
	}

	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		logger.Error("callback ack", err)
	}

	data := cb.Data
	chatID := cb.Message.Chat.ID

	switch {
	case strings.HasPrefix(data, "cal:"):
		return b.handleCalendarCallback(ctx, cb)
	case strings.HasPrefix(data, cbEditPrefix):
		taskID, err := parseTaskID(data, cbEditPrefix)
		if err != nil {
			return nil
		}
		return b.startEditForm(ctx, cb.From, chatID, taskID)
	case strings.HasPrefix(data, cbDeletePrefix):
		taskID, err := parseTaskID(data, cbDeletePrefix)
		if err != nil {
			return nil
		}
		return b.askDeleteConfirmation(ctx, chatID, cb.From, taskID)
	case strings.HasPrefix(data, cbDeleteYesPrefix):
		taskID, err := parseTaskID(data, cbDeleteYesPrefix)
		if err != nil {
			return nil
		}
		sess := b.getSession(cb.From.ID)
		sess.pendingDelete = 0
		return b.deleteAndRefresh(ctx, chatID, taskID)
	case data == cbDeleteNo:
		sess := b.getSession(cb.From.ID)
		sess.pendingDelete = 0
		return b.sendText(chatID, "Deletion cancelled.")
	case strings.HasPrefix(data, cbEditFieldPrefix), data == cbEditSave, data == cbEditCancel, data == cbEditToggle:
		return b.handleEditCallback(ctx, cb)
	default:
		return nil
	}
}

func (b *Bot) handleMenuAlias(ctx context.Context, msg *tgbotapi.Message) (bool, error) {
	text := strings.TrimSpace(strings.ToLower(msg.Text))
	switch text {
	case strings.ToLower(menuLabelNewHabit):
		return true, b.startNewHabitForm(ctx, msg.From, msg.Chat.ID, "")
	case strings.ToLower(menuLabelHabits):
		return true, b.handleListHabits(ctx, msg)
	case strings.ToLower(menuLabelCalendar):
		return true, b.handleCalendar(ctx, msg)
	case strings.ToLower(menuLabelHelp):
		return true, b.handleHelp(msg)
	default:
		return false, nil
	}
}

func (b *Bot) ensureUser(ctx context.Context, from *tgbotapi.User) (*model.User, error) {
	return b.users.UpsertFromTelegram(ctx, from.ID, from.FirstName, from.LastName, from.UserName)
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) getSession(userID int64) *session {
	b.mu.Lock()
	defer b.mu.Unlock()
	sess, ok := b.sessions[userID]
	if !ok {
		sess = &session{}
		b.sessions[userID] = sess
	}
	return sess
}

// clearSession drops the form conversation and any pending confirmation but
// keeps the calendar window, so /calendar reopens where it was.
func (b *Bot) clearSession(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sess, ok := b.sessions[userID]; ok {
		sess.stage = stageNone
		sess.controller = nil
		sess.editField = ""
		sess.pendingDelete = 0
	}
}

func parseTaskID(data, prefix string) (int, error) {
	return strconv.Atoi(strings.TrimPrefix(data, prefix))
}

func shortTitle(title string, maxLen int) string {
	clean := strings.TrimSpace(strings.ReplaceAll(title, "\n", " "))
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func escape(s string) string {
	return html.EscapeString(s)
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelNewHabit),
			tgbotapi.NewKeyboardButton(menuLabelHabits),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelCalendar),
			tgbotapi.NewKeyboardButton(menuLabelHelp),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = false
	return kb
}

func isSkipInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == "-" || value == strings.ToLower(btnSkip) || value == "skip"
}

func isConfirmInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnConfirm) || value == "confirm" || value == "yes"
}

func isCancelInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnCancel) || value == "cancel"
}

func isCancelDialogInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnCancelDialog) || value == "cancel input"
}

func isYesInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == "yes" || value == "y" || value == strings.ToLower(btnYes)
}

func isNoInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == "no" || value == "n" || value == "-" || value == strings.ToLower(btnNo)
}
