package service

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"habit-tracker/internal/calendar"
	"habit-tracker/internal/model"
)

// AgendaService builds the human-readable daily summary sent to chats. All
// data comes fresh from the backend on every call.
type AgendaService struct {
	habits *HabitService
}

func NewAgendaService(habits *HabitService) *AgendaService {
	return &AgendaService{habits: habits}
}

// DailySummary renders today's habits plus an overdue section. Habits are
// ordered by their projected start instant so all-day entries (09:00
// sentinel) mix naturally with timed ones.
func (s *AgendaService) DailySummary(ctx context.Context, now time.Time) (string, error) {
	tasks, err := s.habits.List(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch habits: %w", err)
	}
	catNames := s.habits.CategoryNames(ctx)

	today := now.Format(model.DateLayout)
	var todays []model.Task
	var overdue []model.Task
	for _, t := range tasks {
		switch {
		case t.StartDate == today:
			todays = append(todays, t)
		case t.StartDate != "" && t.StartDate < today && !t.Completed:
			overdue = append(overdue, t)
		}
	}

	sort.SliceStable(todays, func(i, j int) bool {
		return calendar.ProjectEvent(todays[i]).Start.Before(calendar.ProjectEvent(todays[j]).Start)
	})

	var builder strings.Builder
	builder.WriteString("📋 <b>Daily habit report</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", now.Format("Mon, 02 Jan 2006")))

	builder.WriteString("🔥 <b>Today</b>\n")
	if len(todays) == 0 {
		builder.WriteString("— nothing scheduled for today\n")
	} else {
		for _, t := range todays {
			builder.WriteString(formatAgendaLine(t, catNames))
		}
	}

	if len(overdue) > 0 {
		builder.WriteString(fmt.Sprintf("\n⚠️ <b>Overdue</b> — %d habit(s) past their start date\n", len(overdue)))
		for i, t := range overdue {
			if i == 3 {
				builder.WriteString(fmt.Sprintf("   … and %d more\n", len(overdue)-3))
				break
			}
			builder.WriteString(fmt.Sprintf("• %s (since %s)\n", html.EscapeString(strings.TrimSpace(t.Title)), t.StartDate))
		}
	}

	return strings.TrimSpace(builder.String()), nil
}

func formatAgendaLine(t model.Task, catNames map[int]string) string {
	var sb strings.Builder

	ev := calendar.ProjectEvent(t)
	icon := "🟢"
	if t.Completed {
		icon = "✅"
	}

	sb.WriteString(fmt.Sprintf("%s %s", icon, html.EscapeString(strings.TrimSpace(t.Title))))

	if t.CategoryID != nil {
		if name, ok := catNames[*t.CategoryID]; ok {
			sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", html.EscapeString(name)))
		}
	}

	if t.AllDay {
		sb.WriteString("\n   🕐 all day")
	} else {
		sb.WriteString(fmt.Sprintf("\n   🕐 %s–%s", ev.Start.Format("15:04"), ev.End.Format("15:04")))
	}

	if t.Unit != "" && t.UnitValue != nil {
		sb.WriteString(fmt.Sprintf(" · %d %s", *t.UnitValue, t.Unit))
	}

	sb.WriteByte('\n')
	return sb.String()
}
