package trigger

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dukex/trialkit/pkg/i18n"
	"github.com/dukex/trialkit/pkg/models"
	"github.com/dukex/trialkit/pkg/nodes"
	"github.com/robfig/cron/v3"
)

const visualTimeLayout = "3:04 PM"

var (
	cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

	weekdays = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}
)

// ScheduleDefault is the schedule trigger node type.
var ScheduleDefault = nodes.NewDefault(
	models.MetaSpec{
		Sort:    2,
		Type:    models.BlockTriggerSchedule,
		IsStart: true,
	},
	models.ScheduleTriggerNodeConfig{
		Mode:      models.ScheduleModeVisual,
		Frequency: models.FrequencyDaily,
		VisualConfig: models.VisualScheduleConfig{
			Time:     "12:00 AM",
			Weekdays: []string{"sun"},
		},
		Timezone: "UTC",
	},
	models.ScheduleTriggerNodeConfig.Clone,
	checkSchedule,
)

func checkSchedule(payload models.ScheduleTriggerNodeConfig, t i18n.Translator) models.ValidationResult {
	if payload.Timezone == "" {
		return models.Invalid(t.T(i18n.MsgFieldRequired, t.T(i18n.FieldScheduleTimezone)))
	}

	if _, err := time.LoadLocation(payload.Timezone); err != nil {
		return models.Invalid(t.T(i18n.MsgInvalidTimezone, payload.Timezone))
	}

	switch payload.Mode {
	case models.ScheduleModeCron:
		if strings.TrimSpace(payload.CronExpression) == "" {
			return models.Invalid(t.T(i18n.MsgFieldRequired, t.T(i18n.FieldScheduleCron)))
		}

		if _, err := cronParser.Parse(payload.CronExpression); err != nil {
			return models.Invalid(t.T(i18n.MsgInvalidCron, payload.CronExpression))
		}

		return models.Valid()
	case models.ScheduleModeVisual:
		return checkVisualSchedule(payload, t)
	case "":
		return models.Invalid(t.T(i18n.MsgFieldRequired, t.T(i18n.FieldScheduleMode)))
	default:
		return models.Invalid(t.T(i18n.MsgInvalidValue, t.T(i18n.FieldScheduleMode)))
	}
}

func checkVisualSchedule(payload models.ScheduleTriggerNodeConfig, t i18n.Translator) models.ValidationResult {
	visual := payload.VisualConfig

	switch payload.Frequency {
	case models.FrequencyHourly:
		if visual.OnMinute < 0 || visual.OnMinute > 59 {
			return models.Invalid(t.T(i18n.MsgInvalidValue, t.T(i18n.FieldScheduleOnMinute)))
		}

		return models.Valid()
	case models.FrequencyDaily:
	case models.FrequencyWeekly:
		if len(visual.Weekdays) == 0 {
			return models.Invalid(t.T(i18n.MsgFieldRequired, t.T(i18n.FieldScheduleWeekdays)))
		}

		for _, day := range visual.Weekdays {
			if !slices.Contains(weekdays, day) {
				return models.Invalid(t.T(i18n.MsgInvalidValue, t.T(i18n.FieldScheduleWeekdays)))
			}
		}
	case models.FrequencyMonthly:
		if len(visual.MonthlyDays) == 0 {
			return models.Invalid(t.T(i18n.MsgFieldRequired, t.T(i18n.FieldScheduleMonthDays)))
		}

		for _, day := range visual.MonthlyDays {
			if day != models.LastDayOfMonth && (day < 1 || day > 31) {
				return models.Invalid(t.T(i18n.MsgInvalidValue, t.T(i18n.FieldScheduleMonthDays)))
			}
		}
	case "":
		return models.Invalid(t.T(i18n.MsgFieldRequired, t.T(i18n.FieldScheduleFrequency)))
	default:
		return models.Invalid(t.T(i18n.MsgInvalidValue, t.T(i18n.FieldScheduleFrequency)))
	}

	if _, err := time.Parse(visualTimeLayout, visual.Time); err != nil {
		return models.Invalid(t.T(i18n.MsgInvalidTime, visual.Time))
	}

	return models.Valid()
}

// CronExpression converts a schedule config to a standard 5-field cron expression.
// A last-day-of-month entry maps to 28-31; NextRuns filters the extra days out.
func CronExpression(cfg models.ScheduleTriggerNodeConfig) (string, error) {
	if cfg.Mode == models.ScheduleModeCron {
		return cfg.CronExpression, nil
	}

	visual := cfg.VisualConfig

	if cfg.Frequency == models.FrequencyHourly {
		return fmt.Sprintf("%d * * * *", visual.OnMinute), nil
	}

	at, err := time.Parse(visualTimeLayout, visual.Time)
	if err != nil {
		return "", fmt.Errorf("invalid visual time %q: %w", visual.Time, err)
	}

	switch cfg.Frequency {
	case models.FrequencyDaily:
		return fmt.Sprintf("%d %d * * *", at.Minute(), at.Hour()), nil
	case models.FrequencyWeekly:
		days := make([]string, 0, len(visual.Weekdays))
		for _, day := range visual.Weekdays {
			days = append(days, strconv.Itoa(slices.Index(weekdays, day)))
		}

		return fmt.Sprintf("%d %d * * %s", at.Minute(), at.Hour(), strings.Join(days, ",")), nil
	case models.FrequencyMonthly:
		days := make([]string, 0, len(visual.MonthlyDays))
		for _, day := range visual.MonthlyDays {
			if day == models.LastDayOfMonth {
				days = append(days, "28-31")

				continue
			}

			days = append(days, strconv.Itoa(day))
		}

		return fmt.Sprintf("%d %d %s * *", at.Minute(), at.Hour(), strings.Join(days, ",")), nil
	default:
		return "", fmt.Errorf("unsupported frequency %q", cfg.Frequency)
	}
}

// Preview resolves cfg to its cron expression and next n fire times after from.
func Preview(cfg models.ScheduleTriggerNodeConfig, n int, from time.Time) (*models.SchedulePreview, error) {
	expression, err := CronExpression(cfg)
	if err != nil {
		return nil, err
	}

	runs, err := NextRuns(cfg, n, from)
	if err != nil {
		return nil, err
	}

	return &models.SchedulePreview{Expression: expression, Timezone: cfg.Timezone, Runs: runs}, nil
}

// NextRuns returns the next n fire times of cfg after from, in the schedule's timezone.
// A non-positive n yields no runs.
func NextRuns(cfg models.ScheduleTriggerNodeConfig, n int, from time.Time) ([]time.Time, error) {
	if n <= 0 {
		return []time.Time{}, nil
	}

	expression, err := CronExpression(cfg)
	if err != nil {
		return nil, err
	}

	schedule, err := cronParser.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", expression, err)
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	hasLastDay := cfg.Mode == models.ScheduleModeVisual &&
		cfg.Frequency == models.FrequencyMonthly &&
		slices.Contains(cfg.VisualConfig.MonthlyDays, models.LastDayOfMonth)

	runs := make([]time.Time, 0, n)
	next := from.In(location)

	for len(runs) < n {
		next = schedule.Next(next)
		if next.IsZero() {
			break
		}

		if hasLastDay && next.Day() >= 28 && !isLastDay(next) && !slices.Contains(cfg.VisualConfig.MonthlyDays, next.Day()) {
			continue
		}

		runs = append(runs, next)
	}

	return runs, nil
}

func isLastDay(t time.Time) bool {
	return t.AddDate(0, 0, 1).Month() != t.Month()
}
