package models

import "time"

// PluginTriggerNodeConfig is the data of a plugin trigger node.
type PluginTriggerNodeConfig struct {
	PluginID  string         `json:"plugin_id"`
	EventName string         `json:"event_name"`
	Config    map[string]any `json:"config"`
}

// Clone returns a copy whose Config map is not shared with c.
func (c PluginTriggerNodeConfig) Clone() PluginTriggerNodeConfig {
	return PluginTriggerNodeConfig{
		PluginID:  c.PluginID,
		EventName: c.EventName,
		Config:    cloneMap(c.Config),
	}
}

// WebhookParameter declares one expected header, query or body parameter.
type WebhookParameter struct {
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Required bool   `json:"required"`
}

// WebhookTriggerNodeConfig is the data of a webhook trigger node.
type WebhookTriggerNodeConfig struct {
	Method       string             `json:"method"`
	ContentType  string             `json:"content_type"`
	Headers      []WebhookParameter `json:"headers"`
	Params       []WebhookParameter `json:"params"`
	Body         []WebhookParameter `json:"body"`
	AsyncMode    bool               `json:"async_mode"`
	StatusCode   int                `json:"status_code"`
	ResponseBody string             `json:"response_body"`
}

// Clone returns a deep copy of c.
func (c WebhookTriggerNodeConfig) Clone() WebhookTriggerNodeConfig {
	out := c
	out.Headers = append([]WebhookParameter{}, c.Headers...)
	out.Params = append([]WebhookParameter{}, c.Params...)
	out.Body = append([]WebhookParameter{}, c.Body...)

	return out
}

// ScheduleMode selects how a schedule trigger expresses its timing.
type ScheduleMode string

const (
	ScheduleModeVisual ScheduleMode = "visual"
	ScheduleModeCron   ScheduleMode = "cron"
)

// ScheduleFrequency is the repetition unit of a visual schedule.
type ScheduleFrequency string

const (
	FrequencyHourly  ScheduleFrequency = "hourly"
	FrequencyDaily   ScheduleFrequency = "daily"
	FrequencyWeekly  ScheduleFrequency = "weekly"
	FrequencyMonthly ScheduleFrequency = "monthly"
)

// LastDayOfMonth stands for the last day in VisualConfig.MonthlyDays.
const LastDayOfMonth = -1

// VisualScheduleConfig holds the picker-based schedule fields.
type VisualScheduleConfig struct {
	Time        string   `json:"time,omitempty"`
	Weekdays    []string `json:"weekdays,omitempty"`
	OnMinute    int      `json:"on_minute"`
	MonthlyDays []int    `json:"monthly_days,omitempty"`
}

// ScheduleTriggerNodeConfig is the data of a schedule trigger node.
type ScheduleTriggerNodeConfig struct {
	Mode           ScheduleMode         `json:"mode"`
	Frequency      ScheduleFrequency    `json:"frequency,omitempty"`
	CronExpression string               `json:"cron_expression,omitempty"`
	VisualConfig   VisualScheduleConfig `json:"visual_config"`
	Timezone       string               `json:"timezone"`
}

// SchedulePreview is a schedule trigger config resolved to cron form with its upcoming fire times.
type SchedulePreview struct {
	Expression string      `json:"expression"`
	Timezone   string      `json:"timezone"`
	Runs       []time.Time `json:"runs"`
}

// Clone returns a deep copy of c.
func (c ScheduleTriggerNodeConfig) Clone() ScheduleTriggerNodeConfig {
	out := c
	out.VisualConfig.Weekdays = append([]string{}, c.VisualConfig.Weekdays...)
	out.VisualConfig.MonthlyDays = append([]int{}, c.VisualConfig.MonthlyDays...)

	return out
}

func cloneMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}

	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}

		return out
	default:
		return v
	}
}

// CloneData copies a node data map so callers can overlay values without touching the source.
func CloneData(in map[string]any) map[string]any {
	if in == nil {
		return map[string]any{}
	}

	return cloneMap(in)
}
