package i18n

// Message keys used by node validators.
const (
	MsgFieldRequired      = "errorMsg.fieldRequired"
	MsgInvalidValue       = "errorMsg.invalidValue"
	MsgInvalidCron        = "errorMsg.invalidCron"
	MsgInvalidTime        = "errorMsg.invalidTime"
	MsgInvalidTimezone    = "errorMsg.invalidTimezone"
	MsgStatusCodeRange    = "errorMsg.statusCodeRange"
	MsgDuplicateParameter = "errorMsg.duplicateParameter"

	FieldScheduleMode       = "nodes.triggerSchedule.mode"
	FieldScheduleFrequency  = "nodes.triggerSchedule.frequency"
	FieldScheduleCron       = "nodes.triggerSchedule.cronExpression"
	FieldScheduleWeekdays   = "nodes.triggerSchedule.weekdays"
	FieldScheduleMonthDays  = "nodes.triggerSchedule.monthlyDays"
	FieldScheduleOnMinute   = "nodes.triggerSchedule.onMinute"
	FieldScheduleTimezone   = "nodes.triggerSchedule.timezone"
	FieldWebhookMethod      = "nodes.triggerWebhook.method"
	FieldWebhookContentType = "nodes.triggerWebhook.contentType"
	FieldWebhookParamName   = "nodes.triggerWebhook.parameterName"
)

var messages = map[string]map[string]string{
	LocaleEN: {
		MsgFieldRequired:      "{0} is required",
		MsgInvalidValue:       "{0} is invalid",
		MsgInvalidCron:        "Invalid cron expression: {0}",
		MsgInvalidTime:        "Invalid time {0}, expected HH:MM AM/PM",
		MsgInvalidTimezone:    "Unknown timezone {0}",
		MsgStatusCodeRange:    "Status code must be between 200 and 399",
		MsgDuplicateParameter: "Duplicate parameter {0}",

		FieldScheduleMode:       "Schedule mode",
		FieldScheduleFrequency:  "Frequency",
		FieldScheduleCron:       "Cron expression",
		FieldScheduleWeekdays:   "Weekdays",
		FieldScheduleMonthDays:  "Days of month",
		FieldScheduleOnMinute:   "Minute",
		FieldScheduleTimezone:   "Timezone",
		FieldWebhookMethod:      "HTTP method",
		FieldWebhookContentType: "Content type",
		FieldWebhookParamName:   "Parameter name",
	},
	LocaleZH: {
		MsgFieldRequired:      "{0}不能为空",
		MsgInvalidValue:       "{0}无效",
		MsgInvalidCron:        "Cron 表达式无效：{0}",
		MsgInvalidTime:        "时间 {0} 无效，格式应为 HH:MM AM/PM",
		MsgInvalidTimezone:    "未知时区 {0}",
		MsgStatusCodeRange:    "状态码必须在 200 到 399 之间",
		MsgDuplicateParameter: "参数 {0} 重复",

		FieldScheduleMode:       "调度模式",
		FieldScheduleFrequency:  "频率",
		FieldScheduleCron:       "Cron 表达式",
		FieldScheduleWeekdays:   "星期",
		FieldScheduleMonthDays:  "日期",
		FieldScheduleOnMinute:   "分钟",
		FieldScheduleTimezone:   "时区",
		FieldWebhookMethod:      "HTTP 方法",
		FieldWebhookContentType: "内容类型",
		FieldWebhookParamName:   "参数名",
	},
}
