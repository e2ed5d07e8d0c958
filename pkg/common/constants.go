package common

const (
	RedisKeySessionPrefix  = "session:"
	RedisKeyBriefingPrefix = "briefing:"

	ReportTypeDailyBriefing = "daily_briefing"

	// Derived-score alert thresholds.
	VulnerabilityAlertThreshold = 70
	PressureAlertThreshold      = 70
)
