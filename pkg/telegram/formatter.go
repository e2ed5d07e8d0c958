package telegram

import (
	"fmt"
	"strings"

	"regintel/internal/api/dto"
)

// FormatBriefing renders a briefing as a Telegram Markdown message.
func FormatBriefing(briefing *dto.Briefing) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("*Daily Briefing - %s*\n\n", briefing.Date))
	b.WriteString(briefing.ExecutiveSummary)
	b.WriteString("\n")

	if len(briefing.Opportunities) > 0 {
		b.WriteString("\n*New Opportunities*\n")
		for _, opp := range briefing.Opportunities {
			b.WriteString(fmt.Sprintf("- %s (score %d)\n", opp.Title, opp.OpportunityScore))
		}
	}

	if len(briefing.UpcomingDeadlines) > 0 {
		b.WriteString("\n*Upcoming Deadlines*\n")
		for _, deadline := range briefing.UpcomingDeadlines {
			b.WriteString(fmt.Sprintf("- %s (%s, %d days)\n", deadline.Title, deadline.Region, deadline.DaysUntil))
		}
	}

	if len(briefing.CompetitorActivities) > 0 {
		b.WriteString("\n*Competitor Activity*\n")
		for _, activity := range briefing.CompetitorActivities {
			b.WriteString(fmt.Sprintf("- %s: %s (%s)\n", activity.CompetitorName, activity.ActivityType, activity.ThreatLevel))
		}
	}

	if len(briefing.ExecutiveAlerts) > 0 {
		b.WriteString("\n*Vulnerable Executives*\n")
		for _, exec := range briefing.ExecutiveAlerts {
			b.WriteString(fmt.Sprintf("- %s, %s at %s (score %d)\n", exec.ExecutiveName, exec.Title, exec.CompanyName, exec.VulnerabilityScore))
		}
	}

	if len(briefing.ActionItems) > 0 {
		b.WriteString("\n*Action Items*\n")
		for _, item := range briefing.ActionItems {
			b.WriteString(fmt.Sprintf("- [%s] %s\n", strings.ToUpper(item.Priority), item.Title))
		}
	}

	return b.String()
}
