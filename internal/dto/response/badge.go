package response

import "strings"

type Tone string

const (
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
	ToneNeutral Tone = "neutral"
)

// Badge is how a status is rendered in a table cell.
type Badge struct {
	Label string `json:"label"`
	Tone  Tone   `json:"tone"`
}

// StatusBadge maps a free-form status to its badge. Blank is "N/A".
func StatusBadge(status string) Badge {
	label := strings.TrimSpace(status)
	if label == "" {
		return Badge{Label: "N/A", Tone: ToneNeutral}
	}

	switch strings.ToLower(label) {
	case "paid", "published", "active", "approved", "completed", "done", "contacted":
		return Badge{Label: label, Tone: ToneSuccess}
	case "pending", "draft", "scheduled", "new", "in progress":
		return Badge{Label: label, Tone: ToneWarning}
	case "unpaid", "overdue", "rejected", "failed", "cancelled", "canceled", "archived":
		return Badge{Label: label, Tone: ToneDanger}
	}
	return Badge{Label: label, Tone: ToneNeutral}
}
