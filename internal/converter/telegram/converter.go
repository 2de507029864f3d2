package converter

import (
	"bytes"
	"embed"
	"text/template"
	"time"

	"github.com/you-humble/mraos/internal/model"
)

var (
	//go:embed templates/alert_raised.tmpl
	alertRaisedFS       embed.FS
	alertRaisedTemplate = template.Must(template.ParseFS(alertRaisedFS, "templates/alert_raised.tmpl"))
)

func BuildAlertRaised(a model.Alert) (string, error) {
	n := model.AlertNotification{
		Severity:     string(a.Severity),
		ResourceType: string(a.ResourceType),
		ResourceID:   a.ResourceID,
		ResourceName: a.ResourceName,
		Message:      a.Message,
		RaisedAt:     a.Timestamp.UTC().Format(time.DateTime),
	}
	if len(a.SuggestedActions) > 0 {
		sa := a.SuggestedActions[0]
		n.Suggestion = &model.SuggestionNotification{
			WorkOrderID:   sa.WorkOrderID,
			WorkOrderName: sa.WorkOrderName,
			Confidence:    sa.ConfidenceScore * 100,
			SavedMinutes:  sa.ExpectedIdleTimeSavedMinutes,
		}
	}

	var buf bytes.Buffer
	if err := alertRaisedTemplate.Execute(&buf, n); err != nil {
		return "", err
	}

	return buf.String(), nil
}
