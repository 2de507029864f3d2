package model

type AlertNotification struct {
	Severity     string
	ResourceType string
	ResourceID   string
	ResourceName string
	Message      string
	RaisedAt     string
	Suggestion   *SuggestionNotification
}

type SuggestionNotification struct {
	WorkOrderID   string
	WorkOrderName string
	Confidence    float64
	SavedMinutes  int
}
