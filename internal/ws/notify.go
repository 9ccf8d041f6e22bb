package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/domain/application"
)

const (
	EventApplicationReceived      = "application_received"
	EventApplicationStatusChanged = "application_status_changed"
)

type ApplicationEvent struct {
	Type          string             `json:"type"`
	ApplicationID uuid.UUID          `json:"application_id"`
	PostingID     uuid.UUID          `json:"posting_id"`
	PostingTitle  string             `json:"posting_title"`
	CompanyID     uuid.UUID          `json:"company_id"`
	Status        application.Status `json:"status"`
	MatchScore    *int               `json:"match_score,omitempty"`
	Timestamp     string             `json:"timestamp"`
}

// Notifier broadcasts application events through the hub.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) ApplicationReceived(d application.Detail) {
	n.publish(EventApplicationReceived, d)
}

func (n *Notifier) ApplicationStatusChanged(d application.Detail) {
	n.publish(EventApplicationStatusChanged, d)
}

func (n *Notifier) publish(eventType string, d application.Detail) {
	if n == nil || n.hub == nil {
		return
	}
	evt := ApplicationEvent{
		Type:          eventType,
		ApplicationID: d.ID,
		PostingID:     d.PostingID,
		PostingTitle:  d.PostingTitle,
		CompanyID:     d.CompanyID,
		Status:        d.Status,
		MatchScore:    d.MatchScore,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
