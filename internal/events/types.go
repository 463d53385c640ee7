package events

import "time"

// LeadCreatedV1 is emitted once per stored lead.
type LeadCreatedV1 struct {
	LeadID    string    `json:"lead_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Interest  string    `json:"interest"`
	CreatedAt time.Time `json:"created_at"`
	Source    string    `json:"source"`
}

func (LeadCreatedV1) EventType() string { return "lead.created.v1" }
