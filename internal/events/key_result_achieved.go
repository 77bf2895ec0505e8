package events

import "time"

const GoalProgressTopic = "hr.goal.progress.v1"

// KeyResultAchievedEvent dipublish saat progress key result mencapai 100%.
// Konsumen mengubahnya jadi notifikasi; kegagalan di jalur itu tidak pernah
// menggagalkan mutasi asalnya.
type KeyResultAchievedEvent struct {
	EventType      string    `json:"event_type"`
	OrganizationID string    `json:"organization_id"`
	GoalID         string    `json:"goal_id"`
	KeyResultID    string    `json:"key_result_id"`
	OwnerID        string    `json:"owner_id"`
	GoalTitle      string    `json:"goal_title"`
	Percentage     int       `json:"percentage"`
	OccurredAt     time.Time `json:"occurred_at"`
}

const EventTypeKeyResultAchieved = "key_result.achieved"
