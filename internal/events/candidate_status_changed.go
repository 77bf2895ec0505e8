package events

import "time"

const RecruitmentPipelineTopic = "hr.recruitment.pipeline.v1"

const EventTypeCandidateStatusChanged = "candidate.status_changed"

type CandidateStatusChangedEvent struct {
	EventType      string    `json:"event_type"`
	OrganizationID string    `json:"organization_id"`
	CandidateID    string    `json:"candidate_id"`
	CandidateName  string    `json:"candidate_name"`
	JobPostingID   string    `json:"job_posting_id"`
	FromStatus     string    `json:"from_status"`
	ToStatus       string    `json:"to_status"`
	ChangedBy      string    `json:"changed_by"`
	OccurredAt     time.Time `json:"occurred_at"`
}
