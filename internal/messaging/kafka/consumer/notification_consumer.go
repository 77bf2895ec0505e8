package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"talenthub/internal/events"
	"talenthub/internal/notification"
	"talenthub/internal/recruitment"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// PostingFinder dipakai untuk mencari pemilik job posting saat fan-out
// notifikasi perubahan status kandidat.
type PostingFinder interface {
	FindJobPostingByID(ctx context.Context, organizationID, id string) (*recruitment.JobPosting, error)
}

// ConsumeGoalProgress mengubah event key_result.achieved menjadi baris
// notifikasi untuk pemilik goal. Kegagalan di sini hanya dicatat; mutasi
// yang memicu event sudah lama selesai.
func ConsumeGoalProgress(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.goal_progress")
	log.Info("goal progress consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("goal progress consumer stopped")
				return
			}
			log.Error("fetch goal progress message failed", zap.Error(err))
			continue
		}

		var event events.KeyResultAchievedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode key_result.achieved event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = notificationService.Create(ctx, event.OrganizationID, notification.CreateNotificationRequest{
			RecipientID:  event.OwnerID,
			Type:         "goal_progress",
			Title:        "Key result achieved",
			Message:      fmt.Sprintf("%q reached %d%% of its target.", event.GoalTitle, event.Percentage),
			ResourceType: "key_result",
			ResourceID:   event.KeyResultID,
		})
		if err != nil {
			log.Error("create goal progress notification failed",
				zap.String("key_result_id", event.KeyResultID),
				zap.String("owner_id", event.OwnerID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit goal progress message failed", zap.Error(err))
			continue
		}

		log.Info("goal progress notification created",
			zap.String("key_result_id", event.KeyResultID),
			zap.String("owner_id", event.OwnerID),
		)
	}
}

// ConsumeRecruitmentPipeline memberi tahu pemilik job posting setiap kali
// status kandidat berubah.
func ConsumeRecruitmentPipeline(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	postings PostingFinder,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.recruitment_pipeline")
	log.Info("recruitment pipeline consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("recruitment pipeline consumer stopped")
				return
			}
			log.Error("fetch recruitment pipeline message failed", zap.Error(err))
			continue
		}

		var event events.CandidateStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode candidate.status_changed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		posting, err := postings.FindJobPostingByID(ctx, event.OrganizationID, event.JobPostingID)
		if err != nil {
			log.Error("find job posting for notification failed",
				zap.String("job_posting_id", event.JobPostingID),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = notificationService.Create(ctx, event.OrganizationID, notification.CreateNotificationRequest{
			RecipientID:  posting.CreatedBy,
			Type:         "candidate_status",
			Title:        "Candidate status changed",
			Message:      fmt.Sprintf("%s moved from %s to %s for %q.", event.CandidateName, event.FromStatus, event.ToStatus, posting.Title),
			ResourceType: "candidate",
			ResourceID:   event.CandidateID,
		})
		if err != nil {
			log.Error("create candidate status notification failed",
				zap.String("candidate_id", event.CandidateID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit recruitment pipeline message failed", zap.Error(err))
			continue
		}

		log.Info("candidate status notification created",
			zap.String("candidate_id", event.CandidateID),
			zap.String("recipient_id", posting.CreatedBy),
		)
	}
}
