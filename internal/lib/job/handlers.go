package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/deppfellow/go-posts/internal/config"
	"github.com/deppfellow/go-posts/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// fallbackActorName is used when the acting user cannot be resolved.
const fallbackActorName = "Someone"

// Mailer sends the notification emails. *email.Client implements it.
type Mailer interface {
	SendPostLikedEmail(to, ownerName, likerName, postText string) error
	SendPostCommentedEmail(to, ownerName, commenterName, postText, commentText string) error
}

// InitHandlers wires the dependencies of the task handlers.
// Without a Resend API key no mailer is set and notifications are skipped.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.recipients = NewClerkRecipientLookup()
	if cfg.Integration.ResendAPIKey == "" {
		logger.Warn().Msg("resend api key not configured, notification emails disabled")
		return
	}
	j.mailer = email.NewClient(cfg, logger)
}

// resolveOwner looks up the notification recipient. A nil recipient with a
// nil error means the task should be dropped without retry.
func (j *JobService) resolveOwner(ctx context.Context, taskType, ownerID string) (*Recipient, error) {
	owner, err := j.recipients.LookupRecipient(ctx, ownerID)
	if errors.Is(err, ErrNoEmail) {
		j.logger.Warn().
			Str("type", taskType).
			Str("owner_id", ownerID).
			Msg("post owner has no email, skipping notification")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return owner, nil
}

func (j *JobService) actorName(ctx context.Context, actorID string) string {
	actor, err := j.recipients.LookupRecipient(ctx, actorID)
	if err != nil || actor.FirstName == "" {
		return fallbackActorName
	}
	return actor.FirstName
}

func (j *JobService) handlePostLikedTask(ctx context.Context, t *asynq.Task) error {
	var p PostLikedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal post liked payload: %w: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskPostLiked).
		Str("post_id", p.PostID).
		Str("owner_id", p.OwnerID).
		Logger()

	if j.mailer == nil {
		log.Debug().Msg("mailer disabled, dropping notification")
		return nil
	}

	log.Info().Msg("Processing post liked notification")

	owner, err := j.resolveOwner(ctx, TaskPostLiked, p.OwnerID)
	if err != nil || owner == nil {
		return err
	}

	if err := j.mailer.SendPostLikedEmail(owner.Email, owner.FirstName, j.actorName(ctx, p.LikerID), p.PostText); err != nil {
		log.Error().Err(err).Msg("Failed to send post liked email")
		return err
	}

	log.Info().Msg("Successfully sent post liked email")
	return nil
}

func (j *JobService) handlePostCommentedTask(ctx context.Context, t *asynq.Task) error {
	var p PostCommentedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal post commented payload: %w: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskPostCommented).
		Str("post_id", p.PostID).
		Str("owner_id", p.OwnerID).
		Logger()

	if j.mailer == nil {
		log.Debug().Msg("mailer disabled, dropping notification")
		return nil
	}

	log.Info().Msg("Processing post commented notification")

	owner, err := j.resolveOwner(ctx, TaskPostCommented, p.OwnerID)
	if err != nil || owner == nil {
		return err
	}

	commenter := p.CommenterName
	if commenter == "" {
		commenter = j.actorName(ctx, p.CommenterID)
	}

	if err := j.mailer.SendPostCommentedEmail(owner.Email, owner.FirstName, commenter, p.PostText, p.CommentText); err != nil {
		log.Error().Err(err).Msg("Failed to send post commented email")
		return err
	}

	log.Info().Msg("Successfully sent post commented email")
	return nil
}
