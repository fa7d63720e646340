package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/laiff-festival/internal/config"
	"github.com/iliyamo/laiff-festival/internal/model"
	"github.com/iliyamo/laiff-festival/internal/pkg/logger"
	"github.com/iliyamo/laiff-festival/internal/pkg/metrics"
	"github.com/iliyamo/laiff-festival/internal/queue"
	"github.com/iliyamo/laiff-festival/internal/repository"
	"github.com/iliyamo/laiff-festival/internal/utils"
)

const recentBroadcasts = 10

// BroadcastInput is a composed message.
type BroadcastInput struct {
	Title    string
	Message  string
	Audience string
	Delivery model.Delivery
}

// BroadcastView is a sent broadcast with a relative send time.
type BroadcastView struct {
	model.Broadcast
	SentLabel string `json:"sent_label"`
}

// BroadcastService records admin broadcasts.  Delivery itself is
// simulated: the record, the notification and the broker event are the
// outcome.
type BroadcastService struct {
	store     *repository.Store
	festival  *config.Festival
	publisher queue.Publisher
	metrics   *metrics.Metrics
	clock     Clock
}

func NewBroadcastService(store *repository.Store, f *config.Festival, pub queue.Publisher,
	m *metrics.Metrics, clock Clock) *BroadcastService {
	return &BroadcastService{store: store, festival: f, publisher: pub, metrics: m, clock: clock}
}

// Audiences lists the recipient groups with their member counts.
func (s *BroadcastService) Audiences() []config.Audience {
	out := make([]config.Audience, len(s.festival.Audiences))
	copy(out, s.festival.Audiences)
	return out
}

func (s *BroadcastService) Send(ctx context.Context, in BroadcastInput) (*BroadcastView, error) {
	title := strings.TrimSpace(in.Title)
	msg := strings.TrimSpace(in.Message)
	if title == "" || msg == "" {
		return nil, fmt.Errorf("%w: title and message are required", model.ErrInvalid)
	}
	if !in.Delivery.Valid() {
		return nil, fmt.Errorf("%w: unknown delivery %q", model.ErrInvalid, in.Delivery)
	}
	aud, ok := s.festival.Audience(in.Audience)
	if !ok {
		return nil, fmt.Errorf("%w: unknown audience %q", model.ErrInvalid, in.Audience)
	}

	now := s.clock.now()
	b := &model.Broadcast{
		ID:           utils.NewID(),
		Title:        title,
		Message:      msg,
		AudienceID:   aud.ID,
		AudienceName: aud.Name,
		Delivery:     in.Delivery,
		Recipients:   aud.Count,
		SentAt:       now.Unix(),
	}
	err := s.store.InTx(ctx, func(tx *repository.Store) error {
		if err := tx.Broadcasts.Create(ctx, b); err != nil {
			return err
		}
		recordActivity(ctx, tx.Activity, "Broadcast sent",
			fmt.Sprintf("%s - %d recipients", title, aud.Count), model.ActivityBroadcast, now)
		if !in.Delivery.IncludesPush() {
			return nil
		}
		return tx.Notifications.Create(ctx, &model.Notification{
			ID:        utils.NewID(),
			Title:     title,
			Message:   msg,
			Type:      model.NotifySystem,
			CreatedAt: now.Unix(),
		})
	})
	if err != nil {
		return nil, err
	}
	s.metrics.CountBroadcast(string(in.Delivery))

	ev := queue.BroadcastSentEvent{
		BroadcastID: b.ID,
		Title:       b.Title,
		Audience:    b.AudienceName,
		Delivery:    string(b.Delivery),
		Recipients:  b.Recipients,
		SentAt:      now.UTC().Format(time.RFC3339),
	}
	if err := s.publisher.Publish(ctx, queue.TopicBroadcastSent, ev); err != nil {
		logger.Warn("publish broadcast.sent failed", zap.String("broadcast_id", b.ID), zap.Error(err))
	}
	return &BroadcastView{Broadcast: *b, SentLabel: sinceLabel(b.SentAt, now)}, nil
}

// Recent lists the latest broadcasts, newest first.
func (s *BroadcastService) Recent(ctx context.Context) ([]BroadcastView, error) {
	items, err := s.store.Broadcasts.Recent(ctx, recentBroadcasts)
	if err != nil {
		return nil, err
	}
	now := s.clock.now()
	out := make([]BroadcastView, 0, len(items))
	for _, b := range items {
		out = append(out, BroadcastView{Broadcast: b, SentLabel: sinceLabel(b.SentAt, now)})
	}
	return out, nil
}
