package service

import (
	"context"

	"github.com/iliyamo/laiff-festival/internal/model"
	"github.com/iliyamo/laiff-festival/internal/repository"
)

type NotificationView struct {
	model.Notification
	TimeLabel string `json:"time_label"`
}

type NotificationList struct {
	Items  []NotificationView `json:"items"`
	Unread int                `json:"unread"`
}

// NotificationService backs the consumer notification center.
type NotificationService struct {
	repo  *repository.NotificationRepo
	clock Clock
}

func NewNotificationService(repo *repository.NotificationRepo, clock Clock) *NotificationService {
	return &NotificationService{repo: repo, clock: clock}
}

func (s *NotificationService) List(ctx context.Context) (*NotificationList, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.now()
	out := &NotificationList{Items: make([]NotificationView, 0, len(items))}
	for _, n := range items {
		if !n.Read {
			out.Unread++
		}
		out.Items = append(out.Items, NotificationView{Notification: n, TimeLabel: sinceLabel(n.CreatedAt, now)})
	}
	return out, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}

// MarkAllRead returns how many notifications changed.
func (s *NotificationService) MarkAllRead(ctx context.Context) (int64, error) {
	return s.repo.MarkAllRead(ctx)
}

func (s *NotificationService) UnreadCount(ctx context.Context) (int, error) {
	return s.repo.UnreadCount(ctx)
}
