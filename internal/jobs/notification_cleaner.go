package jobs

import (
	"context"
	"time"

	"github.com/authorshaven/content/internal/store"
	"github.com/sirupsen/logrus"
)

// NotificationCleanerTask removes read notifications past their
// retention window.
type NotificationCleanerTask struct {
	store     store.Store
	retention time.Duration
	cron      string
}

func NewNotificationCleanerTask(interval string, retention time.Duration, store store.Store) *NotificationCleanerTask {
	return &NotificationCleanerTask{
		store:     store,
		retention: retention,
		cron:      interval,
	}
}

func (n *NotificationCleanerTask) Name() string {
	return "notification_cleaner"
}

func (n *NotificationCleanerTask) Schedule() string {
	return n.cron
}

func (n *NotificationCleanerTask) Run() {
	cutoff := time.Now().Add(-n.retention)

	if err := n.store.DeleteReadNotificationsBefore(context.Background(), cutoff); err != nil {
		logrus.Errorf("notification cleaner: %v", err)
	}
}
