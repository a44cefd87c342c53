package usecase

import (
	"context"

	"github.com/nirjapatel2005/Tribal-Craft/internal/events"
	"github.com/sirupsen/logrus"
)

// publish emits evt and logs, rather than returns, a failure. The operation that produced the
// event has already been committed.
func publish(ctx context.Context, pub events.Publisher, log *logrus.Logger, evt events.Event) {
	if err := pub.Publish(ctx, evt); err != nil {
		log.Warnf("Use Case: Failed to publish %s event for %s: %v", evt.Type, evt.Key, err)
	}
}
