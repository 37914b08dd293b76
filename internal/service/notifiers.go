package service

import (
	"context"
	"errors"

	"feed_player/internal/domain"
)

// Notifiers fans a notice out to every notifier in order.
type Notifiers []Notifier

func (ns Notifiers) Notify(ctx context.Context, n domain.Notice) error {
	var errs []error
	for _, notifier := range ns {
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
