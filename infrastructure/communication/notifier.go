package communication

import (
	"context"
	"errors"

	"axiapac.com/hrms/core"
)

// Multi sends every notification to all of its notifiers and joins their errors.
type Multi []core.Notifier

func (m Multi) Notify(ctx context.Context, n core.Notification) error {
	var errs []error
	for _, notifier := range m {
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Nop struct{}

func (Nop) Notify(context.Context, core.Notification) error { return nil }
