// Package service holds the storefront use cases and their error policy:
// list reads degrade to an empty result, lookups and validation failures
// are returned, and failed writes raise a user-visible notification before
// being returned.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"storefront-service/internal/notify"
	"storefront-service/internal/repository"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validationError turns validator output into ErrInvalidInput with a
// readable message for the first failing field.
func validationError(err error, messages map[string]string) error {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		first := validationErr[0]
		if msg, ok := messages[first.Field()]; ok {
			return fmt.Errorf("%w: %s", repository.ErrInvalidInput, msg)
		}
		return fmt.Errorf("%w: %s is invalid (%s)", repository.ErrInvalidInput, first.Field(), first.Tag())
	}
	return fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)
}

// reportWriteFailure notifies the shopper about a failed write. Partial
// batch failures produce one notification per rejected record.
func reportWriteFailure(ctx context.Context, n notify.Notifier, fallback string, err error) {
	log.Printf("service: %s: %v", fallback, err)

	var batch *repository.BatchError
	var backend *repository.BackendError
	switch {
	case errors.As(err, &batch):
		for _, msg := range batch.Messages {
			if msg != "" {
				notify.Error(ctx, n, msg)
			}
		}
		if len(batch.Messages) == 0 {
			notify.Error(ctx, n, fallback)
		}
	case errors.As(err, &backend) && backend.Message != "":
		notify.Error(ctx, n, backend.Message)
	default:
		notify.Error(ctx, n, fallback)
	}
}

// reportReadFailure logs a failed list read and tells the shopper.
func reportReadFailure(ctx context.Context, n notify.Notifier, message string, err error) {
	log.Printf("service: %s: %v", message, err)
	if n != nil && message != "" {
		notify.Error(ctx, n, message)
	}
}

func notifierOrDefault(n notify.Notifier) notify.Notifier {
	if n == nil {
		return notify.LogNotifier{}
	}
	return n
}
