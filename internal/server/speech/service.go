package speech

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/khmorad/Mood-Tracker/internal/logging"
)

// Synthesizer renders text as audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Store persists audio clips and issues read URLs for them.
type Store interface {
	Put(ctx context.Context, key string, audio []byte) error
	PresignGet(ctx context.Context, key string) (string, error)
}

type Service struct {
	upstream Synthesizer
	store    Store
	logger   logging.Logger

	storageKey func() string
}

func NewService(upstream Synthesizer, store Store, logger logging.Logger) *Service {
	return &Service{
		upstream:   upstream,
		store:      store,
		logger:     logger,
		storageKey: GetRandomStorageKey,
	}
}

// Synthesize renders the text, stores the clip, and returns a presigned URL
// the client can play directly. The upstream call is retried with backoff;
// provider rate limits are the common transient failure here.
func (s *Service) Synthesize(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", fmt.Errorf("nothing to synthesize")
	}

	var audio []byte
	backoff := retry.WithMaxRetries(2, retry.NewExponential(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		audio, err = s.upstream.Synthesize(ctx, text)
		if err != nil {
			s.logger.Warn(ctx, "text-to-speech attempt failed", "error", err.Error())
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("text-to-speech failed: %w", err)
	}

	key := s.storageKey()
	if err := s.store.Put(ctx, key, audio); err != nil {
		return "", fmt.Errorf("storing audio: %w", err)
	}

	url, err := s.store.PresignGet(ctx, key)
	if err != nil {
		return "", fmt.Errorf("presigning audio url: %w", err)
	}

	return url, nil
}
