package generate

import (
	"context"

	"github.com/khmorad/Mood-Tracker/internal/logging"
)

// FallbackReply is returned when the upstream model fails or produces
// nothing. The client treats it as an ordinary reply.
const FallbackReply = "I'm here to support you. How else can I help? 💙"

// Upstream produces the model completion for a prompt.
type Upstream interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Service struct {
	upstream Upstream
	logger   logging.Logger
}

func NewService(upstream Upstream, logger logging.Logger) *Service {
	return &Service{upstream: upstream, logger: logger}
}

// Generate returns the model reply for the message, or the fallback when the
// upstream fails. It never returns an error together with an empty reply; the
// endpoint contract is a 200 with some message in every case.
func (s *Service) Generate(ctx context.Context, message string) string {
	reply, err := s.upstream.Complete(ctx, message)
	if err != nil {
		s.logger.Warn(ctx, "upstream generation failed, serving fallback", "error", err.Error())
		return FallbackReply
	}
	if reply == "" {
		s.logger.Warn(ctx, "upstream returned empty reply, serving fallback")
		return FallbackReply
	}
	return reply
}
