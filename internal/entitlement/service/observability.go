package service

import (
	"context"
	"time"

	"toonpass/internal/audit"
	"toonpass/internal/entitlement/models"
	id "toonpass/pkg/domain"
)

// report emits audit, metrics and logs for a finished grant. Re-grants of an
// existing entitlement are counted but not audited since nothing changed.
func (s *Service) report(ctx context.Context, kind models.Kind, readerID id.ReaderID, episodeID id.EpisodeID, out grantOutcome, now time.Time) {
	switch {
	case out.alreadyEntitled:
		if s.metrics != nil {
			s.metrics.IncrementGranted(string(kind), true)
		}
		s.logDebug(ctx, "reader already entitled", readerID, episodeID, kind)
		return
	case !out.granted:
		if s.metrics != nil {
			s.metrics.IncrementDenied(string(kind))
		}
		s.emit(ctx, audit.Event{
			Timestamp: now,
			ReaderID:  readerID.String(),
			EpisodeID: episodeID.String(),
			Action:    string(audit.EventGrantDeniedInsufficientFunds),
			Kind:      string(kind),
			Points:    out.price,
			Balance:   out.balance,
			Decision:  audit.DecisionDenied,
			Reason:    "insufficient_points",
		})
		if s.logger != nil {
			s.logger.InfoContext(ctx, "grant denied: insufficient points",
				"reader_id", readerID.String(),
				"episode_id", episodeID.String(),
				"kind", string(kind),
				"price", out.price,
				"balance", out.balance,
			)
		}
		return
	}

	action := audit.EventRentalGranted
	switch {
	case out.converted:
		action = audit.EventRentalConverted
	case kind == models.KindPurchase:
		action = audit.EventPurchaseGranted
	}
	if s.metrics != nil {
		s.metrics.IncrementGranted(string(kind), false)
		s.metrics.AddPointsSpent(string(kind), out.charged)
		if out.converted {
			s.metrics.IncrementConversions()
		}
	}
	s.emit(ctx, audit.Event{
		Timestamp: now,
		ReaderID:  readerID.String(),
		EpisodeID: episodeID.String(),
		Action:    string(action),
		Kind:      string(kind),
		Points:    out.charged,
		Balance:   out.balance,
		Decision:  audit.DecisionGranted,
	})
	if s.logger != nil {
		s.logger.InfoContext(ctx, "access granted",
			"reader_id", readerID.String(),
			"episode_id", episodeID.String(),
			"kind", string(kind),
			"charged", out.charged,
			"converted", out.converted,
			"balance", out.balance,
		)
	}
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event", "action", event.Action, "error", err)
	}
}

func (s *Service) logDebug(ctx context.Context, msg string, readerID id.ReaderID, episodeID id.EpisodeID, kind models.Kind) {
	if s.logger == nil {
		return
	}
	s.logger.DebugContext(ctx, msg,
		"reader_id", readerID.String(),
		"episode_id", episodeID.String(),
		"kind", string(kind),
	)
}

func (s *Service) observeLatency(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveGrantLatency(time.Since(start).Seconds())
	}
}
