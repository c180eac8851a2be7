package service

import "context"

// logAudit records a state-machine transition for the door audit trail.
func (s *Service) logAudit(ctx context.Context, msg string, args ...any) {
	s.logger.InfoContext(ctx, msg, append([]any{"audit", true}, args...)...)
}

func (s *Service) countScan(outcome string) {
	if s.metrics != nil {
		s.metrics.ScansTotal.WithLabelValues(outcome).Inc()
	}
}

func (s *Service) countConfirmation() {
	if s.metrics != nil {
		s.metrics.Confirmations.Inc()
	}
}

func (s *Service) countIdempotent() {
	if s.metrics != nil {
		s.metrics.IdempotentConfirms.Inc()
	}
}

func (s *Service) countDenial() {
	if s.metrics != nil {
		s.metrics.AdmissionDenials.Inc()
	}
}

func (s *Service) countAmbiguous() {
	if s.metrics != nil {
		s.metrics.AmbiguousSearches.Inc()
	}
}

func (s *Service) countNotFound() {
	if s.metrics != nil {
		s.metrics.NotFoundSearches.Inc()
	}
}

func (s *Service) countWriteError() {
	if s.metrics != nil {
		s.metrics.ConfirmWriteErrors.Inc()
	}
}
