package service

import (
	"go.uber.org/zap"
)

// Sweeper drops expired entries from an in-process store
type Sweeper interface {
	Sweep() int
}

// JanitorService handles periodic cleanup of expired handoff markers
type JanitorService struct {
	queue  Sweeper
	logger *zap.Logger
}

// NewJanitorService creates a new janitor service
func NewJanitorService(queue Sweeper, logger *zap.Logger) *JanitorService {
	return &JanitorService{
		queue:  queue,
		logger: logger,
	}
}

// Cleanup removes expired handoff markers and returns how many were dropped
func (s *JanitorService) Cleanup() int {
	removed := s.queue.Sweep()
	if removed > 0 {
		s.logger.Info("Expired handoff markers removed", zap.Int("removed", removed))
	}
	return removed
}
