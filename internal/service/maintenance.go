package service

import (
	"context"
	"fmt"
	"log"
)

// MaintenanceService houses bulk destructive actions surfaced through the TUI.
type MaintenanceService struct {
	Store Store
}

// ClearCompleted removes every completed task and reports how many were removed.
func (s *MaintenanceService) ClearCompleted(ctx context.Context) (int, error) {
	if s.Store == nil {
		return 0, fmt.Errorf("maintenance: store not configured")
	}
	n, err := s.Store.DeleteCompleted(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear completed: %w", err)
	}
	log.Printf("maintenance: cleared %d completed tasks", n)
	return n, nil
}
