package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-kit/log/level"

	"github.com/staybook/booking-service/models"
)

// snapshot is the persisted form of the collection. The layout is an
// implementation detail, not a compatibility contract.
type snapshot struct {
	Bookings []models.Booking `json:"bookings"`
}

func (s *Store) loadSnapshot() error {
	if s.snapshotPath == "" {
		return nil
	}
	data, err := os.ReadFile(s.snapshotPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read snapshot: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}
	s.bookings = snap.Bookings
	level.Info(s.logger).Log("msg", "snapshot loaded", "path", s.snapshotPath, "bookings", len(s.bookings))
	return nil
}

// persistLocked writes the snapshot after a successful mutation. The caller
// holds the mutex. A write failure loses durability, not correctness, so it
// is logged and the mutation stands.
func (s *Store) persistLocked() {
	if s.snapshotPath == "" {
		return
	}
	data, err := json.MarshalIndent(snapshot{Bookings: s.bookings}, "", "  ")
	if err != nil {
		level.Error(s.logger).Log("msg", "failed to encode snapshot", "err", err)
		return
	}
	if err := os.WriteFile(s.snapshotPath, data, 0o644); err != nil {
		level.Error(s.logger).Log("msg", "failed to write snapshot", "path", s.snapshotPath, "err", err)
	}
}
