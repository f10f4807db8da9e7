package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rosarz/therosarz-site/model"
)

const snapshotVersion = 1

// ErrSnapshotNotFound is returned when no usable snapshot exists for a
// platform, either because none was ever written or because the stored
// record's version is no longer understood.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRecord is the durable copy of a platform's last good
// response. LastAttempt tracks when the platform was last called, so
// the rate-limit gate survives process restarts.
type SnapshotRecord struct {
	Data        *model.LeaderboardResponse `json:"data"`
	Timestamp   time.Time                  `json:"timestamp"`
	LastAttempt time.Time                  `json:"last_attempt,omitempty"`
	Version     int                        `json:"version"`
}

type SnapshotStore interface {
	Load(ctx context.Context, platform model.Platform) (*SnapshotRecord, error)
	Save(ctx context.Context, platform model.Platform, rec *SnapshotRecord) error
}

// FileSnapshotStore keeps one JSON file per platform under a root
// directory. Writes go through a temp file and rename; concurrent
// writers resolve as last writer wins, which is acceptable at the
// write frequency the rate-limit window allows.
type FileSnapshotStore struct {
	dir string
}

func NewFileSnapshotStore(dir string) (*FileSnapshotStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating snapshot dir: %w", err)
	}
	return &FileSnapshotStore{dir: dir}, nil
}

func (s *FileSnapshotStore) path(platform model.Platform) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s-leaderboard.json", platform))
}

func (s *FileSnapshotStore) Load(_ context.Context, platform model.Platform) (*SnapshotRecord, error) {
	b, err := os.ReadFile(s.path(platform))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("error reading snapshot for %s: %w", platform, err)
	}

	var rec SnapshotRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("error parsing snapshot for %s: %w", platform, err)
	}
	if rec.Version != snapshotVersion {
		return nil, ErrSnapshotNotFound
	}
	return &rec, nil
}

func (s *FileSnapshotStore) Save(_ context.Context, platform model.Platform, rec *SnapshotRecord) error {
	rec.Version = snapshotVersion

	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("error encoding snapshot for %s: %w", platform, err)
	}

	tmp := s.path(platform) + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("error writing snapshot for %s: %w", platform, err)
	}
	if err := os.Rename(tmp, s.path(platform)); err != nil {
		return fmt.Errorf("error replacing snapshot for %s: %w", platform, err)
	}
	return nil
}

var _ SnapshotStore = (*FileSnapshotStore)(nil)
