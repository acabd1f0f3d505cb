package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"coinwatch/internal/application"
	"coinwatch/internal/domain"

	"go.uber.org/zap"
)

var _ application.GoalRepo = (*GoalRepo)(nil)

// GoalRepo keeps every goal in one JSON object on disk. Set is a
// read-modify-write without locking: concurrent writers may lose updates.
type GoalRepo struct {
	path string
	log  *zap.Logger
}

func NewGoalRepo(path string, log *zap.Logger) *GoalRepo {
	if log == nil {
		log = zap.NewNop()
	}
	return &GoalRepo{path: path, log: log.With(zap.String("repo", "goals_file"), zap.String("path", path))}
}

// All never fails on a missing or malformed file; both read as no goals.
func (r *GoalRepo) All(_ context.Context) (domain.GoalMapping, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.GoalMapping{}, nil
	}
	if err != nil {
		r.log.Warn("goals.read_failed", zap.Error(err))
		return domain.GoalMapping{}, nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		r.log.Warn("goals.parse_failed", zap.Error(fmt.Errorf("%w: %v", application.ErrPersistence, err)))
		return domain.GoalMapping{}, nil
	}
	out := make(domain.GoalMapping, len(raw))
	for coin, v := range raw {
		text, ok := goalText(v)
		if !ok {
			r.log.Warn("goals.value_skipped", zap.String("coin", coin), zap.ByteString("value", v))
			continue
		}
		out[coin] = text
	}
	return out, nil
}

// goalText accepts a goal stored as a JSON string or a bare number. Numbers
// are kept exactly as written.
func goalText(v json.RawMessage) (string, bool) {
	if string(v) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String(), true
	}
	return "", false
}

func (r *GoalRepo) Get(ctx context.Context, coin string) (string, bool, error) {
	goals, err := r.All(ctx)
	if err != nil {
		return "", false, err
	}
	v, ok := goals[coin]
	return v, ok, nil
}

func (r *GoalRepo) Set(ctx context.Context, coin, price string) error {
	goals, err := r.All(ctx)
	if err != nil {
		return err
	}
	goals[coin] = price
	data, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("marshal goals: %w", err)
	}
	if err := writeAtomic(r.path, data); err != nil {
		r.log.Error("goals.write_failed", zap.Error(err))
		return fmt.Errorf("%w: %v", application.ErrPersistence, err)
	}
	r.log.Info("goals.saved", zap.String("coin", coin))
	return nil
}

// writeAtomic replaces path so readers see either the old or the new file.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
