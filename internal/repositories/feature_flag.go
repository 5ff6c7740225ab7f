package repositories

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-inventory/internal/logger"
)

const flagsKey = "feature_flags"

// FeatureFlagRepository stores feature flags in Redis.
//
// Global values live in the hash "feature_flags" (field = flag key, value = bool).
// A flag can additionally be switched on for individual subjects through the set
// "feature_flags:<key>:subjects"; membership wins over the global value.
type FeatureFlagRepository struct {
	client *redis.Client
}

func NewFeatureFlagRepository(client *redis.Client) *FeatureFlagRepository {
	return &FeatureFlagRepository{client: client}
}

func subjectsKey(flag string) string {
	return "feature_flags:" + flag + ":subjects"
}

// IsEnabled evaluates flag for subject. Unknown flags are disabled.
func (r *FeatureFlagRepository) IsEnabled(ctx context.Context, flag, subject string) (bool, error) {
	pipe := r.client.Pipeline()
	global := pipe.HGet(ctx, flagsKey, flag)
	targeted := pipe.SIsMember(ctx, subjectsKey(flag), subject)
	_, err := pipe.Exec(ctx)
	if err != nil && !errors.Is(err, redis.Nil) {
		logger.Log.Warnw("flag lookup failed", "flag", flag, "subject", subject, "error", err)
		return false, err
	}

	if targeted.Val() {
		logger.Log.Debugw("flag evaluated", "flag", flag, "subject", subject, "result", true, "reason", "targeted")
		return true, nil
	}

	raw, err := global.Result()
	if errors.Is(err, redis.Nil) {
		logger.Log.Debugw("flag evaluated", "flag", flag, "subject", subject, "result", false, "reason", "unknown flag")
		return false, nil
	}
	if err != nil {
		return false, err
	}

	enabled, err := strconv.ParseBool(raw)
	logger.Log.Debugw("flag evaluated", "flag", flag, "subject", subject, "value", raw, "result", enabled, "error", err)
	if err != nil {
		return false, err
	}
	return enabled, nil
}

// SetFlag sets the global value of flag.
func (r *FeatureFlagRepository) SetFlag(ctx context.Context, flag string, enabled bool) error {
	err := r.client.HSet(ctx, flagsKey, flag, strconv.FormatBool(enabled)).Err()
	logger.Log.Infow("flag set", "flag", flag, "enabled", enabled, "error", err)
	return err
}

// SeedFlags sets the given defaults without overwriting flags that already exist.
func (r *FeatureFlagRepository) SeedFlags(ctx context.Context, defaults map[string]bool) error {
	if len(defaults) == 0 {
		return nil
	}
	pipe := r.client.Pipeline()
	for flag, enabled := range defaults {
		pipe.HSetNX(ctx, flagsKey, flag, strconv.FormatBool(enabled))
	}
	_, err := pipe.Exec(ctx)
	logger.Log.Infow("seeded feature flags", "count", len(defaults), "error", err)
	return err
}

// EnableFor switches flag on for one subject regardless of its global value.
func (r *FeatureFlagRepository) EnableFor(ctx context.Context, flag, subject string) error {
	err := r.client.SAdd(ctx, subjectsKey(flag), subject).Err()
	logger.Log.Infow("flag targeted", "flag", flag, "subject", subject, "targeted", true, "error", err)
	return err
}

// DisableFor removes the per-subject override of flag.
func (r *FeatureFlagRepository) DisableFor(ctx context.Context, flag, subject string) error {
	err := r.client.SRem(ctx, subjectsKey(flag), subject).Err()
	logger.Log.Infow("flag targeted", "flag", flag, "subject", subject, "targeted", false, "error", err)
	return err
}
