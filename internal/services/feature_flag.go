package services

//go:generate mockgen -source=feature_flag.go -destination=mock_feature_flag.go -package=services

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sbilibin2017/gw-inventory/internal/logger"
	"github.com/sbilibin2017/gw-inventory/internal/models"
)

// AnonymousSubject is the flag subject used for unauthenticated callers.
const AnonymousSubject = "anonymous"

// FlagProvider answers raw flag lookups for a subject.
type FlagProvider interface {
	IsEnabled(ctx context.Context, flag, subject string) (bool, error)
}

// FeatureFlagService evaluates feature flags for an identity. Provider errors
// read as disabled. Answers are cached for a short TTL.
type FeatureFlagService struct {
	provider FlagProvider
	cache    *cache.Cache
	ttl      time.Duration
}

// NewFeatureFlagService creates a FeatureFlagService. A non-positive cacheTTL
// disables caching.
func NewFeatureFlagService(provider FlagProvider, cacheTTL time.Duration) *FeatureFlagService {
	svc := &FeatureFlagService{provider: provider, ttl: cacheTTL}
	if cacheTTL > 0 {
		svc.cache = cache.New(cacheTTL, 2*cacheTTL)
	}
	return svc
}

// IsEnabled reports whether flag is on for identity.
func (s *FeatureFlagService) IsEnabled(ctx context.Context, flag string, identity models.Identity) bool {
	subject := flagSubject(identity)
	key := flag + "|" + subject

	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			return v.(bool)
		}
	}

	enabled, err := s.provider.IsEnabled(ctx, flag, subject)
	if err != nil {
		logger.Log.Warnw("flag evaluation failed, using default", "flag", flag, "subject", subject, "error", err)
		return false
	}

	if s.cache != nil {
		s.cache.Set(key, enabled, s.ttl)
	}
	return enabled
}

func flagSubject(identity models.Identity) string {
	if id, ok := identity.(models.Identified); ok {
		return id.ID.String()
	}
	return AnonymousSubject
}
