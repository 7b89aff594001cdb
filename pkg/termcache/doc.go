// Package termcache caches taxonomy term restrictions in Redis.
//
// It wraps any restriction.Store with a read-through, TTL-bound cache for
// GetTermRestriction while passing content-to-term lookups straight
// through. Redis being down degrades to uncached reads; it never breaks
// access resolution.
//
// Usage:
//
//	var cfg termcache.Config
//	config.MustLoad(&cfg)
//
//	client, err := termcache.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//
//	cached := termcache.New(pgRestrictions, client, termcache.WithTTL(cfg.TTL))
//	resolver := restriction.NewResolver(cached)
package termcache
