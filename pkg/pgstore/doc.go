// Package pgstore provides the PostgreSQL persistence layer: pgx-backed
// implementations of the membership, payment, and restriction store
// interfaces, pool construction with retry, and goose-driven schema
// migrations.
//
// Not-found conditions map to the owning packages' sentinel errors
// (membership.ErrMembershipNotFound, payment.ErrPaymentNotFound,
// restriction.ErrTermNotFound), so callers never need pgx-specific error
// handling.
//
// Usage:
//
//	var cfg pgstore.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pgstore.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := pgstore.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
//
//	members := pgstore.NewMembershipStore(pool)
//	payments := pgstore.NewPaymentStore(pool)
//	restrictions := pgstore.NewRestrictionStore(pool)
package pgstore
