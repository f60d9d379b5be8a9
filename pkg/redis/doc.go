// Package redis connects to Redis and provides the shared replay guard for
// single-use magic links.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	guard := redis.NewReplayGuard(client, redis.WithKeyPrefix(cfg.KeyPrefix))
//	svc := auth.NewService(..., auth.WithReplayGuard(guard))
//
// Each consumed token ID is stored with SET NX and expires together with the
// token itself, so the keyspace never outgrows the set of live links.
// Healthcheck returns a probe suitable for readiness endpoints.
package redis
