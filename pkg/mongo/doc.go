// Package mongo connects to MongoDB with the v2 driver.
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	accounts, err := account.NewMongoStorage(ctx, db)
//
// Healthcheck wraps Ping for the readiness endpoint.
package mongo
