// Package mongo manages the MongoDB connection used by the catalog and the
// user store.
//
// Configuration is environment-driven. Connect applies the pool and timeout
// settings, retries transient failures and pings the server before returning,
// so callers receive a usable client or an error.
//
// # Usage
//
//	var cfg mongo.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	client, err := mongo.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Disconnect(context.Background())
//
//	db := client.Database(cfg.DatabaseName)
//	ready := mongo.Healthcheck(client)
//
// The TLS flag is normally derived from the deployment environment: the
// production environment always connects over TLS.
package mongo
