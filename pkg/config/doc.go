// Package config loads typed configuration structs from the process
// environment.
//
// Parsing is delegated to github.com/caarlos0/env/v11. Before the first
// parse the package loads a `.env` file from the working directory with
// github.com/joho/godotenv; a missing file is not an error. Values already
// present in the environment are never overwritten by the file.
//
// Every configuration type is parsed at most once per process and the
// result is cached, so components can call Load for the same struct type
// from several places without re-reading the environment:
//
//	var cfg mongo.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Tests that mutate the environment between runs call Reset to drop the
// cache.
package config
