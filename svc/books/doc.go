// Package books stores the catalog in MongoDB and serves the /api book
// routes. Inserts are checked for name collisions against existing records
// unless the caller forces the write.
package books
