// Package storage provides the key-value substrate used for the autosaved
// document and the palette collections.
//
// Every backend implements Store: Get returns ErrNotFound for absent keys and
// Set replaces the whole value. Keys are flat names; backends that map keys to
// paths or object names reject anything that looks like a path.
//
// Backends:
//
//   - memory: process-local map, nothing survives exit
//   - filesystem: one file per key under a base directory (default)
//   - sqlite: a single kv table via modernc.org/sqlite
//   - s3: one object per key under bucket/prefix via aws-sdk-go-v2
//
// Open picks the backend from config.Storage.
package storage
