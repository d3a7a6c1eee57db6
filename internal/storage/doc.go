// Package storage provides the link registry.
//
// StorageMemory keeps every link in process memory behind a single RWMutex.
// Creation checks and click recording happen inside one critical section,
// readers only ever receive deep copies.
//
// An expired link keeps its shortcode until a new link claims it: Create treats
// expired entries as free and replaces them in place of a background sweep.
package storage
