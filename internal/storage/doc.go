// Package storage persists datasets as JSON files.
//
// Writes are whole-file and idempotent: the extraction loop saves the full
// dataset after every season unit, so an interrupted run resumes from the
// last completed season without partial mid-season state ever reaching
// disk.
package storage
