// Package model defines the core types shared across vexdb packages.
//
//   - Record: stored vector with metadata and insertion sequence
//   - SearchResult: ranked match (id, score)
//   - Stats: statistics snapshot
//   - Config: read-only database configuration
package model
