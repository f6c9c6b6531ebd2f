// Package core defines the shared language of the tablesmith system.
//
// This package contains:
//   - Domain entities (Schema, Table, Column, Category)
//   - Conversation state (Session)
//   - Name matching and deep-copy helpers used by every other package
//
// The Golden Rule: pkg/core imports ONLY the stdlib and github.com/google/uuid.
// All other packages depend on core, not the reverse.
package core
