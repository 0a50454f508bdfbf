package storage

import "time"

// RepoRecord is a catalog entry for an indexed repository.
type RepoRecord struct {
	ID        string    // UUID
	Repo      string    // "owner/name"
	Files     int       // files processed in the last successful index run
	Chunks    int       // chunks stored in the last successful index run
	IndexedAt time.Time // completion time of the last successful index run
}
