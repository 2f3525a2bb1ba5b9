package models

// Archive is one stored submission archive: the zip blob plus its filename.
// Created once, never updated.
type Archive struct {
	ID       int64
	Filename string
	Content  []byte
}

// SizeBytes returns the blob size.
func (a *Archive) SizeBytes() int64 {
	return int64(len(a.Content))
}

// ArchiveInfo is a catalog entry over stored archives, used for listing,
// search and download links. One-to-one with Archive.
type ArchiveInfo struct {
	ID       int64  `json:"id"`
	Filename string `json:"filename"`
}
