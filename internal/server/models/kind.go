// Package models defines server-side data models for submitted maintenance
// records and their archives.
package models

import (
	"fmt"

	"github.com/metco-eng/fieldvault/internal/common"
)

// Kind classifies a submission and controls which attachment categories it
// may carry and which workbook its row address points into.
type Kind string

const (
	KindPM    Kind = "PM"
	KindAsset Kind = "Asset"
	KindCM    Kind = "CM"
)

// ParseKind validates a kind coming in from the transport layer.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindPM, KindAsset, KindCM:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%q: %w", s, common.ErrorUnknownKind)
	}
}

// SourceIsPM reports whether the kind's row address resolves against the PM
// schedule workbook. CM submissions originate from asset rows.
func (k Kind) SourceIsPM() bool {
	return k == KindPM
}
