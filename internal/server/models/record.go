package models

import "time"

// AttachmentSet holds the staged filenames of a submission, grouped by
// category. Which groups are populated depends on the record kind: PM fills
// Before/After/Report, Asset and CM fill CM, only Asset fills SpareParts,
// Notes is always allowed.
type AttachmentSet struct {
	Before     []string `json:"before,omitempty"`
	After      []string `json:"after,omitempty"`
	Report     []string `json:"report,omitempty"`
	CM         []string `json:"cm,omitempty"`
	SpareParts []string `json:"spare_parts,omitempty"`
	Notes      []string `json:"notes,omitempty"`
}

// All returns every staged filename of the set, in the fixed category order
// used by the archive builder.
func (a *AttachmentSet) All() []string {
	var out []string
	out = append(out, a.Before...)
	out = append(out, a.After...)
	out = append(out, a.Report...)
	out = append(out, a.CM...)
	out = append(out, a.Notes...)
	out = append(out, a.SpareParts...)
	return out
}

// Record is one submitted maintenance record. It is immutable once
// persisted; the durable store owns it after the write.
type Record struct {
	ID          int64         `json:"id"`
	Kind        Kind          `json:"kind"`
	SheetName   string        `json:"sheet_name"`
	RowIndex    int           `json:"row_index"`
	Fields      Fields        `json:"fields"`
	NotesText   string        `json:"notes_text"`
	Attachments AttachmentSet `json:"attachments"`
	CreatedAt   time.Time     `json:"created_at"`
}
