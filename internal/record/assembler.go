// Package record normalizes submitted form data into the ordered field bag
// of a maintenance record and derives the archive base filename from it.
package record

import (
	"strings"
	"time"

	"github.com/metco-eng/fieldvault/internal/filex"
	"github.com/metco-eng/fieldvault/internal/server/models"
)

// FieldPrefix marks form keys that belong to the record's field bag. The
// prefix is stripped on assembly.
const FieldPrefix = "field_"

// NotesKey is the fixed domain-language key the free-text notes are filed
// under, alongside the spreadsheet-derived fields.
const NotesKey = "ملاحظات"

// Placeholders used when a filename component is missing. Malformed or
// absent fields degrade to these instead of rejecting the submission.
const (
	unknownWorkOrder = "UnknownWO"
	unknownLocation  = "UnknownLoc"
	noDescription    = "NoDesc"
)

// maxDescriptionLen caps the description component of the archive filename.
const maxDescriptionLen = 30

// FormPair is one submitted name/value pair, in submission order.
type FormPair struct {
	Key   string
	Value string
}

// AssembleFields builds the record's ordered field bag: every pair whose key
// carries the field marker is taken (marker stripped, order preserved), then
// the notes text is merged in under NotesKey.
func AssembleFields(pairs []FormPair, notesText string) models.Fields {
	fields := models.Fields{}
	for _, p := range pairs {
		if !strings.HasPrefix(p.Key, FieldPrefix) {
			continue
		}
		fields = append(fields, models.Field{
			Name:  strings.TrimPrefix(p.Key, FieldPrefix),
			Value: p.Value,
		})
	}
	fields = append(fields, models.Field{Name: NotesKey, Value: notesText})
	return fields
}

// PrimaryID resolves the record's primary identifier: work order, else
// asset, else a placeholder.
func PrimaryID(fields models.Fields) string {
	if v := fields.Get("Work Order"); v != "" {
		return v
	}
	if v := fields.Get("Asset"); v != "" {
		return v
	}
	return unknownWorkOrder
}

// BaseFilename derives the archive base name
// {primaryId}_{yyyyMMdd_HHmmss}_{location}_{description} with every
// component sanitized and the description truncated to 30 characters.
func BaseFilename(fields models.Fields, now time.Time) string {
	wo := filex.SanitizeName(PrimaryID(fields))

	loc := fields.Get("Location")
	if loc == "" {
		loc = unknownLocation
	}
	loc = filex.SanitizeName(loc)

	desc := fields.Get("Description")
	if desc == "" {
		desc = noDescription
	}
	desc = truncate(filex.SanitizeName(desc), maxDescriptionLen)

	return wo + "_" + now.Format("20060102_150405") + "_" + loc + "_" + desc
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
