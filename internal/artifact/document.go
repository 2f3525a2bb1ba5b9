package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/metco-eng/fieldvault/internal/record"
	"github.com/metco-eng/fieldvault/internal/server/models"
	"github.com/metco-eng/fieldvault/internal/staging"
)

// Gallery layout: 3 images per row on an A4 portrait page.
const (
	imagesPerRow  = 3
	imageWidthMM  = 60.0
	imageGapMM    = 3.0
	rowAdvanceMM  = 50.0
	pageBreakAtMM = 250.0
)

// WriteDocument renders the formatted report: a centered heading with the
// primary identifier, a two-column table of all non-empty fields in source
// order, one gallery per non-empty attachment category, and a notes section
// when notes text is present. Images are read from the staging area at
// generation time; a referenced file that no longer exists is skipped
// rather than failing the document.
func WriteDocument(path string, rec *models.Record, area *staging.Area) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	heading := rec.Fields.Get("Work Order")
	if heading == "" {
		heading = rec.Fields.Get("Asset")
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Work Order: "+heading), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	for _, fld := range rec.Fields {
		if fld.Value == "" {
			continue
		}
		pdf.CellFormat(60, 7, tr(fld.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(130, 7, tr(fld.Value), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	addGallery(pdf, tr, area, "Report", rec.Attachments.Report)
	addGallery(pdf, tr, area, "Before", rec.Attachments.Before)
	addGallery(pdf, tr, area, "After", rec.Attachments.After)
	addGallery(pdf, tr, area, "CM Images", rec.Attachments.CM)
	addGallery(pdf, tr, area, "Spare Parts", rec.Attachments.SpareParts)

	if rec.NotesText != "" {
		galleryHeading(pdf, tr, record.NotesKey+":")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(rec.NotesText), "", "L", false)
		pdf.Ln(2)
	}
	addGallery(pdf, tr, area, "Notes", rec.Attachments.Notes)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write document %s: %w", path, err)
	}
	return nil
}

func galleryHeading(pdf *fpdf.Fpdf, tr func(string) string, label string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, tr(label), "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

// addGallery lays images out as a grid of 3 per row. Empty categories get
// no heading at all.
func addGallery(pdf *fpdf.Fpdf, tr func(string) string, area *staging.Area, label string, images []string) {
	if len(images) == 0 {
		return
	}

	galleryHeading(pdf, tr, label)

	for _, row := range chunkRows(images, imagesPerRow) {
		if pdf.GetY()+rowAdvanceMM > pageBreakAtMM {
			pdf.AddPage()
		}
		y := pdf.GetY()
		x := pdf.GetX()
		for _, img := range row {
			p := area.Path(img)
			if _, err := os.Stat(p); err == nil {
				pdf.ImageOptions(p, x, y, imageWidthMM, 0, false,
					fpdf.ImageOptions{ReadDpi: true}, 0, "")
			}
			x += imageWidthMM + imageGapMM
		}
		pdf.SetY(y + rowAdvanceMM)
	}
	pdf.Ln(2)
}

// chunkRows splits images into gallery rows of at most size entries.
func chunkRows(images []string, size int) [][]string {
	var rows [][]string
	for start := 0; start < len(images); start += size {
		end := start + size
		if end > len(images) {
			end = len(images)
		}
		rows = append(rows, images[start:end])
	}
	return rows
}

// Generate writes both derived files (<base>.xlsx and <base>.pdf) into the
// per-submission output directory.
func Generate(outputDir, base string, rec *models.Record, area *staging.Area) error {
	if err := WriteTabularExport(filepath.Join(outputDir, base+".xlsx"), rec.Fields); err != nil {
		return err
	}
	return WriteDocument(filepath.Join(outputDir, base+".pdf"), rec, area)
}
