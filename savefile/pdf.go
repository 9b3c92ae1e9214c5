package savefile

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"echoes/game"
	"echoes/locale"
)

// ExportPDF renders the transcript as a printable document. Images are left
// out; this is a reading copy, not a restorable save.
func ExportPDF(s game.State, title string) ([]byte, error) {
	t := locale.Table(s.Language)

	pdf := gofpdf.New("P", "mm", "A4", "")
	// cp1250 covers the Slovak diacritics in the core fonts.
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1250")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, tr("Echoes of the Void - "+title), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("%s: %s", t.GoalLabel, s.GoalText)), "", "L", false)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("%s: %s", t.Status, s.Phase)), "", "L", false)
	pdf.Ln(4)

	for _, turn := range s.Transcript {
		speaker := t.NarratorLabel
		if turn.Speaker == game.SpeakerPlayer {
			speaker = t.PlayerLabel
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.MultiCell(0, 6, tr(speaker), "", "L", false)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(turn.Text), "", "L", false)
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
