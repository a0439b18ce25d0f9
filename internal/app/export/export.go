package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/tealeg/xlsx"

	"interview-pipeline/internal/app/repository"
)

// ToExcel writes a user's transcript listing to an xlsx file.
func ToExcel(transcripts []repository.TranscriptExport, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transcripts")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "Media ID"
	headerRow.AddCell().Value = "Media Name"
	headerRow.AddCell().Value = "Created At"
	headerRow.AddCell().Value = "Summary"
	headerRow.AddCell().Value = "Keywords"
	headerRow.AddCell().Value = "Transcript"

	for _, t := range transcripts {
		row := sheet.AddRow()
		row.AddCell().Value = t.MediaID
		row.AddCell().Value = t.MediaName
		row.AddCell().Value = t.CreatedAt.Format(time.RFC3339)
		row.AddCell().Value = t.Summary
		row.AddCell().Value = strings.Join(t.Keywords, ", ")
		row.AddCell().Value = t.Text
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("save %s: %w", outputFilePath, err)
	}
	return nil
}
