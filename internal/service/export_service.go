package service

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/meetwise/meetwise-api/internal/models"
	appErrors "github.com/meetwise/meetwise-api/pkg/errors"
	"github.com/meetwise/meetwise-api/pkg/export"
)

// ExportFormat names a supported export encoding.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportService renders slot proposals into downloadable documents.
type ExportService struct {
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// RenderSlots produces the encoded document and its content type.
func (s *ExportService) RenderSlots(slots []models.RankedSlot, format ExportFormat) ([]byte, string, error) {
	dataset := slotsDataset(slots)

	switch format {
	case ExportFormatCSV:
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return data, "text/csv", nil
	case ExportFormatPDF:
		data, err := s.pdf.Render(dataset, "Proposed meeting slots")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return data, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func slotsDataset(slots []models.RankedSlot) export.Dataset {
	headers := []string{"Start", "End", "Score", "Available", "Total", "Available Participants", "Conflicts"}
	rows := make([]map[string]string, 0, len(slots))
	for _, slot := range slots {
		available := make([]string, len(slot.AvailableParticipantIDs))
		for i, id := range slot.AvailableParticipantIDs {
			available[i] = string(id)
		}
		conflicts := make([]string, len(slot.UnavailableParticipants))
		for i, c := range slot.UnavailableParticipants {
			conflicts[i] = fmt.Sprintf("%s (%s)", c.ParticipantID, c.Reason)
		}
		rows = append(rows, map[string]string{
			"Start":                  slot.Start.Format("2006-01-02 15:04"),
			"End":                    slot.End.Format("2006-01-02 15:04"),
			"Score":                  strconv.FormatFloat(slot.Score, 'f', 1, 64),
			"Available":              strconv.Itoa(slot.AvailableCount),
			"Total":                  strconv.Itoa(slot.TotalCount),
			"Available Participants": strings.Join(available, "; "),
			"Conflicts":              strings.Join(conflicts, "; "),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
