package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/practicum/internal/client/exports"
	"github.com/dmitrijs2005/practicum/internal/client/models"
	"github.com/dmitrijs2005/practicum/internal/common"
	"github.com/dmitrijs2005/practicum/internal/logging"
)

const exportBaseName = "student_grades"

// exportExtensions maps the server's export formats to file extensions.
var exportExtensions = map[string]string{
	"csv":   "csv",
	"excel": "xlsx",
	"pdf":   "pdf",
}

// ExportFileName returns the file name used for a grades export, or
// common.ErrInvalidExportFormat.
func ExportFileName(format string) (string, error) {
	ext, ok := exportExtensions[format]
	if !ok {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidExportFormat, format)
	}
	return exportBaseName + "." + ext, nil
}

// ExportService downloads grade exports and hands them to a sink.
type ExportService interface {
	ExportGrades(ctx context.Context, f models.GradeFilter, format string) (string, error)
}

type exportService struct {
	api  API
	sink exports.Sink
	log  logging.Logger
}

func NewExportService(api API, sink exports.Sink, log logging.Logger) ExportService {
	if log == nil {
		log = logging.Nop()
	}
	return &exportService{api: api, sink: sink, log: log}
}

// ExportGrades fetches /exams/grades/ with export=<format> and saves the
// body as student_grades.<ext>, ignoring any server-suggested name.
func (s *exportService) ExportGrades(ctx context.Context, f models.GradeFilter, format string) (string, error) {
	name, err := ExportFileName(format)
	if err != nil {
		return "", err
	}

	q := f.Values()
	q.Set("export", format)
	blob, err := s.api.Download(ctx, gradesPath, q)
	if err != nil {
		return "", fmt.Errorf("download export: %w", err)
	}

	loc, err := s.sink.Save(ctx, name, blob.ContentType, blob.Data)
	if err != nil {
		return "", fmt.Errorf("save export: %w", err)
	}
	s.log.Info(ctx, "grades exported", "format", format, "bytes", len(blob.Data), "location", loc)
	return loc, nil
}
