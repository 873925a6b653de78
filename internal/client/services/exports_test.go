package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/dmitrijs2005/practicum/internal/client/models"
	"github.com/dmitrijs2005/practicum/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSink struct {
	name, contentType string
	data              []byte
	err               error
}

func (m *memSink) Save(_ context.Context, name, contentType string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.name, m.contentType, m.data = name, contentType, data
	return "mem://" + name, nil
}

func TestExportFileName(t *testing.T) {
	tests := map[string]string{
		"csv":   "student_grades.csv",
		"excel": "student_grades.xlsx",
		"pdf":   "student_grades.pdf",
	}
	for format, want := range tests {
		got, err := ExportFileName(format)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ExportFileName("xml")
	require.ErrorIs(t, err, common.ErrInvalidExportFormat)
}

func TestExportGrades(t *testing.T) {
	f := newFakeServer(t)
	f.Get(gradesPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="server_name.csv"`)
		_, _ = w.Write([]byte("index,name\nN/1,Ama\n"))
	})
	c, _ := newTestClient(t, f)
	sink := &memSink{}

	loc, err := NewExportService(c, sink, nil).ExportGrades(context.Background(), models.GradeFilter{ProgramID: 3}, "csv")
	require.NoError(t, err)
	assert.Equal(t, "mem://student_grades.csv", loc)
	assert.Equal(t, "student_grades.csv", sink.name)
	assert.Equal(t, "text/csv", sink.contentType)
	assert.Equal(t, "index,name\nN/1,Ama\n", string(sink.data))

	q, err := url.ParseQuery(f.last(t).Query)
	require.NoError(t, err)
	assert.Equal(t, "csv", q.Get("export"))
	assert.Equal(t, "3", q.Get("program_id"))
}

func TestExportGrades_InvalidFormatSkipsRequest(t *testing.T) {
	f := newFakeServer(t)
	c, _ := newTestClient(t, f)

	_, err := NewExportService(c, &memSink{}, nil).ExportGrades(context.Background(), models.GradeFilter{}, "docx")
	require.ErrorIs(t, err, common.ErrInvalidExportFormat)
	assert.Zero(t, f.count())
}

func TestExportGrades_Failures(t *testing.T) {
	f := newFakeServer(t)
	f.reply(http.MethodGet, gradesPath, http.StatusInternalServerError, map[string]string{"detail": "export failed"})
	c, _ := newTestClient(t, f)

	_, err := NewExportService(c, &memSink{}, nil).ExportGrades(context.Background(), models.GradeFilter{}, "pdf")
	require.ErrorContains(t, err, "export failed")

	ok := newFakeServer(t)
	ok.Get(gradesPath, func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("x")) })
	c2, _ := newTestClient(t, ok)
	boom := errors.New("disk full")
	_, err = NewExportService(c2, &memSink{err: boom}, nil).ExportGrades(context.Background(), models.GradeFilter{}, "excel")
	require.ErrorIs(t, err, boom)
}
