package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/practicum/internal/client/models"
)

const (
	programsPath       = "/exams/programs/"
	studentsPath       = "/exams/students/"
	autosavePath       = "/exams/autosave-step-score/"
	reconciliationPath = "/exams/save-reconciliation/"
	gradesPath         = "/exams/grades/"
)

// ExamService wraps the examiner-facing endpoints.
type ExamService interface {
	Programs(ctx context.Context) ([]models.Program, error)
	ProgramStudents(ctx context.Context, programID int64) ([]models.Student, error)
	ProgramProcedures(ctx context.Context, programID int64) ([]models.Procedure, error)
	// StudentProcedures lists the program's procedures with their scoring
	// status for one student.
	StudentProcedures(ctx context.Context, programID, studentID int64) ([]models.Procedure, error)
	Student(ctx context.Context, studentID int64) (*models.Student, error)
	StudentProcedure(ctx context.Context, studentID, procedureID int64) (*models.StudentProcedure, error)
	SaveStepScore(ctx context.Context, u models.ScoreUpdate) (*models.ScoreStatus, error)
	Reconciliation(ctx context.Context, studentID, procedureID int64) (*models.Reconciliation, error)
	SaveReconciliation(ctx context.Context, s models.ReconciliationSubmit) error
	Grades(ctx context.Context, f models.GradeFilter) ([]models.GradeRow, error)
}

type examService struct {
	api      API
	programs resource[models.Program]
	students resource[models.Student]
}

func NewExamService(api API) ExamService {
	return &examService{
		api:      api,
		programs: resource[models.Program]{api: api, path: programsPath},
		students: resource[models.Student]{api: api, path: studentsPath},
	}
}

func (s *examService) Programs(ctx context.Context) ([]models.Program, error) {
	return s.programs.list(ctx, nil)
}

func (s *examService) ProgramStudents(ctx context.Context, programID int64) ([]models.Student, error) {
	return resource[models.Student]{api: s.api, path: s.programs.item(programID, "students")}.list(ctx, nil)
}

func (s *examService) ProgramProcedures(ctx context.Context, programID int64) ([]models.Procedure, error) {
	return resource[models.Procedure]{api: s.api, path: s.programs.item(programID, "procedures")}.list(ctx, nil)
}

func (s *examService) StudentProcedures(ctx context.Context, programID, studentID int64) ([]models.Procedure, error) {
	q := url.Values{"student_id": {strconv.FormatInt(studentID, 10)}}
	return resource[models.Procedure]{api: s.api, path: s.programs.item(programID, "procedures")}.list(ctx, q)
}

func (s *examService) Student(ctx context.Context, studentID int64) (*models.Student, error) {
	return s.students.get(ctx, studentID)
}

func (s *examService) StudentProcedure(ctx context.Context, studentID, procedureID int64) (*models.StudentProcedure, error) {
	var out models.StudentProcedure
	path := s.students.item(studentID, "procedures", strconv.FormatInt(procedureID, 10))
	if err := s.api.Get(ctx, path, nil, &out); err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	return &out, nil
}

func (s *examService) SaveStepScore(ctx context.Context, u models.ScoreUpdate) (*models.ScoreStatus, error) {
	var out models.ScoreStatus
	if err := s.api.Post(ctx, autosavePath, u, &out); err != nil {
		return nil, fmt.Errorf("autosave step %d: %w", u.Step, err)
	}
	return &out, nil
}

func (s *examService) Reconciliation(ctx context.Context, studentID, procedureID int64) (*models.Reconciliation, error) {
	var out models.Reconciliation
	path := s.students.item(studentID, "procedures", strconv.FormatInt(procedureID, 10), "reconciliation")
	if err := s.api.Get(ctx, path, nil, &out); err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	return &out, nil
}

func (s *examService) SaveReconciliation(ctx context.Context, sub models.ReconciliationSubmit) error {
	if err := s.api.Post(ctx, reconciliationPath, sub, nil); err != nil {
		return fmt.Errorf("save reconciliation %d: %w", sub.StudentProcedureID, err)
	}
	return nil
}

func (s *examService) Grades(ctx context.Context, f models.GradeFilter) ([]models.GradeRow, error) {
	var out []models.GradeRow
	if err := s.api.Get(ctx, gradesPath, f.Values(), &out); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return out, nil
}
