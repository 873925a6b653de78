package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/practicum/internal/client/models"
)

const adminPath = "/exams/admin/"

// AdminService wraps the admin CRUD endpoints. Updates are partial (PATCH).
type AdminService interface {
	ListPrograms(ctx context.Context) ([]models.Program, error)
	CreateProgram(ctx context.Context, p models.Program) (*models.Program, error)
	UpdateProgram(ctx context.Context, id int64, p models.Program) (*models.Program, error)
	DeleteProgram(ctx context.Context, id int64) error

	ListStudents(ctx context.Context) ([]models.Student, error)
	CreateStudent(ctx context.Context, s models.Student) (*models.Student, error)
	UpdateStudent(ctx context.Context, id int64, s models.Student) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
	ToggleStudentActive(ctx context.Context, id int64) error

	ListExaminers(ctx context.Context) ([]models.Examiner, error)
	CreateExaminer(ctx context.Context, e models.Examiner) (*models.Examiner, error)
	DeleteExaminer(ctx context.Context, id int64) error
	ToggleExaminerActive(ctx context.Context, id int64) error

	ListProcedures(ctx context.Context) ([]models.Procedure, error)
	Procedure(ctx context.Context, id int64) (*models.Procedure, error)
	CreateProcedure(ctx context.Context, p models.Procedure) (*models.Procedure, error)
	UpdateProcedure(ctx context.Context, id int64, p models.Procedure) (*models.Procedure, error)
	DeleteProcedure(ctx context.Context, id int64) error

	ListProcedureSteps(ctx context.Context, procedureID int64) ([]models.ProcedureStep, error)
	CreateProcedureStep(ctx context.Context, s models.ProcedureStep) (*models.ProcedureStep, error)
	UpdateProcedureStep(ctx context.Context, id int64, s models.ProcedureStep) (*models.ProcedureStep, error)
	DeleteProcedureStep(ctx context.Context, id int64) error
}

type adminService struct {
	programs   resource[models.Program]
	students   resource[models.Student]
	examiners  resource[models.Examiner]
	procedures resource[models.Procedure]
	steps      resource[models.ProcedureStep]
}

func NewAdminService(api API) AdminService {
	return &adminService{
		programs:   resource[models.Program]{api: api, path: adminPath + "programs/"},
		students:   resource[models.Student]{api: api, path: adminPath + "students/"},
		examiners:  resource[models.Examiner]{api: api, path: adminPath + "examiners/"},
		procedures: resource[models.Procedure]{api: api, path: adminPath + "procedures/"},
		steps:      resource[models.ProcedureStep]{api: api, path: adminPath + "procedure-steps/"},
	}
}

func (s *adminService) ListPrograms(ctx context.Context) ([]models.Program, error) {
	return s.programs.list(ctx, nil)
}

func (s *adminService) CreateProgram(ctx context.Context, p models.Program) (*models.Program, error) {
	return s.programs.create(ctx, p)
}

func (s *adminService) UpdateProgram(ctx context.Context, id int64, p models.Program) (*models.Program, error) {
	return s.programs.update(ctx, id, p)
}

func (s *adminService) DeleteProgram(ctx context.Context, id int64) error {
	return s.programs.delete(ctx, id)
}

func (s *adminService) ListStudents(ctx context.Context) ([]models.Student, error) {
	return s.students.list(ctx, nil)
}

func (s *adminService) CreateStudent(ctx context.Context, st models.Student) (*models.Student, error) {
	return s.students.create(ctx, st)
}

func (s *adminService) UpdateStudent(ctx context.Context, id int64, st models.Student) (*models.Student, error) {
	return s.students.update(ctx, id, st)
}

func (s *adminService) DeleteStudent(ctx context.Context, id int64) error {
	return s.students.delete(ctx, id)
}

func (s *adminService) ToggleStudentActive(ctx context.Context, id int64) error {
	return s.students.action(ctx, id, "toggle_active")
}

func (s *adminService) ListExaminers(ctx context.Context) ([]models.Examiner, error) {
	return s.examiners.list(ctx, nil)
}

func (s *adminService) CreateExaminer(ctx context.Context, e models.Examiner) (*models.Examiner, error) {
	return s.examiners.create(ctx, e)
}

func (s *adminService) DeleteExaminer(ctx context.Context, id int64) error {
	return s.examiners.delete(ctx, id)
}

func (s *adminService) ToggleExaminerActive(ctx context.Context, id int64) error {
	return s.examiners.action(ctx, id, "toggle_active")
}

func (s *adminService) ListProcedures(ctx context.Context) ([]models.Procedure, error) {
	return s.procedures.list(ctx, nil)
}

func (s *adminService) Procedure(ctx context.Context, id int64) (*models.Procedure, error) {
	return s.procedures.get(ctx, id)
}

func (s *adminService) CreateProcedure(ctx context.Context, p models.Procedure) (*models.Procedure, error) {
	return s.procedures.create(ctx, p)
}

func (s *adminService) UpdateProcedure(ctx context.Context, id int64, p models.Procedure) (*models.Procedure, error) {
	return s.procedures.update(ctx, id, p)
}

func (s *adminService) DeleteProcedure(ctx context.Context, id int64) error {
	return s.procedures.delete(ctx, id)
}

func (s *adminService) ListProcedureSteps(ctx context.Context, procedureID int64) ([]models.ProcedureStep, error) {
	q := url.Values{}
	q.Set("procedure_id", strconv.FormatInt(procedureID, 10))
	return s.steps.list(ctx, q)
}

func (s *adminService) CreateProcedureStep(ctx context.Context, st models.ProcedureStep) (*models.ProcedureStep, error) {
	return s.steps.create(ctx, st)
}

func (s *adminService) UpdateProcedureStep(ctx context.Context, id int64, st models.ProcedureStep) (*models.ProcedureStep, error) {
	return s.steps.update(ctx, id, st)
}

func (s *adminService) DeleteProcedureStep(ctx context.Context, id int64) error {
	return s.steps.delete(ctx, id)
}
