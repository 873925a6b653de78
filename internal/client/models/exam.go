package models

import (
	"net/url"
	"strconv"
	"time"
)

type Program struct {
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type Student struct {
	ID          int64  `json:"id,omitempty"`
	IndexNumber string `json:"index_number"`
	FullName    string `json:"full_name"`
	ProgramID   int64  `json:"program_id,omitempty"`
	Program     string `json:"program_name,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// Procedure status values, reported when procedures are listed for one
// student.
const (
	ProcedurePending    = "pending"
	ProcedureScored     = "scored"
	ProcedureReconciled = "reconciled"
)

type Procedure struct {
	ID         int64   `json:"id,omitempty"`
	Name       string  `json:"name"`
	ProgramID  int64   `json:"program_id,omitempty"`
	TotalScore float64 `json:"total_score"`
	Status     string  `json:"status,omitempty"`
}

// ProcedureStep is one scored line of a procedure checklist.
type ProcedureStep struct {
	ID          int64  `json:"id,omitempty"`
	Procedure   int64  `json:"procedure,omitempty"`
	Description string `json:"description"`
	StepOrder   int    `json:"step_order"`
}

// StepScore is an examiner's score for a single step.
type StepScore struct {
	Step  int64 `json:"step"`
	Score int   `json:"score"`
}

// StudentProcedure is a procedure as seen by the examiner scoring a student.
// Scores only holds the current examiner's own entries.
type StudentProcedure struct {
	ID                 int64           `json:"id"`
	StudentProcedureID int64           `json:"studentProcedureId"`
	Name               string          `json:"name"`
	ExaminerRole       string          `json:"examiner_role,omitempty"`
	Steps              []ProcedureStep `json:"steps"`
	Scores             []StepScore     `json:"scores,omitempty"`
}

// ScoreUpdate is the autosave payload for a single step.
type ScoreUpdate struct {
	Step             int64 `json:"step"`
	StudentProcedure int64 `json:"student_procedure"`
	Score            int   `json:"score"`
}

// ScoreStatus reports completion of both examiners after an autosave.
type ScoreStatus struct {
	Status            string `json:"status"`
	ExaminerAComplete bool   `json:"examiner_a_complete"`
	ExaminerBComplete bool   `json:"examiner_b_complete"`
}

type ReconciliationStep struct {
	ID              int64  `json:"id"`
	Description     string `json:"description"`
	ExaminerAScore  *int   `json:"examiner_a_score"`
	ExaminerBScore  *int   `json:"examiner_b_score"`
	ReconciledScore *int   `json:"reconciled_score"`
}

// Agreed reports whether both examiners gave the same score.
func (s ReconciliationStep) Agreed() bool {
	if s.ExaminerAScore == nil || s.ExaminerBScore == nil {
		return false
	}
	return *s.ExaminerAScore == *s.ExaminerBScore
}

// Proposed is the score to submit when nothing else was chosen: the
// reconciled score, else examiner A's, else zero.
func (s ReconciliationStep) Proposed() int {
	switch {
	case s.ReconciledScore != nil:
		return *s.ReconciledScore
	case s.ExaminerAScore != nil:
		return *s.ExaminerAScore
	}
	return 0
}

type Reconciliation struct {
	ID                  int64                `json:"id"`
	Status              string               `json:"status"`
	Student             Student              `json:"student"`
	ExaminerAName       string               `json:"examiner_a_name"`
	ExaminerBName       string               `json:"examiner_b_name"`
	IsAlreadyReconciled bool                 `json:"is_already_reconciled"`
	ReconciledByName    string               `json:"reconciled_by_name,omitempty"`
	ReconciledAt        *time.Time           `json:"reconciled_at,omitempty"`
	Steps               []ReconciliationStep `json:"steps"`
}

type ReconciledScore struct {
	StepID int64 `json:"step_id"`
	Score  int   `json:"score"`
}

type ReconciliationSubmit struct {
	StudentProcedureID int64             `json:"student_procedure_id"`
	ReconciledScores   []ReconciledScore `json:"reconciled_scores"`
}

// GradeRow is one line of the grades table.
type GradeRow struct {
	StudentID   int64   `json:"student_id"`
	IndexNumber string  `json:"index_number"`
	FullName    string  `json:"full_name"`
	ProgramName string  `json:"program_name"`
	TotalScore  float64 `json:"total_score"`
	MaxScore    float64 `json:"max_score"`
	Percentage  float64 `json:"percentage"`
	Grade       string  `json:"grade"`
}

// GradeFilter narrows the grades listing and exports. Zero values are omitted.
type GradeFilter struct {
	ProgramID int64
	Search    string
	SortBy    string
	Order     string
}

// Values encodes the filter as query parameters.
func (f GradeFilter) Values() url.Values {
	q := url.Values{}
	if f.ProgramID > 0 {
		q.Set("program_id", strconv.FormatInt(f.ProgramID, 10))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.SortBy != "" {
		q.Set("sort_by", f.SortBy)
	}
	if f.Order != "" {
		q.Set("order", f.Order)
	}
	return q
}
