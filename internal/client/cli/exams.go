package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/practicum/internal/client/models"
	"golang.org/x/sync/errgroup"
)

func (a *App) Programs(ctx context.Context) error {
	ps, err := a.exams.Programs(ctx)
	if err != nil {
		return err
	}
	rows := make([][]any, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, []any{p.ID, p.Abbreviation, p.Name})
	}
	return table(a.out, "ID\tABBR\tNAME", rows)
}

// Students lists the students of a program: students <program>.
func (a *App) Students(ctx context.Context, args []string) error {
	programID, err := argID(args, 0, "program id")
	if err != nil {
		return err
	}
	ss, err := a.exams.ProgramStudents(ctx, programID)
	if err != nil {
		return err
	}
	rows := make([][]any, 0, len(ss))
	for _, s := range ss {
		rows = append(rows, []any{s.ID, s.IndexNumber, s.FullName, activeMark(s.IsActive)})
	}
	return table(a.out, "ID\tINDEX\tNAME\tSTATUS", rows)
}

// Procedures lists the procedures of a program: procedures <program>.
func (a *App) Procedures(ctx context.Context, args []string) error {
	programID, err := argID(args, 0, "program id")
	if err != nil {
		return err
	}
	ps, err := a.exams.ProgramProcedures(ctx, programID)
	if err != nil {
		return err
	}
	rows := make([][]any, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, []any{p.ID, p.Name, p.TotalScore})
	}
	return table(a.out, "ID\tNAME\tMAX", rows)
}

// Student shows one student with the scoring status of each procedure of
// the program: student <program> <student>.
func (a *App) Student(ctx context.Context, args []string) error {
	programID, err := argID(args, 0, "program id")
	if err != nil {
		return err
	}
	studentID, err := argID(args, 1, "student id")
	if err != nil {
		return err
	}

	var (
		st *models.Student
		ps []models.Procedure
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		st, err = a.exams.Student(gctx, studentID)
		return err
	})
	g.Go(func() error {
		var err error
		ps, err = a.exams.StudentProcedures(gctx, programID, studentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s (%s)\n", st.FullName, st.IndexNumber)
	rows := make([][]any, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, []any{p.ID, p.Name, statusLabel(p.Status)})
	}
	return table(a.out, "ID\tPROCEDURE\tSTATUS", rows)
}

func statusLabel(status string) string {
	switch status {
	case models.ProcedureScored:
		return "ready to reconcile"
	case models.ProcedureReconciled:
		return "reconciled"
	default:
		return "pending"
	}
}

// Procedure shows the checklist of one procedure for a student together with
// the ids the score command needs: procedure <student> <procedure>.
func (a *App) Procedure(ctx context.Context, args []string) error {
	studentID, err := argID(args, 0, "student id")
	if err != nil {
		return err
	}
	procedureID, err := argID(args, 1, "procedure id")
	if err != nil {
		return err
	}

	sp, err := a.exams.StudentProcedure(ctx, studentID, procedureID)
	if err != nil {
		return err
	}

	own := make(map[int64]int, len(sp.Scores))
	for _, sc := range sp.Scores {
		own[sc.Step] = sc.Score
	}

	fmt.Fprintf(a.out, "%s, student procedure %d", sp.Name, sp.StudentProcedureID)
	if sp.ExaminerRole != "" {
		fmt.Fprintf(a.out, ", examiner %s", sp.ExaminerRole)
	}
	fmt.Fprintf(a.out, "\nProgress: %d/%d steps scored\n", len(own), len(sp.Steps))

	rows := make([][]any, 0, len(sp.Steps))
	for _, st := range sp.Steps {
		score := "-"
		if v, ok := own[st.ID]; ok {
			score = strconv.Itoa(v)
		}
		rows = append(rows, []any{st.ID, st.StepOrder, st.Description, score})
	}
	if err := table(a.out, "STEP\t#\tDESCRIPTION\tSCORE", rows); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Score a step with: score <step> %d <score>\n", sp.StudentProcedureID)
	return nil
}

// gradeFilter reads "[program] [search...]".
func gradeFilter(args []string) (models.GradeFilter, error) {
	var f models.GradeFilter
	if len(args) == 0 {
		return f, nil
	}
	id, err := argID(args, 0, "program id")
	if err != nil {
		return f, err
	}
	f.ProgramID = id
	f.Search = strings.Join(args[1:], " ")
	return f, nil
}

func (a *App) Grades(ctx context.Context, args []string) error {
	f, err := gradeFilter(args)
	if err != nil {
		return err
	}
	rows, err := a.exams.Grades(ctx, f)
	if err != nil {
		return err
	}
	out := make([][]any, 0, len(rows))
	for _, g := range rows {
		out = append(out, []any{
			g.IndexNumber, g.FullName, g.ProgramName,
			fmt.Sprintf("%g/%g", g.TotalScore, g.MaxScore),
			fmt.Sprintf("%.1f%%", g.Percentage), g.Grade,
		})
	}
	return table(a.out, "INDEX\tNAME\tPROGRAM\tSCORE\tPERCENT\tGRADE", out)
}

// Export downloads grades: export <csv|excel|pdf> [program] [search...].
func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: export <csv|excel|pdf> [program]")
	}
	f, err := gradeFilter(args[1:])
	if err != nil {
		return err
	}
	loc, err := a.exporter.ExportGrades(ctx, f, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Export saved to %s\n", loc)
	return nil
}

// Score autosaves one step: score <step> <student_procedure> <score>.
func (a *App) Score(ctx context.Context, args []string) error {
	step, err := argID(args, 0, "step id")
	if err != nil {
		return err
	}
	sp, err := argID(args, 1, "student procedure id")
	if err != nil {
		return err
	}
	if len(args) < 3 {
		return errors.New("missing score")
	}
	score, err := strconv.Atoi(args[2])
	if err != nil || score < 0 {
		return fmt.Errorf("invalid score %q", args[2])
	}

	st, err := a.exams.SaveStepScore(ctx, models.ScoreUpdate{Step: step, StudentProcedure: sp, Score: score})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved. Status: %s (examiner A complete: %t, examiner B complete: %t)\n",
		st.Status, st.ExaminerAComplete, st.ExaminerBComplete)
	return nil
}

// Reconcile shows both examiners' scores and, on confirmation, submits the
// proposed final scores: reconcile <student> <procedure>.
func (a *App) Reconcile(ctx context.Context, args []string) error {
	studentID, err := argID(args, 0, "student id")
	if err != nil {
		return err
	}
	procedureID, err := argID(args, 1, "procedure id")
	if err != nil {
		return err
	}

	rec, err := a.exams.Reconciliation(ctx, studentID, procedureID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s (%s) %s\n", rec.Student.FullName, rec.Student.IndexNumber, rec.Status)
	fmt.Fprintf(a.out, "Examiner A: %s, Examiner B: %s\n", rec.ExaminerAName, rec.ExaminerBName)
	if rec.IsAlreadyReconciled {
		fmt.Fprintf(a.out, "Already reconciled by %s\n", rec.ReconciledByName)
	}

	rows := make([][]any, 0, len(rec.Steps))
	scores := make([]models.ReconciledScore, 0, len(rec.Steps))
	for i, s := range rec.Steps {
		mark := ""
		if !s.Agreed() {
			mark = "*"
		}
		rows = append(rows, []any{i + 1, s.Description, scoreText(s.ExaminerAScore), scoreText(s.ExaminerBScore), s.Proposed(), mark})
		scores = append(scores, models.ReconciledScore{StepID: s.ID, Score: s.Proposed()})
	}
	if err := table(a.out, "#\tSTEP\tA\tB\tFINAL\t", rows); err != nil {
		return err
	}

	ok, err := Confirm(a.reader, "Submit final scores?", a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.exams.SaveReconciliation(ctx, models.ReconciliationSubmit{
		StudentProcedureID: rec.ID,
		ReconciledScores:   scores,
	}); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Reconciliation saved")
	return nil
}

func scoreText(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
