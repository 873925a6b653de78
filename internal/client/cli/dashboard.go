package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/practicum/internal/client/models"
	"golang.org/x/sync/errgroup"
)

const dashboardFanOut = 4

type programSummary struct {
	program    models.Program
	students   int
	procedures int
}

// Dashboard loads programs and grades concurrently, then the per-program
// counts with bounded fan-out. All requests share the client, so an expired
// token is refreshed once for the whole batch.
func (a *App) Dashboard(ctx context.Context) error {
	var (
		programs []models.Program
		grades   []models.GradeRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		programs, err = a.exams.Programs(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		grades, err = a.exams.Grades(gctx, models.GradeFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	summaries := make([]programSummary, len(programs))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(dashboardFanOut)
	for i, p := range programs {
		summaries[i].program = p
		g.Go(func() error {
			ss, err := a.exams.ProgramStudents(gctx, p.ID)
			if err != nil {
				return err
			}
			summaries[i].students = len(ss)
			return nil
		})
		g.Go(func() error {
			ps, err := a.exams.ProgramProcedures(gctx, p.ID)
			if err != nil {
				return err
			}
			summaries[i].procedures = len(ps)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	rows := make([][]any, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []any{s.program.Abbreviation, s.program.Name, s.students, s.procedures})
	}
	if err := table(a.out, "ABBR\tPROGRAM\tSTUDENTS\tPROCEDURES", rows); err != nil {
		return err
	}

	var sum float64
	for _, r := range grades {
		sum += r.Percentage
	}
	if len(grades) > 0 {
		fmt.Fprintf(a.out, "Graded students: %d, average %.1f%%\n", len(grades), sum/float64(len(grades)))
	} else {
		fmt.Fprintln(a.out, "No grades yet")
	}
	return nil
}
