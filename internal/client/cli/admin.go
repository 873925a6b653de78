package cli

import (
	"context"
	"errors"
	"fmt"
)

var errAdminUsage = errors.New("usage: admin <programs|students|examiners|procedures|steps <procedure>>")

// Admin lists one of the admin collections.
func (a *App) Admin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errAdminUsage
	}

	switch args[0] {
	case "programs":
		ps, err := a.admin.ListPrograms(ctx)
		if err != nil {
			return err
		}
		rows := make([][]any, 0, len(ps))
		for _, p := range ps {
			rows = append(rows, []any{p.ID, p.Abbreviation, p.Name})
		}
		return table(a.out, "ID\tABBR\tNAME", rows)

	case "students":
		ss, err := a.admin.ListStudents(ctx)
		if err != nil {
			return err
		}
		rows := make([][]any, 0, len(ss))
		for _, s := range ss {
			rows = append(rows, []any{s.ID, s.IndexNumber, s.FullName, s.Program, activeMark(s.IsActive)})
		}
		return table(a.out, "ID\tINDEX\tNAME\tPROGRAM\tSTATUS", rows)

	case "examiners":
		es, err := a.admin.ListExaminers(ctx)
		if err != nil {
			return err
		}
		rows := make([][]any, 0, len(es))
		for _, e := range es {
			rows = append(rows, []any{e.ID, e.Username, e.Email, activeMark(e.IsActive)})
		}
		return table(a.out, "ID\tUSERNAME\tEMAIL\tSTATUS", rows)

	case "procedures":
		ps, err := a.admin.ListProcedures(ctx)
		if err != nil {
			return err
		}
		rows := make([][]any, 0, len(ps))
		for _, p := range ps {
			rows = append(rows, []any{p.ID, p.Name, p.ProgramID, p.TotalScore})
		}
		return table(a.out, "ID\tNAME\tPROGRAM\tMAX", rows)

	case "steps":
		procedureID, err := argID(args, 1, "procedure id")
		if err != nil {
			return err
		}
		steps, err := a.admin.ListProcedureSteps(ctx, procedureID)
		if err != nil {
			return err
		}
		rows := make([][]any, 0, len(steps))
		for _, s := range steps {
			rows = append(rows, []any{s.ID, s.StepOrder, s.Description})
		}
		return table(a.out, "ID\tORDER\tDESCRIPTION", rows)
	}
	return errAdminUsage
}

// Toggle flips the active flag: toggle <student|examiner> <id>.
func (a *App) Toggle(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: toggle <student|examiner> <id>")
	}
	id, err := argID(args, 1, args[0]+" id")
	if err != nil {
		return err
	}

	switch args[0] {
	case "student":
		err = a.admin.ToggleStudentActive(ctx, id)
	case "examiner":
		err = a.admin.ToggleExaminerActive(ctx, id)
	default:
		return fmt.Errorf("cannot toggle %q", args[0])
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Toggled %s %d\n", args[0], id)
	return nil
}
