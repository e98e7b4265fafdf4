package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/common"
)

// ListApplications prints the applications, newest first.
//
//	apps                   all of them
//	apps interview         only one status
//	apps all acme          everything matching "acme"
//	apps rejected acme     both
//
// While the API is unreachable the locally cached copy is shown and marked
// as such.
func (a *App) ListApplications(ctx context.Context, args []string) error {
	a.nav.Go(common.ApplicationsPath)

	var (
		status models.Status
		query  string
	)
	if len(args) > 0 {
		if strings.EqualFold(args[0], "all") {
			status = "all"
		} else {
			st, err := models.ParseStatus(args[0])
			if err != nil {
				return err
			}
			status = st
		}
		query = strings.Join(args[1:], " ")
	}

	listing, err := a.apps.List(ctx)
	if err != nil {
		return err
	}
	if listing.Cached {
		a.setMode(ModeOffline)
		fmt.Fprintf(a.out, "Offline copy from %s\n", listing.SyncedAt.Local().Format(time.DateTime))
	}

	items := models.Filter(listing.Items, query, status)
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No applications")
		return nil
	}

	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tCOMPANY\tPOSITION\tPLATFORM\tSTATUS\tAPPLIED")
	for _, app := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			app.ID, app.CompanyName, app.Position, app.Platform, app.Status.Label(), day(app.AppliedAt))
	}
	return tw.Flush()
}

// ShowApplication prints one application with its status history.
func (a *App) ShowApplication(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("app <id>")
	}
	id, err := parseID(args[0], "app <id>")
	if err != nil {
		return err
	}
	a.nav.Go(fmt.Sprintf("%s/%d", common.ApplicationsPath, id))

	app, cached, err := a.apps.Get(ctx, id)
	if err != nil {
		return err
	}
	if cached {
		a.setMode(ModeOffline)
		fmt.Fprintln(a.out, "Offline copy")
	}
	a.printApplication(app)
	return nil
}

func (a *App) printApplication(app *models.Application) {
	tw := newTable(a.out)
	fmt.Fprintf(tw, "ID:\t%d\n", app.ID)
	fmt.Fprintf(tw, "Company:\t%s\n", app.CompanyName)
	fmt.Fprintf(tw, "Position:\t%s\n", app.Position)
	fmt.Fprintf(tw, "Platform:\t%s\n", app.Platform)
	fmt.Fprintf(tw, "Status:\t%s\n", app.Status.Label())
	fmt.Fprintf(tw, "Applied:\t%s\n", day(app.AppliedAt))
	tw.Flush()

	if len(app.StatusHistory) == 0 {
		return
	}
	fmt.Fprintln(a.out, "History:")
	tw = newTable(a.out)
	for _, h := range app.StatusHistory {
		fmt.Fprintf(tw, "  %s\t%s -> %s\n", day(h.ChangedAt), h.OldStatus.Label(), h.NewStatus.Label())
	}
	tw.Flush()
}

// AddApplication prompts for a new application. An empty status means
// "applied", an empty date means today.
func (a *App) AddApplication(ctx context.Context, _ []string) error {
	a.nav.Go(common.ApplicationsPath + "/new")

	in, err := a.readApplication(models.Application{})
	if err != nil {
		return err
	}
	if in.AppliedAt == "" {
		in.AppliedAt = a.now().Format(time.DateOnly)
	}

	app, err := a.apps.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added application %d\n", app.ID)
	return nil
}

// EditApplication prompts for every field; an empty answer keeps the value.
func (a *App) EditApplication(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("editapp <id>")
	}
	id, err := parseID(args[0], "editapp <id>")
	if err != nil {
		return err
	}
	a.nav.Go(fmt.Sprintf("%s/%d/edit", common.ApplicationsPath, id))

	current, _, err := a.apps.Get(ctx, id)
	if err != nil {
		return err
	}
	in, err := a.readApplication(*current)
	if err != nil {
		return err
	}

	app, err := a.apps.Update(ctx, id, in)
	if err != nil {
		return err
	}
	a.printApplication(app)
	return nil
}

// readApplication asks for the fields of an application, showing current
// values of cur in brackets. Unanswered fields stay zero.
func (a *App) readApplication(cur models.Application) (models.ApplicationInput, error) {
	var in models.ApplicationInput

	fields := []struct {
		prompt string
		cur    string
		dst    *string
	}{
		{"Company", cur.CompanyName, &in.CompanyName},
		{"Position", cur.Position, &in.Position},
		{"Platform", cur.Platform, &in.Platform},
		{"Applied on (YYYY-MM-DD)", day(cur.AppliedAt), &in.AppliedAt},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, withCurrent(f.prompt, f.cur), a.out)
		if err != nil {
			return in, err
		}
		*f.dst = v
	}

	if in.AppliedAt != "" {
		if _, err := time.Parse(time.DateOnly, in.AppliedAt); err != nil {
			return in, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", in.AppliedAt)
		}
	}

	s, err := getSimpleText(a.reader, withCurrent("Status ("+statusChoices()+")", string(cur.Status)), a.out)
	if err != nil {
		return in, err
	}
	if s != "" {
		st, err := models.ParseStatus(s)
		if err != nil {
			return in, err
		}
		in.Status = st
	}
	return in, nil
}

func withCurrent(prompt, cur string) string {
	if cur == "" {
		return prompt
	}
	return fmt.Sprintf("%s [%s]", prompt, cur)
}

func statusChoices() string {
	names := make([]string, len(models.Statuses))
	for i, s := range models.Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// ChangeStatus moves an application to another stage; the API records the
// history entry.
func (a *App) ChangeStatus(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("status <id> <status>")
	}
	id, err := parseID(args[0], "status <id> <status>")
	if err != nil {
		return err
	}
	st, err := models.ParseStatus(strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	app, err := a.apps.ChangeStatus(ctx, id, st)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s: %s\n", app.CompanyName, app.Status.Label())
	return nil
}

func (a *App) DeleteApplication(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("delapp <id>")
	}
	id, err := parseID(args[0], "delapp <id>")
	if err != nil {
		return err
	}
	if err := a.apps.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted application %d\n", id)
	return nil
}

// Stats prints the weekly and monthly counts, the latest applications and,
// when the list can be read, applications per month for the last half year.
func (a *App) Stats(ctx context.Context, _ []string) error {
	a.nav.Go(common.ApplicationsPath + "/stats")

	st, err := a.apps.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "This week: %d\nThis month: %d\n", st.Weekly, st.Monthly)

	if len(st.Latest) > 0 {
		fmt.Fprintln(a.out, "Latest:")
		tw := newTable(a.out)
		for _, app := range st.Latest {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", day(app.AppliedAt), app.CompanyName, app.Status.Label())
		}
		tw.Flush()
	}

	listing, err := a.apps.List(ctx)
	if err != nil {
		return nil
	}
	fmt.Fprintln(a.out, "Per month:")
	tw := newTable(a.out)
	for _, m := range models.MonthlyCounts(listing.Items, a.now(), 6) {
		fmt.Fprintf(tw, "  %s\t%d\n", m.Month.Format("2006-01"), m.Count)
	}
	return tw.Flush()
}
