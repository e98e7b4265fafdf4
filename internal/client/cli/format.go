package cli

import (
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// parseID reads a positive numeric id argument.
func parseID(s, usageLine string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, usage(usageLine)
	}
	return id, nil
}

// day renders an API timestamp as its date part; unparsable input is shown
// verbatim.
func day(s string) string {
	t, ok := models.ParseDate(s)
	if !ok {
		return s
	}
	return t.Format(time.DateOnly)
}

func money(s string) string {
	return models.FormatAmount(s)
}
