package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/models"
)

// Column widths of the task table: id 10, description 30, status 15.
// Values longer than their column are truncated.
const (
	idWidth     = 10
	descWidth   = 30
	statusWidth = 15
)

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

func renderTaskTable(w io.Writer, tasks []*models.Task) {
	fmt.Fprintf(w, "%-*s %-*s %-*s\n", idWidth, "task_id", descWidth, "description", statusWidth, "status")
	fmt.Fprintln(w, strings.Repeat("-", 60))

	for _, task := range tasks {
		fmt.Fprintf(w, "%-*s %-*s %-*s\n",
			idWidth, truncate(strconv.Itoa(task.ID), idWidth),
			descWidth, truncate(task.Description, descWidth),
			statusWidth, truncate(task.Status.Label(), statusWidth),
		)
	}
}
