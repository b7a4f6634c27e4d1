// Package cli implements the interactive shell around the session
// controller: prompting, command dispatch, and task-table rendering. All
// validation of business rules lives in the services layer; this package
// only parses input and renders tagged results.
package cli

import (
	"bufio"
	"io"
	"os"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/services"
)

type App struct {
	svc    *services.SessionService
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(svc *services.SessionService, logger logging.Logger) *App {
	return newApp(svc, logger, os.Stdin, os.Stdout)
}

// newApp wires explicit input/output streams; tests use it directly.
func newApp(svc *services.SessionService, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		svc:    svc,
		logger: logger,
		reader: bufio.NewReader(in),
		out:    out,
	}
}
