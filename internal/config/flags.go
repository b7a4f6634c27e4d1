package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-f string   path to the store file (default "data.json")
//	-t int      lock wait timeout, seconds
//
// os.Args is first filtered to only the flags handled here, so the -c/-config
// flags consumed by the JSON stage do not cause parse errors.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-f", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DataFilePath, "f", config.DataFilePath, "path to the store file")
	lockTimeout := fs.Int("t", int(config.LockTimeout.Seconds()), "lock wait timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.LockTimeout = time.Duration(*lockTimeout) * time.Second
}
