package main

import (
	"flag"
	"fmt"
	"os"
)

// flagSet holds the parsed command line configuration. Environment variables
// (optionally from a .env file) provide defaults; flags override them.
type flagSet struct {
	fs *flag.FlagSet

	dbPath  string
	addr    string
	logPath string
}

func newFlagSet() *flagSet {
	f := &flagSet{fs: flag.NewFlagSet("garderoba", flag.ContinueOnError)}

	dbDefault := envOr("GARDEROBA_DB", "garderoba.sqlite3")
	addrDefault := envOr("GARDEROBA_ADDR", ":8080")
	logDefault := envOr("GARDEROBA_LOG", "")

	f.fs.StringVar(&f.dbPath, "db", dbDefault, "")
	f.fs.StringVar(&f.dbPath, "d", dbDefault, "")

	f.fs.StringVar(&f.addr, "addr", addrDefault, "")
	f.fs.StringVar(&f.addr, "a", addrDefault, "")

	f.fs.StringVar(&f.logPath, "log", logDefault, "")
	f.fs.StringVar(&f.logPath, "l", logDefault, "")

	f.fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: garderoba [flags]

Flags:
  -d, -db <path>          SQLite database path (default: garderoba.sqlite3, env: GARDEROBA_DB)
  -a, -addr <host:port>   listen address (default: :8080, env: GARDEROBA_ADDR)
  -l, -log <path>         log file path (default: no file, stdout/stderr only, env: GARDEROBA_LOG)
  -h, -help               show this help and exit
`)
	}

	return f
}

func (f *flagSet) parse(args []string) error {
	if err := f.fs.Parse(args); err != nil {
		return err
	}
	if f.fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", f.fs.Arg(0))
		f.fs.Usage()
		return fmt.Errorf("unexpected argument")
	}
	return nil
}

func exitCodeFor(err error) int {
	if err == flag.ErrHelp {
		return 0
	}
	return 1
}
