package config

import (
	"flag"
	"os"
	"time"

	"github.com/creatorsync/creatorsync/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path of the local SQLite database
//	-b string   remote backend: dynamo, postgres or memory
//	-t string   DynamoDB table name
//	-p string   PostgreSQL DSN for the self-hosted backend
//	-i int      remote call timeout in seconds
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-b", "-t", "-p", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.LocalDBPath, "d", cfg.LocalDBPath, "path of the local database")
	fs.StringVar(&cfg.RemoteBackend, "b", cfg.RemoteBackend, "remote backend (dynamo, postgres, memory)")
	fs.StringVar(&cfg.DynamoTable, "t", cfg.DynamoTable, "DynamoDB table name")
	fs.StringVar(&cfg.DatabaseDSN, "p", cfg.DatabaseDSN, "PostgreSQL DSN")
	remoteTimeout := fs.Int("i", int(cfg.RemoteTimeout.Seconds()), "remote call timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RemoteTimeout = time.Duration(*remoteTimeout) * time.Second
}
