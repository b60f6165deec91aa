package memtable

import (
	"flag"

	"github.com/entable/entable/hashtable"
	"github.com/entable/entable/hashtable/tableregistry"
)

func init() {
	tableregistry.MustRegister(tableregistry.Backend{
		Name:        "mem",
		Description: "In-memory table (volatile; for tests and daemons fronting ephemeral data)",
		Usage:       tableregistry.UsageCLI | tableregistry.UsageDaemon,
		RegisterFlags: func(fs *flag.FlagSet) {
			// No options: the table is empty at open and gone at exit.
		},
		Open: func() (hashtable.HashTable, func() error, error) {
			return New(), nil, nil
		},
	})
}
