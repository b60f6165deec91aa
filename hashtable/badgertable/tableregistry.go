package badgertable

import (
	"flag"
	"fmt"

	"github.com/entable/entable/hashtable"
	"github.com/entable/entable/hashtable/tableregistry"
)

var (
	flagBadgerDir string
)

func init() {
	tableregistry.MustRegister(tableregistry.Backend{
		Name:        "badger",
		Description: "Badger-backed table with an indexed metadata query",
		Usage:       tableregistry.UsageCLI | tableregistry.UsageDaemon,
		RegisterFlags: func(fs *flag.FlagSet) {
			fs.StringVar(&flagBadgerDir, "badger-dir", "", "Badger store directory (for --backend=badger)")
		},
		Open: func() (hashtable.HashTable, func() error, error) {
			if flagBadgerDir == "" {
				return nil, nil, fmt.Errorf("missing --badger-dir")
			}
			t, err := New(flagBadgerDir)
			if err != nil {
				return nil, nil, err
			}
			return t, t.Close, nil
		},
	})
}
