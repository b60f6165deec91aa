package filetable

import (
	"flag"
	"fmt"

	"github.com/entable/entable/hashtable"
	"github.com/entable/entable/hashtable/tableregistry"
)

var (
	flagFileDir string
)

func init() {
	tableregistry.MustRegister(tableregistry.Backend{
		Name:        "file",
		Description: "Filesystem table (one file per address under a root directory)",
		Usage:       tableregistry.UsageCLI | tableregistry.UsageDaemon,
		RegisterFlags: func(fs *flag.FlagSet) {
			fs.StringVar(&flagFileDir, "file-dir", "", "Root directory (for --backend=file)")
		},
		Open: func() (hashtable.HashTable, func() error, error) {
			if flagFileDir == "" {
				return nil, nil, fmt.Errorf("missing --file-dir")
			}
			t, err := New(flagFileDir)
			return t, nil, err
		},
	})
}
