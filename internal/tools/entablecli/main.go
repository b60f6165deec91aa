package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/entable/entable/content"
	"github.com/entable/entable/entry"
	"github.com/entable/entable/hashtable"
	"github.com/entable/entable/hashtable/tableregistry"
	"github.com/entable/entable/meta"

	_ "github.com/entable/entable/hashtable/badgertable"
	_ "github.com/entable/entable/hashtable/filetable"
	_ "github.com/entable/entable/hashtable/grpctable"
	_ "github.com/entable/entable/hashtable/memtable"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "put-entry":
		return cmdPutEntry(args[1:], out, errOut)
	case "get-entry":
		return cmdGetEntry(args[1:], out, errOut)
	case "assert-meta":
		return cmdAssertMeta(args[1:], out, errOut)
	case "get-meta":
		return cmdGetMeta(args[1:], out, errOut)
	case "metas":
		return cmdMetas(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "entablecli: minimal hash table tool for walkthroughs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  entablecli put-entry --backend file --file-dir <dir> <file>")
	fmt.Fprintln(w, "  entablecli get-entry --backend file --file-dir <dir> --address <addr> [--out <file>]")
	fmt.Fprintln(w, "  entablecli assert-meta --backend file --file-dir <dir> --entry <addr> --attribute <a> --value <v> --source <agent>")
	fmt.Fprintln(w, "  entablecli get-meta --backend file --file-dir <dir> --entry <addr> --attribute <a>")
	fmt.Fprintln(w, "  entablecli metas --backend file --file-dir <dir> <entry-file>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Backends:")
	fmt.Fprintln(w, "  badger: --backend badger --badger-dir <dir>")
	fmt.Fprintln(w, "  grpc:   --backend grpc --grpc-target <host:port> (talks to entable-grpcd)")
	fmt.Fprintln(w, "  mem:    --backend mem (volatile, useful only for smoke tests)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - addresses are base58 multihashes (sha2-256)")
	fmt.Fprintln(w, "  - put-entry --cid additionally prints the CIDv1 interop form")
}

type commonFlags struct {
	backend      string
	listBackends bool
}

func (c *commonFlags) add(fs *flag.FlagSet) {
	fs.StringVar(&c.backend, "backend", "file", "table backend name")
	fs.BoolVar(&c.listBackends, "list-backends", false, "List supported backends and exit")
	tableregistry.RegisterFlags(fs, tableregistry.UsageCLI)
}

func (c *commonFlags) openTable() (hashtable.HashTable, func() error, error) {
	return tableregistry.Open(c.backend, tableregistry.UsageCLI)
}

func printBackends(w io.Writer) {
	for _, b := range tableregistry.List(tableregistry.UsageCLI) {
		if b.Description == "" {
			_, _ = fmt.Fprintf(w, "%s\n", b.Name)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", b.Name, b.Description)
	}
}

func cmdPutEntry(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("put-entry", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common commonFlags
	common.add(fs)

	var showCID bool
	fs.BoolVar(&showCID, "cid", false, "Also print the CIDv1 interop form of the address")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.listBackends {
		printBackends(out)
		return 0
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: entablecli put-entry [common flags] <file>")
		return 2
	}

	table, closeFn, err := common.openTable()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if closeFn != nil {
		defer closeFn()
	}

	p := fs.Arg(0)
	b, err := os.ReadFile(p)
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", filepath.Base(p), err)
		return 1
	}
	e := entry.New(string(b))
	if err := table.PutEntry(e); err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	_, _ = fmt.Fprintln(out, e.Address())
	if showCID {
		id, err := content.CID(e.Address())
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		_, _ = fmt.Fprintln(out, id.String())
	}
	return 0
}

func cmdGetEntry(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("get-entry", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common commonFlags
	common.add(fs)

	var addrStr string
	var outPath string
	fs.StringVar(&addrStr, "address", "", "Entry address to fetch")
	fs.StringVar(&outPath, "out", "", "Output file (optional; default stdout)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.listBackends {
		printBackends(out)
		return 0
	}
	if addrStr == "" {
		fmt.Fprintln(errOut, "missing --address")
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(errOut, "usage: entablecli get-entry [common flags] --address <addr> [--out <file>]")
		return 2
	}

	table, closeFn, err := common.openTable()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if closeFn != nil {
		defer closeFn()
	}

	e, err := table.Entry(content.Address(addrStr))
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if e == nil {
		fmt.Fprintln(errOut, "entry not found")
		return 1
	}

	if outPath == "" {
		_, _ = fmt.Fprintln(out, e.Value())
		return 0
	}
	if err := os.WriteFile(outPath, []byte(e.Value()), 0o600); err != nil {
		fmt.Fprintf(errOut, "write %s: %v\n", outPath, err)
		return 1
	}
	return 0
}

func cmdAssertMeta(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("assert-meta", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common commonFlags
	common.add(fs)

	var entryAddr, attribute, value, source string
	fs.StringVar(&entryAddr, "entry", "", "Subject entry address")
	fs.StringVar(&attribute, "attribute", "", "Attribute name")
	fs.StringVar(&value, "value", "", "Attribute value")
	fs.StringVar(&source, "source", "", "Asserting agent id")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.listBackends {
		printBackends(out)
		return 0
	}
	if entryAddr == "" || attribute == "" || source == "" {
		fmt.Fprintln(errOut, "usage: entablecli assert-meta [common flags] --entry <addr> --attribute <a> --value <v> --source <agent>")
		return 2
	}

	table, closeFn, err := common.openTable()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if closeFn != nil {
		defer closeFn()
	}

	m := meta.New(source, content.Address(entryAddr), attribute, value)
	if err := table.AssertMeta(m); err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	_, _ = fmt.Fprintln(out, m.Address())
	return 0
}

func cmdGetMeta(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("get-meta", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common commonFlags
	common.add(fs)

	var addrStr, entryAddr, attribute string
	fs.StringVar(&addrStr, "address", "", "Meta address to fetch")
	fs.StringVar(&entryAddr, "entry", "", "Subject entry address (with --attribute, derives the meta address)")
	fs.StringVar(&attribute, "attribute", "", "Attribute name (with --entry)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.listBackends {
		printBackends(out)
		return 0
	}
	addr := content.Address(addrStr)
	if addr == "" {
		if entryAddr == "" || attribute == "" {
			fmt.Fprintln(errOut, "usage: entablecli get-meta [common flags] --address <addr> | --entry <addr> --attribute <a>")
			return 2
		}
		addr = meta.MakeAddress(content.Address(entryAddr), attribute)
	}

	table, closeFn, err := common.openTable()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if closeFn != nil {
		defer closeFn()
	}

	m, err := table.Meta(addr)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if m == nil {
		fmt.Fprintln(errOut, "meta not found")
		return 1
	}
	c, err := m.Content()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	_, _ = fmt.Fprintln(out, string(c))
	return 0
}

func cmdMetas(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("metas", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common commonFlags
	common.add(fs)

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.listBackends {
		printBackends(out)
		return 0
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: entablecli metas [common flags] <entry-file>")
		return 2
	}

	table, closeFn, err := common.openTable()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if closeFn != nil {
		defer closeFn()
	}

	p := fs.Arg(0)
	b, err := os.ReadFile(p)
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", filepath.Base(p), err)
		return 1
	}
	metas, err := table.MetasFromEntry(entry.New(string(b)))
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	for _, m := range metas {
		c, err := m.Content()
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		_, _ = fmt.Fprintln(out, string(c))
	}
	return 0
}
