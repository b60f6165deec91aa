package tableregistry_test

import (
	"flag"
	"testing"

	"github.com/entable/entable/hashtable"
	"github.com/entable/entable/hashtable/memtable"
	"github.com/entable/entable/hashtable/tableregistry"
)

func testBackend(name string, usage tableregistry.Usage) tableregistry.Backend {
	return tableregistry.Backend{
		Name:          name,
		Description:   "test backend",
		Usage:         usage,
		RegisterFlags: func(fs *flag.FlagSet) {},
		Open: func() (hashtable.HashTable, func() error, error) {
			return memtable.New(), nil, nil
		},
	}
}

func TestRegister_Validation(t *testing.T) {
	if err := tableregistry.Register(tableregistry.Backend{}); err == nil {
		t.Fatalf("expected error for empty backend")
	}
	if err := tableregistry.Register(testBackend("", tableregistry.UsageCLI)); err == nil {
		t.Fatalf("expected error for missing name")
	}
	if err := tableregistry.Register(testBackend("no-usage", 0)); err == nil {
		t.Fatalf("expected error for missing usage")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	b := testBackend("dup-test", tableregistry.UsageCLI)
	if err := tableregistry.Register(b); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := tableregistry.Register(b); err == nil {
		t.Fatalf("expected error for duplicate registration")
	}
}

func TestOpen_UsageGating(t *testing.T) {
	if err := tableregistry.Register(testBackend("cli-only-test", tableregistry.UsageCLI)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	table, closeFn, err := tableregistry.Open("cli-only-test", tableregistry.UsageCLI)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if table == nil {
		t.Fatalf("Open returned nil table")
	}
	if closeFn != nil {
		_ = closeFn()
	}

	if _, _, err := tableregistry.Open("cli-only-test", tableregistry.UsageDaemon); err == nil {
		t.Fatalf("expected usage gate to reject daemon open")
	}
	if _, _, err := tableregistry.Open("never-registered", tableregistry.UsageCLI); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestOpenWithConfig_SetsFlags(t *testing.T) {
	var captured string
	tableregistry.MustRegister(tableregistry.Backend{
		Name:        "config-test",
		Description: "test backend with an option",
		Usage:       tableregistry.UsageDaemon,
		RegisterFlags: func(fs *flag.FlagSet) {
			fs.StringVar(&captured, "config-test-opt", "", "test option")
		},
		Open: func() (hashtable.HashTable, func() error, error) {
			return memtable.New(), nil, nil
		},
	})

	_, _, err := tableregistry.OpenWithConfig("config-test", tableregistry.UsageDaemon, map[string]string{"config-test-opt": "hello"})
	if err != nil {
		t.Fatalf("OpenWithConfig failed: %v", err)
	}
	if captured != "hello" {
		t.Fatalf("option not applied: got %q", captured)
	}

	_, _, err = tableregistry.OpenWithConfig("config-test", tableregistry.UsageDaemon, map[string]string{"no-such-opt": "x"})
	if err == nil {
		t.Fatalf("expected error for unknown option")
	}
}

func TestNames_Sorted(t *testing.T) {
	tableregistry.MustRegister(testBackend("zz-test", tableregistry.UsageCLI))
	tableregistry.MustRegister(testBackend("aa-test", tableregistry.UsageCLI))

	names := tableregistry.Names(tableregistry.UsageCLI)
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}
