package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/entable/entable/hashtable"
	"github.com/entable/entable/hashtable/grpctable"
	"github.com/entable/entable/hashtable/tableconfig"
	"github.com/entable/entable/hashtable/tableregistry"
	"github.com/entable/entable/internal/dlog"

	_ "github.com/entable/entable/hashtable/badgertable"
	_ "github.com/entable/entable/hashtable/filetable"
	_ "github.com/entable/entable/hashtable/memtable"
)

func main() {
	fs := flag.NewFlagSet("entable-grpcd", flag.ExitOnError)
	listen := fs.String("listen", "127.0.0.1:7977", "listen address")
	backend := fs.String("backend", "file", "table backend name")
	configPath := fs.String("config", "", "JSON backend config (overrides --backend selection)")
	logLevel := fs.String("log-level", dlog.LevelInfo, "log level (debug, info, none)")
	listBackends := fs.Bool("list-backends", false, "List supported backends and exit")

	tableregistry.RegisterFlags(fs, tableregistry.UsageDaemon)

	_ = fs.Parse(os.Args[1:])
	if *listBackends {
		for _, b := range tableregistry.List(tableregistry.UsageDaemon) {
			if b.Description == "" {
				_, _ = fmt.Fprintf(os.Stdout, "%s\n", b.Name)
				continue
			}
			_, _ = fmt.Fprintf(os.Stdout, "%s\t%s\n", b.Name, b.Description)
		}
		return
	}

	logger, err := dlog.New(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	var (
		table   hashtable.HashTable
		closeFn func() error
	)
	if *configPath != "" {
		cfg, err := tableconfig.LoadFile(*configPath)
		if err != nil {
			logger.Fatal("load config", zap.String("path", *configPath), zap.Error(err))
		}
		table, closeFn, err = cfg.Open(tableregistry.UsageDaemon, "")
		if err != nil {
			logger.Fatal("open configured backends", zap.Error(err))
		}
	} else {
		table, closeFn, err = tableregistry.Open(*backend, tableregistry.UsageDaemon)
		if err != nil {
			logger.Fatal("open backend", zap.String("backend", *backend), zap.Error(err))
		}
	}
	if closeFn != nil {
		defer func() { _ = closeFn() }()
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		logger.Fatal("listen", zap.String("address", *listen), zap.Error(err))
	}
	defer lis.Close()

	s := grpc.NewServer()
	grpctable.RegisterHashTableServer(s, &grpctable.Server{Table: table})

	logger.Info("entable-grpcd listening",
		zap.String("address", lis.Addr().String()),
		zap.String("backend", *backend),
	)
	if err := s.Serve(lis); err != nil {
		logger.Fatal("serve", zap.Error(err))
	}
}
