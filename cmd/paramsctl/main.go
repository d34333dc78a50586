// Command paramsctl reads and writes onroad params from a shell, and backs
// them up to or restores them from S3.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"onroad-options/pkg/config"
	"onroad-options/pkg/params"
	"onroad-options/pkg/paramsync"
)

const usage = `usage: paramsctl [flags] <command> [args]

commands:
  get KEY              print the value of KEY
  put KEY VALUE        store VALUE under KEY
  putbool KEY BOOL     store KEY as "1" or "0"
  list                 print every registered key and its value
  backup               upload params to the configured S3 bucket
  restore              download params from the configured S3 bucket

flags:
`

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %v", err)
	}
	cfg := config.Load()

	backend := flag.String("backend", cfg.ParamsBackend, "params backend: file, sqlite or memory")
	location := flag.String("location", "", "params directory or database path (default from config)")
	device := flag.String("device", "", "device id for backup and restore (default: stored DongleId)")
	timeout := flag.Duration("timeout", 30*time.Second, "S3 request timeout")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg.ParamsBackend = strings.ToLower(*backend)
	loc := *location
	if loc == "" {
		loc = cfg.ParamsLocation()
	}

	store, err := params.Open(cfg.ParamsBackend, loc)
	if err != nil {
		log.Fatalf("Failed to open params: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, os.Stdout, cfg, store, *device, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "paramsctl: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, cfg config.Config, store *params.Params, device string, args []string) error {
	cmd, args := args[0], args[1:]

	switch cmd {
	case "get":
		if len(args) != 1 {
			return errors.New("get takes exactly one key")
		}
		if !params.IsKnown(args[0]) {
			return fmt.Errorf("%w: %s", params.ErrUnknownKey, args[0])
		}
		fmt.Fprintln(out, store.Get(args[0]))
		return nil

	case "put":
		if len(args) != 2 {
			return errors.New("put takes a key and a value")
		}
		return store.Put(args[0], args[1])

	case "putbool":
		if len(args) != 2 {
			return errors.New("putbool takes a key and a boolean")
		}
		b, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("invalid boolean %q", args[1])
		}
		return store.PutBool(args[0], b)

	case "list":
		for _, key := range params.KnownKeys() {
			fmt.Fprintf(out, "%s=%s\n", key, store.Get(key))
		}
		return nil

	case "backup", "restore":
		if !cfg.BackupEnabled() {
			return errors.New("PARAMS_BACKUP_BUCKET is not set")
		}
		if device == "" {
			device = store.Get(params.DongleID)
		}
		if device == "" {
			return errors.New("no device id; pass -device or run the UI once")
		}
		client, err := paramsync.NewClientFromEnv()
		if err != nil {
			return err
		}
		syncer := paramsync.New(client, cfg.BackupBucket, cfg.BackupPrefix)
		if cmd == "backup" {
			return syncer.Backup(ctx, store, device)
		}
		n, err := syncer.Restore(ctx, store, device)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "restored %d params\n", n)
		return nil
	}

	return fmt.Errorf("unknown command %q", cmd)
}
