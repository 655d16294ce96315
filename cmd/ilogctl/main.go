// ilogctl is an interactive REPL for exercising a single on-disk
// interlog.
//
// Usage:
//
//	ilogctl [opts] <log-file>
//
// Options:
//
//	-r, --read-cache-capacity    Read cache size in bytes (default: 65536)
//	-k, --key-index-capacity     Max events held by the key index (default: 65536)
//	-w, --write-buf-capacity     Transaction write buffer size in bytes (default: 65536)
//	-d, --disk-read-buf-capacity Disk scratch buffer size in bytes (default: 65536)
//
// Commands (in REPL):
//
//	enqueue <payload>   Stage payload as the next event
//	commit              Flush staged events to disk
//	read <logical_pos>  Decode and print an event
//	len                 Number of committed events
//	addr                This log's address
//	stats               Committed and staged event counts
//	help                Show this help
//	exit / quit / q     Exit
//
// Each run starts from a fresh, truncated log file and mints a new
// address: ilogctl does not attempt to recover a prior session's
// in-memory state from an existing file, matching the core's own
// non-goal of crash recovery.
package main

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/abletheabove/interlog/pkg/fs"
	"github.com/abletheabove/interlog/pkg/interlog"
	"github.com/abletheabove/interlog/pkg/storage"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("ilogctl", flag.ContinueOnError)

	readCacheCap := flags.IntP("read-cache-capacity", "r", 64*1024, "read cache size in bytes")
	keyIndexCap := flags.IntP("key-index-capacity", "k", 64*1024, "max events held by the key index")
	writeBufCap := flags.IntP("write-buf-capacity", "w", 64*1024, "transaction write buffer size in bytes")
	diskReadBufCap := flags.IntP("disk-read-buf-capacity", "d", 64*1024, "disk scratch buffer size in bytes")

	if err := flags.Parse(args); err != nil {
		return err
	}

	remaining := flags.Args()
	if len(remaining) != 1 {
		flags.Usage()
		return fmt.Errorf("expected exactly one log file argument, got %d", len(remaining))
	}

	path := remaining[0]

	fsys := fs.NewReal()

	file, err := storage.CreateFile(fsys, path)
	if err != nil {
		return err
	}
	defer file.Close()

	id, err := interlog.NewAddress(rand.Reader)
	if err != nil {
		return err
	}

	log := interlog.NewLog(id, file, interlog.Config{
		ReadCacheCapacity:   *readCacheCap,
		KeyIndexCapacity:    *keyIndexCap,
		TxnWriteBufCapacity: *writeBufCap,
		DiskReadBufCapacity: *diskReadBufCap,
	})

	repl := &repl{log: log, path: path}

	return repl.run()
}

type repl struct {
	log    *interlog.Log
	path   string
	liner  *liner.State
	staged int
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".ilogctl_history")
}

func (r *repl) run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(historyFile()); err == nil {
		r.liner.ReadHistory(f)
		f.Close()
	}

	fmt.Printf("ilogctl - interlog CLI (file=%s, addr=%s)\n", r.path, r.log.ID())
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()

	for {
		line, err := r.liner.Prompt("ilogctl> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println("\nBye!")
				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "exit", "quit", "q":
			fmt.Println("Bye!")
			r.saveHistory()

			return nil
		case "help", "?":
			r.printHelp()
		case "enqueue", "put":
			r.cmdEnqueue(args)
		case "commit":
			r.cmdCommit()
		case "read", "get":
			r.cmdRead(args)
		case "len", "count":
			r.cmdLen()
		case "addr":
			fmt.Println(r.log.ID())
		case "stats":
			r.cmdStats()
		default:
			fmt.Printf("unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}

	r.saveHistory()

	return nil
}

func (r *repl) saveHistory() {
	if path := historyFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			r.liner.WriteHistory(f)
			f.Close()
		}
	}
}

func (r *repl) completer(line string) []string {
	commands := []string{
		"enqueue", "put", "commit", "read", "get",
		"len", "count", "addr", "stats",
		"help", "exit", "quit", "q",
	}

	var matches []string

	for _, c := range commands {
		if strings.HasPrefix(c, line) {
			matches = append(matches, c)
		}
	}

	return matches
}

func (r *repl) printHelp() {
	fmt.Println(`Commands:
  enqueue <payload>   Stage payload as the next event
  commit              Flush staged events to disk
  read <logical_pos>  Decode and print an event
  len                 Number of committed events
  addr                This log's address
  stats               Committed and staged event counts
  help                Show this help
  exit / quit / q     Exit`)
}

func (r *repl) cmdEnqueue(args []string) {
	if len(args) == 0 {
		fmt.Println("usage: enqueue <payload>")
		return
	}

	payload := []byte(strings.Join(args, " "))

	if err := r.log.Enqueue(payload); err != nil {
		fmt.Printf("enqueue failed: %v\n", err)
		return
	}

	r.staged++
	fmt.Printf("staged (logical_pos will be %d)\n", r.log.Len()+r.staged-1)
}

func (r *repl) cmdCommit() {
	if err := r.log.Commit(); err != nil {
		fmt.Printf("commit failed: %v\n", err)
		return
	}

	fmt.Printf("committed %d event(s), log now has %d\n", r.staged, r.log.Len())
	r.staged = 0
}

func (r *repl) cmdRead(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: read <logical_pos>")
		return
	}

	pos, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Printf("invalid logical_pos: %v\n", err)
		return
	}

	result, found, err := r.log.Read(pos)
	if err != nil {
		fmt.Printf("read failed: %v\n", err)
		return
	}

	if !found {
		fmt.Printf("no event at logical_pos %d\n", pos)
		return
	}

	fmt.Printf("cache_hit=%v origin=%s logical_pos=%d payload=%q\n",
		result.CacheHit, result.Event.ID.Origin, result.Event.ID.LogicalPos, result.Event.Payload)
}

func (r *repl) cmdLen() {
	fmt.Println(r.log.Len())
}

func (r *repl) cmdStats() {
	fmt.Printf("events=%d staged=%d\n", r.log.Len(), r.staged)
}
