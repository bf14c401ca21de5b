// Command arenademo fills standard and arena-backed containers with a
// factorial table and prints their contents.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/google/btree"
	"github.com/lmittmann/tint"
	"github.com/pavanmanishd/arenakit/arena"
	"github.com/pavanmanishd/arenakit/list"
	"github.com/pavanmanishd/arenakit/ordmap"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

var (
	Count    = pflag.IntP("count", "n", 10, "number of elements to insert")
	Capacity = pflag.IntP("capacity", "c", 10, "arena capacity in elements")
	LogLevel = levelP("log-level", "L", slog.LevelWarn, "log level")
	LogJSON  = pflag.Bool("log-json", false, "use json logs")
	Help     = pflag.BoolP("help", "h", false, "show this help text")
)

func levelP(name, shorthand string, value slog.Level, usage string) *slog.LevelVar {
	level := new(slog.LevelVar)
	def := new(slog.LevelVar)
	def.Set(value)
	pflag.TextVarP(level, name, shorthand, def, usage)
	return level
}

func main() {
	pflag.Parse()

	if *Help || pflag.NArg() != 0 {
		fmt.Printf("usage: %s [options]\n%s", os.Args[0], pflag.CommandLine.FlagUsages())
		if *Help {
			return
		}
		os.Exit(2)
	}

	if *Count < 0 || *Capacity <= 0 {
		fmt.Fprintf(os.Stderr, "error: count must be non-negative and capacity positive\n")
		os.Exit(2)
	}

	if *LogJSON {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: LogLevel,
		})))
	} else {
		slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level: LogLevel,
		})))
	}

	if err := run(os.Stdout, *Count, *Capacity); err != nil {
		slog.Error("demo failed", "error", err)
		os.Exit(1)
	}
}

type entry struct {
	key, value int
}

func fact(n int) int {
	res := 1
	for i := 1; i <= n; i++ {
		res *= i
	}
	return res
}

func run(w io.Writer, count, capacity int) (err error) {
	opts := []arena.Option{arena.WithLogger(slog.Default())}

	// standard allocator
	std := btree.NewG(2, func(a, b entry) bool { return a.key < b.key })
	for i := range count {
		std.ReplaceOrInsert(entry{i, fact(i)})
	}

	// arena allocator
	m := ordmap.NewWithAllocator[int, int](arena.NewBounded[ordmap.Pair[int, int]](capacity, opts...))
	defer release(&err, "arena map", m.Free)
	for i := range count {
		if err := m.Set(i, fact(i)); err != nil {
			return errors.Wrapf(err, "arena map: set %d", i)
		}
	}
	logMetrics("arena map", m.Metrics())

	if err := compare(std, m); err != nil {
		return err
	}
	for k, v := range m.All() {
		fmt.Fprintln(w, k, v)
	}

	l1 := list.New[int]()
	defer release(&err, "heap list", l1.Free)
	if err := fill(l1, count); err != nil {
		return errors.Wrap(err, "heap list")
	}
	printList(w, l1)

	l2 := list.NewWithAllocator(arena.Allocator[int](arena.NewBounded[int](capacity, opts...)))
	defer release(&err, "arena list", l2.Free)
	if err := fill(l2, count); err != nil {
		return errors.Wrap(err, "arena list")
	}
	printList(w, l2)
	logMetrics("arena list", l2.Metrics())

	l3 := l2.Move()
	defer release(&err, "moved arena list", l3.Free)
	printList(w, l3)
	slog.Debug("moved arena list", "src_len", l2.Len(), "dst_len", l3.Len())

	l4, err := l1.Clone()
	if err != nil {
		return errors.Wrap(err, "copy heap list")
	}
	defer release(&err, "heap list copy", l4.Free)
	printList(w, l4)

	return nil
}

// release frees a container and records the failure in err unless an
// earlier error is already set.
func release(err *error, name string, free func() error) {
	if ferr := free(); ferr != nil {
		slog.Warn("free failed", "container", name, "error", ferr)
		if *err == nil {
			*err = errors.Wrapf(ferr, "free %s", name)
		}
	}
}

func compare(std *btree.BTreeG[entry], m *ordmap.Map[int, int]) error {
	if std.Len() != m.Len() {
		return errors.Errorf("map length mismatch: standard %d, arena %d", std.Len(), m.Len())
	}
	var err error
	std.Ascend(func(e entry) bool {
		if v, ok := m.Get(e.key); !ok || v != e.value {
			err = errors.Errorf("map mismatch at key %d: standard %d, arena %d", e.key, e.value, v)
			return false
		}
		return true
	})
	return err
}

func fill(l *list.List[int], count int) error {
	for i := range count {
		if err := l.Append(i); err != nil {
			return errors.Wrapf(err, "append %d", i)
		}
	}
	return nil
}

func printList(w io.Writer, l *list.List[int]) {
	for v := range l.All() {
		fmt.Fprintln(w, v)
	}
}

func logMetrics(name string, m arena.ArenaMetrics) {
	slog.Debug(name+" storage",
		"outstanding", m.Outstanding,
		"capacity", m.Capacity,
		"block", humanize.IBytes(uint64(m.BlockBytes)),
		"utilization", fmt.Sprintf("%.0f%%", m.Utilization*100),
	)
}
