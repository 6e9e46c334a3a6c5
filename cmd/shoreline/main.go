// Command shoreline is an interactive demo shell for the line editor:
// it reads lines with path completion, keeps history, and understands a
// few history management commands.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/tidewater-io/shoreline"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "TOML config file")
	historyPath := flag.String("history", "shoreline.history", "history file for -r/-w/-a")
	flag.Parse()

	opts := []shoreline.Option{
		shoreline.WithPrompt("\x1b[0;101msl\x1b[0m> "),
		shoreline.WithCompleter(pathCompletions),
	}
	if *configPath != "" {
		opts = append(opts, shoreline.WithConfigFile(*configPath))
	}

	ed, err := shoreline.New(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shoreline: %v\n", err)
		return 1
	}
	defer ed.Close()

	if *configPath != "" {
		if err := ed.WatchConfig(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "shoreline: watch config: %v\n", err)
		}
	}

	for {
		line, err := ed.ReadLine()
		if errors.Is(err, io.EOF) {
			return 0
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "shoreline: %v\n", err)
			return 1
		}
		fmt.Printf("Read: %s---------------------\n", line)

		switch cmd := strings.TrimSuffix(line, "\n"); {
		case cmd == "history":
			ed.WriteHistory(os.Stdout)
		case cmd == "history -c":
			ed.ClearHistory()
			continue
		case cmd == "history -r":
			if err := ed.LoadHistory(*historyPath); err != nil {
				fmt.Fprintf(os.Stderr, "shoreline: %v\n", err)
			}
		case cmd == "history -w":
			if err := ed.SaveHistory(*historyPath, false); err != nil {
				fmt.Fprintf(os.Stderr, "shoreline: %v\n", err)
			}
		case cmd == "history -a":
			if err := ed.SaveHistory(*historyPath, true); err != nil {
				fmt.Fprintf(os.Stderr, "shoreline: %v\n", err)
			}
		case strings.HasPrefix(cmd, "!"):
			expand(ed, cmd)
			continue
		case cmd == "exit":
			return 0
		}
		ed.AddHistory(line)
	}
}

// expand prints the history entry named by a !n reference; negative
// numbers count from the newest entry.
func expand(ed *shoreline.Editor, cmd string) {
	n, err := strconv.Atoi(cmd[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "shoreline: bad history reference %q\n", cmd)
		return
	}
	entry, ok := ed.HistoryEntry(n)
	if !ok {
		fmt.Fprintf(os.Stderr, "shoreline: no history entry %d\n", n)
		return
	}
	fmt.Printf("Expansion: %s\n---------------------\n", entry)
}

// pathCompletions completes the token as a filesystem path; directories
// gain a trailing separator so completion can continue into them.
func pathCompletions(line string, start, end int) []string {
	partial := line[start:end]
	matches, err := filepath.Glob(partial + "*")
	if err != nil || len(matches) == 0 {
		return nil
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.IsDir() {
			m += string(filepath.Separator)
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
