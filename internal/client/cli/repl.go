package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	More(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Region(ctx context.Context, region string) error
	Regions(ctx context.Context) error
	Refresh(ctx context.Context) error
	Retry(ctx context.Context) error
	Show(ctx context.Context, code string) error
	Fav(ctx context.Context, code string) error
	Unfav(ctx context.Context, code string) error
	Note(ctx context.Context, code string) error
	Favs(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the CountryBook CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands
//
//	help              — show available commands
//	list | l          — show the current page of countries
//	more              — load the next page
//	search [text]     — filter by name, code, or capital (empty clears)
//	region [name]     — filter by region (empty or All clears)
//	regions           — list available regions
//	refresh           — refetch the current page
//	retry             — retry after a failed load
//	show <code>       — country details by alpha-3 code
//	fav <code>        — star a country
//	unfav <code>      — unstar a country
//	note <code>       — edit the note on a starred country
//	favs              — list starred countries
//	exit | quit       — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		printlnFn("cb> ")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: (l)ist, more, search, region, regions, refresh, retry, show, fav, unfav, note, favs, exit")

		case "l", "list":
			_ = a.List(ctx)

		case "more":
			_ = a.More(ctx)

		case "search":
			_ = a.Search(ctx, strings.Join(args, " "))

		case "region":
			_ = a.Region(ctx, strings.Join(args, " "))

		case "regions":
			_ = a.Regions(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "retry":
			_ = a.Retry(ctx)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <code>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "fav":
			if len(args) == 0 {
				printlnFn("Usage: fav <code>")
				continue
			}
			_ = a.Fav(ctx, args[0])

		case "unfav":
			if len(args) == 0 {
				printlnFn("Usage: unfav <code>")
				continue
			}
			_ = a.Unfav(ctx, args[0])

		case "note":
			if len(args) == 0 {
				printlnFn("Usage: note <code>")
				continue
			}
			_ = a.Note(ctx, args[0])

		case "favs":
			_ = a.Favs(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
