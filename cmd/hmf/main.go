// cmd/hmf/main.go
//
// Terminal client for HowManyFucks. Three subcommands:
//   play   - interactive rounds: show a grid, read a count guess, score it
//   daily  - one shot at today's puzzle (seed = salt + UTC date)
//   print  - generate and print a puzzle without playing
//
// All gameplay output goes to stdout; configuration problems exit nonzero.

package main

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hmfgame/hmf/internal/daily"
	"github.com/hmfgame/hmf/internal/game"
	"github.com/hmfgame/hmf/internal/render"
)

type options struct {
	size       int
	exact      int // -1 means "use the min/max range"
	min, max   int
	weighted   bool
	seed       string
	noOverlap  bool
	directions string
	reveal     bool
}

func main() {
	_ = godotenv.Load()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "play":
		cmdPlay(os.Args[2:])
	case "daily":
		cmdDaily(os.Args[2:])
	case "print":
		cmdPrint(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: hmf <command> [flags]

commands:
  play    play interactive rounds
  daily   play today's daily puzzle
  print   generate and print a puzzle

run "hmf <command> -h" for command flags`)
}

// commonFlags installs the flags shared by play and print.
func commonFlags(fs *flag.FlagSet, o *options) {
	fs.IntVar(&o.size, "size", 10, "grid size (8, 10, 15 or 20 by convention)")
	fs.IntVar(&o.exact, "exact", -1, "exact number of occurrences")
	fs.IntVar(&o.min, "min", 0, "minimum occurrences")
	fs.IntVar(&o.max, "max", 5, "maximum occurrences")
	fs.BoolVar(&o.weighted, "weighted", false, "use weighted letter distribution")
	fs.StringVar(&o.seed, "seed", "", "seed for deterministic generation")
	fs.BoolVar(&o.noOverlap, "no-overlap", false, "forbid word overlaps")
	fs.StringVar(&o.directions, "directions", "all", "allowed directions: all, horizontal, horiz_vert")
	fs.BoolVar(&o.reveal, "reveal", false, "show highlighted matches after the guess")
}

// spec translates CLI options into an engine spec. A missing seed gets a
// random one so each round differs; the seed is printed so a round can be
// replayed.
func (o options) spec() game.Spec {
	seed := o.seed
	if seed == "" {
		seed = randomSeed()
	}
	dist := game.DistEven
	if o.weighted {
		dist = game.DistWeighted
	}
	s := game.Spec{
		Size:         o.size,
		Directions:   o.directions,
		AllowOverlap: !o.noOverlap,
		Distribution: dist,
		Seed:         seed,
		Min:          o.min,
		Max:          o.max,
	}
	if o.exact >= 0 {
		exact := o.exact
		s.Exact = &exact
	}
	return s
}

func randomSeed() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

func cmdPlay(args []string) {
	var o options
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	commonFlags(fs, &o)
	_ = fs.Parse(args)

	in := bufio.NewReader(os.Stdin)
	for {
		res, err := game.Generate(o.spec())
		if err != nil {
			fatal(err)
		}
		playRound(in, res, o.reveal)

		fmt.Print("\nPlay again? (y/n): ")
		answer, err := in.ReadString('\n')
		if err != nil || strings.ToLower(strings.TrimSpace(answer)) != "y" {
			return
		}
		// A fixed seed would replay the identical grid forever.
		o.seed = ""
		fmt.Println()
	}
}

func cmdDaily(args []string) {
	var o options
	fs := flag.NewFlagSet("daily", flag.ExitOnError)
	fs.IntVar(&o.size, "size", 10, "grid size (8, 10, 15 or 20 by convention)")
	fs.BoolVar(&o.weighted, "weighted", false, "use weighted letter distribution")
	fs.BoolVar(&o.reveal, "reveal", false, "show highlighted matches after the guess")
	_ = fs.Parse(args)

	now := time.Now()
	o.seed = daily.Seed(now, os.Getenv("DAILY_SALT"))
	o.exact = -1
	o.min, o.max = 0, 5
	o.directions = game.DirectionsAll

	fmt.Println("=== DAILY PUZZLE ===")
	fmt.Printf("Date: %s (UTC)\n", daily.DateKey(now))
	fmt.Printf("Seed: %s\n\n", o.seed)

	res, err := game.Generate(o.spec())
	if err != nil {
		fatal(err)
	}
	playRound(bufio.NewReader(os.Stdin), res, o.reveal)
}

func cmdPrint(args []string) {
	var o options
	fs := flag.NewFlagSet("print", flag.ExitOnError)
	commonFlags(fs, &o)
	_ = fs.Parse(args)

	res, err := game.Generate(o.spec())
	if err != nil {
		fatal(err)
	}

	fmt.Println("Generated Puzzle:")
	fmt.Println(render.Grid(res.Grid))
	fmt.Printf("\nSeed: %s\n", res.Seed)

	if o.reveal {
		fmt.Printf("True count: %d\n", res.Count)
		if len(res.Matches) > 0 {
			fmt.Println("\nMatches found:")
			fmt.Println(render.MatchList(res.Matches))
		}
	}
}

// playRound shows the grid, reads one integer guess, and scores it.
func playRound(in *bufio.Reader, res *game.Result, reveal bool) {
	fmt.Println(render.Grid(res.Grid))
	fmt.Println()

	fmt.Print("Enter your count guess (integer): ")
	line, err := in.ReadString('\n')
	if err != nil {
		fmt.Println()
		return
	}
	guess, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		fmt.Println("Invalid input. Please enter an integer.")
		return
	}

	if guess == res.Count {
		fmt.Printf("Correct! There were %d %s(s).\n", res.Count, game.TargetWord)
	} else {
		fmt.Printf("Not quite. The correct count is %d.\n", res.Count)
	}

	if reveal && len(res.Matches) > 0 {
		fmt.Println("\nHighlighted grid:")
		fmt.Println(render.Highlighted(res.Grid, res.Matches))
		fmt.Println("\nMatches found:")
		fmt.Println(render.MatchList(res.Matches))
	}
}

// fatal reports engine failures with enough context to fix the flags.
func fatal(err error) {
	var capErr *game.CapacityError
	if errors.As(err, &capErr) {
		log.Error().Err(err).Msg("puzzle cannot fit the requested count; reduce --exact/--max, enlarge --size, or drop --no-overlap")
	} else {
		log.Error().Err(err).Msg("puzzle generation failed")
	}
	os.Exit(1)
}
