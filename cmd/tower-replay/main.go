package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lixenwraith/tower-jumper/journal"
	"github.com/lixenwraith/tower-jumper/tuning"
)

func main() {
	var (
		journalPath = flag.String("journal", "", "path to a .tjr journal")
		tuningPath  = flag.String("tuning", "", "replay with this YAML tuning instead of the recorded one")
		asJSON      = flag.Bool("json", false, "print the report as JSON")
	)
	flag.Parse()

	if *journalPath == "" {
		fmt.Fprintln(os.Stderr, "missing -journal")
		os.Exit(2)
	}

	code, err := replay(os.Stdout, *journalPath, *tuningPath, *asJSON)
	if err != nil {
		fmt.Fprintln(os.Stderr, "replay:", err)
	}
	os.Exit(code)
}

// replay verifies one journal and writes the report; exit code 1 marks a failed or diverging replay
func replay(out io.Writer, journalPath, tuningPath string, asJSON bool) (int, error) {
	var tu *tuning.Tuning
	if tuningPath != "" {
		loaded, err := tuning.Load(tuningPath)
		if err != nil {
			return 1, fmt.Errorf("load tuning: %w", err)
		}
		tu = loaded
	}

	r, err := journal.Open(journalPath)
	if err != nil {
		return 1, err
	}
	defer r.Close()

	res, err := journal.Replay(r, tu)
	if err != nil {
		return 1, err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return 1, err
		}
	} else {
		printReport(out, res)
	}

	if !res.OK() {
		return 1, nil
	}
	return 0, nil
}

func printReport(out io.Writer, res journal.Result) {
	fmt.Fprintf(out, "run %s seed=%d frames=%d events=%d landings=%d rejected=%d\n",
		res.RunID, res.Seed, res.Frames, res.Events, res.Landings, res.Rejected)
	if !res.DigestMatch {
		fmt.Fprintln(out, "warning: tuning differs from the recorded run")
	}
	fmt.Fprintf(out, "final score=%d highest floor=%d confirmed combo=%d\n",
		res.FinalScore, res.HighestFloor, res.ConfirmedCombo)
	if res.GameOver {
		fmt.Fprintf(out, "game over score=%d\n", res.GameOverScore)
	}
	if res.OK() {
		fmt.Fprintf(out, "replay ok: checked=%d frames\n", res.Frames)
		return
	}
	m := res.FirstMismatch
	fmt.Fprintf(out, "replay diverged: %d mismatched frames, first at frame %d (recorded %d, replayed %d)\n",
		res.Mismatches, m.Frame, m.Recorded, m.Replayed)
}
