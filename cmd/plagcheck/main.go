package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"plagiarism_checker/internal/ingest"
	"plagiarism_checker/internal/plagiarism"
	"plagiarism_checker/internal/report"
	"plagiarism_checker/internal/similarity"
)

func main() {
	// Optional .env next to the binary; flags still win over environment.
	_ = godotenv.Load(".env")

	var (
		untrustedDir = flag.String("untrusted", "", "directory of submissions to screen (required)")
		trustedDir   = flag.String("trusted", "", "directory of reference material (optional)")
		n            = flag.Int("n", envInt("PLAGCHECK_N", 3), "fragment length in words")
		s            = flag.Int("s", envInt("PLAGCHECK_S", 0), "metric cutoff (max edit distance for lev, min overlap*100 for overlap)")
		metricName   = flag.String("metric", envStr("PLAGCHECK_METRIC", "equal"), "comparison metric: equal, lev or overlap")
		workers      = flag.Int("workers", envInt("PLAGCHECK_WORKERS", 0), "comparison workers (0 = all CPUs)")
		timeout      = flag.Duration("timeout", 0, "abort comparisons after this long, keeping partial results")
		outPath      = flag.String("out", "", "write the JSON result set here instead of stdout")
		reportDB     = flag.String("report-db", envStr("PLAGCHECK_REPORT_DB", ""), "also persist results to this sqlite file")
		dumpWords    = flag.Bool("dump-words", false, "print every owner's normalized words and exit")
	)
	flag.Parse()

	if *untrustedDir == "" {
		flag.Usage()
		log.Fatal("missing -untrusted directory")
	}

	metric, err := similarity.ParseMetric(*metricName)
	if err != nil {
		log.Fatalf("bad -metric: %v", err)
	}
	db, err := plagiarism.New(*n, *s, metric)
	if err != nil {
		log.Fatalf("bad configuration: %v", err)
	}
	db.SetWorkers(*workers)

	if *trustedDir != "" {
		count, err := loadInto(*trustedDir, db.AddTrustedText)
		if err != nil {
			log.Fatalf("load trusted corpus: %v", err)
		}
		log.Printf("loaded %d trusted texts from %s", count, *trustedDir)
	}
	count, err := loadInto(*untrustedDir, db.AddUntrustedText)
	if err != nil {
		log.Fatalf("load untrusted corpus: %v", err)
	}
	log.Printf("loaded %d untrusted texts from %s", count, *untrustedDir)

	if *dumpWords {
		if err := dumpNormalized(db); err != nil {
			log.Fatalf("dump words: %v", err)
		}
		return
	}

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	results := runChecks(ctx, db, *trustedDir != "", report.Run{
		Metric: metric.String(),
		N:      *n,
		Cutoff: *s,
	}, *reportDB)

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("create output file: %v", err)
		}
		defer f.Close()
		out = f
	}
	if err := report.WriteJSON(out, results); err != nil {
		log.Fatalf("write results: %v", err)
	}
	log.Printf("%d plagiarism result(s)", len(results))
}

// runChecks runs the untrusted sweep and, when reference material was
// loaded, the trusted sweep, persisting each run when a report file is
// configured. A deadline leaves partial results rather than none.
func runChecks(ctx context.Context, db *plagiarism.Database, haveTrusted bool, runInfo report.Run, reportDB string) []plagiarism.PlagiarismResult {
	var all []plagiarism.PlagiarismResult

	untrusted, err := db.CheckUntrustedPlagiarism(ctx)
	if err != nil {
		if len(untrusted) == 0 && ctx.Err() == nil {
			log.Fatalf("untrusted check: %v", err)
		}
		log.Printf("untrusted check incomplete: %v", err)
	}
	persist(reportDB, runInfo, "untrusted", untrusted)
	all = append(all, untrusted...)

	if haveTrusted {
		trusted, err := db.CheckTrustedPlagiarism(ctx)
		if err != nil {
			if len(trusted) == 0 && ctx.Err() == nil {
				log.Fatalf("trusted check: %v", err)
			}
			log.Printf("trusted check incomplete: %v", err)
		}
		persist(reportDB, runInfo, "trusted", trusted)
		all = append(all, trusted...)
	}
	return all
}

func persist(reportDB string, runInfo report.Run, mode string, results []plagiarism.PlagiarismResult) {
	if reportDB == "" {
		return
	}
	runInfo.Mode = mode
	start := time.Now()
	runID, err := report.Persist(reportDB, runInfo, results)
	if err != nil {
		log.Fatalf("persist %s run: %v", mode, err)
	}
	log.Printf("persisted %s run %s (%d rows) in %s", mode, runID, len(results), time.Since(start).Round(time.Millisecond))
}

func loadInto(dir string, add func(plagiarism.OwnerID, string)) (int, error) {
	subs, err := ingest.LoadDir(dir)
	if err != nil {
		return 0, err
	}
	for _, sub := range subs {
		add(plagiarism.OwnerID(sub.Owner), sub.Text)
	}
	return len(subs), nil
}

func dumpNormalized(db *plagiarism.Database) error {
	all := db.AllNormalizedText()
	owners := make([]plagiarism.OwnerID, 0, len(all))
	for owner := range all {
		owners = append(owners, owner)
	}
	slices.Sort(owners)
	for _, owner := range owners {
		if _, err := fmt.Fprintf(os.Stdout, "%s: %v\n", owner, all[owner]); err != nil {
			return err
		}
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("bad %s value %q: %v", key, v, err)
	}
	return parsed
}
