package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/quantumfamily/archetype/internal/db"
)

func main() {
	dbPath := flag.String("db", "archetype.db", "path to sqlite DB file")
	csvPath := flag.String("csv", "", "spreadsheet CSV export to import")
	dry := flag.Bool("dry-run", false, "don't write changes; just report")
	flag.Parse()

	if *csvPath == "" {
		log.Fatal("-csv is required")
	}
	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("open %s: %v", *csvPath, err)
	}
	defer f.Close()

	database, err := db.NewDB(*dbPath)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer database.Close()

	stats, err := RunImport(context.Background(), database, f, *dry)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}
	for _, s := range stats.Skips {
		log.Printf("skipped line %d: %v", s.Line, s.Err)
	}
	log.Printf("done: total=%d imported=%d skipped=%d", stats.Total, stats.Imported, len(stats.Skips))
}
