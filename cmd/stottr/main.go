// stottr expands a CSV table into RDF triples using the spec's default
// flat-table template (one row per subject, one column per predicate)
// and writes the result as N-Triples, and optionally as a native
// Parquet partition layout, to disk.
//
// The input CSV is expected to have a header row. One column is the
// primary key (the row's subject), zero or more columns are foreign
// keys whose values are typed as IRIs rather than literals, and every
// remaining column becomes a predicate named from the configured IRI
// prefix plus the column name, whose object kind is inferred from the
// column's values.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/magbak/stottr-go/internal/config"
	"github.com/magbak/stottr-go/internal/export"
	"github.com/magbak/stottr-go/internal/expand"
	"github.com/magbak/stottr-go/internal/templates"
)

func main() {
	var (
		configPath = flag.String("config", "", "specify a TOML config file (optional)")
		csvPath    = flag.String("csv", "", "specify the input table (.csv - required)")
		pk         = flag.String("pk", "", "specify the primary key column name (required)")
		fk         = flag.String("fk", "", "comma-separated foreign key column names (optional)")
		prefix     = flag.String("prefix", "", "override the configured default IRI prefix")
		cacheDir   = flag.String("cache", "", "override the configured Parquet spill cache directory")
		outPath    = flag.String("out", "", "specify the N-Triples output file (required)")
		parquetDir = flag.String("parquet", "", "also write native Parquet partitions to this directory (optional)")
		help       = flag.Bool("help", false, "print help text")
	)
	flag.Parse()

	if *help {
		flag.Usage()
		fmt.Fprintf(os.Stderr, `
%s reads a CSV table and expands it into RDF triples using the
default flat-table template: the -pk column becomes the subject of
every triple, -fk columns become object-typed (IRI) predicates, and
every other column becomes a predicate whose object kind is inferred
from the column's values. Output is
written as N-Triples to -out, and additionally as native Parquet
partitions to -parquet if given.

`, filepath.Base(os.Args[0]))
		os.Exit(0)
	}

	if *csvPath == "" || *pk == "" || *outPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	cfg := mustLoadConfig(*configPath, log)
	if *prefix != "" {
		cfg.DefaultPrefix = *prefix
	}
	if *cacheDir != "" {
		cfg.CacheDir = *cacheDir
	}

	var fkCols []string
	if *fk != "" {
		fkCols = strings.Split(*fk, ",")
	}

	log.Infow("loading table", "path", *csvPath)
	table, err := loadCSV(*csvPath)
	if err != nil {
		log.Fatalw("failed to load csv", "error", err)
	}

	ds := templates.New(map[string]string{"ex": cfg.DefaultPrefix})
	m, err := expand.New(ds, cfg.CacheDir, logger)
	if err != nil {
		log.Fatalw("failed to construct mapping session", "error", err)
	}

	log.Infow("expanding table", "pk", *pk, "fk", fkCols, "rows", table.NumRows())
	report, err := m.ExpandDefault(table, *pk, fkCols, cfg.DefaultPrefix, expand.Options{LanguageTags: cfg.LanguageTags})
	if err != nil {
		log.Fatalw("expansion failed", "error", err)
	}
	log.Infow("expansion complete", "template", report.TemplateName, "batches", report.TripleBatchesAdded)

	out, err := os.Create(*outPath)
	if err != nil {
		log.Fatalw("failed to create output file", "path", *outPath, "error", err)
	}
	defer out.Close()
	if err := export.WriteNTriples(out, m.Store); err != nil {
		log.Fatalw("failed to write n-triples", "error", err)
	}

	if *parquetDir != "" {
		if err := os.MkdirAll(*parquetDir, 0o755); err != nil {
			log.Fatalw("failed to create parquet output directory", "path", *parquetDir, "error", err)
		}
		if err := export.WriteNativeParquet(*parquetDir, m.Store, cfg.Parquet.RowGroupSize); err != nil {
			log.Fatalw("failed to write parquet partitions", "error", err)
		}
	}

	log.Infow("done", "out", *outPath, "parquet", *parquetDir)
}

func mustLoadConfig(path string, log *zap.SugaredLogger) config.Config {
	if path == "" {
		cfg, _ := config.Load(strings.NewReader(""))
		return cfg
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		log.Fatalw("failed to load config", "path", path, "error", err)
	}
	return cfg
}
