// Command seed-db loads the catalog (categories and products) from a JSON
// dump into PostgreSQL. Dumps may be plain .json or gzip-compressed
// .json.gz exports.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/go-faster/errors"
	"github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"

	"github.com/brunodmn/storefront-api/internal/domain/catalog"
	"github.com/brunodmn/storefront-api/internal/repository"
)

type categoryJSON struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
}

type productJSON struct {
	SKU         string          `json:"sku"`
	Nome        string          `json:"nome"`
	Descricao   string          `json:"descricao"`
	Foto        string          `json:"foto"`
	Preco       decimal.Decimal `json:"preco"`
	PctOferta   decimal.Decimal `json:"pctOferta"`
	Estoque     int32           `json:"estoque"`
	IdCategoria string          `json:"idCategoria"`
}

type dumpJSON struct {
	Categorias []categoryJSON `json:"categorias"`
	Produtos   []productJSON  `json:"produtos"`
}

func main() {
	var (
		databaseURL string
		dumpFile    string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&dumpFile, "dump-file", "db/seed/catalog.json", "path to the catalog dump (.json or .json.gz)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, dumpFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, dumpFile string) error {
	dump, err := readDump(dumpFile)
	if err != nil {
		return errors.Wrap(err, "read dump")
	}

	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	categories := repository.NewCategoryRepository(pool)
	products := repository.NewProductRepository(pool)

	// Categories first: products reference them.
	slog.Info("upserting categories", slog.Int("count", len(dump.Categorias)))
	for _, c := range dump.Categorias {
		if err := categories.Upsert(ctx, catalog.Category{ID: c.ID, Name: c.Nome}); err != nil {
			return errors.Wrapf(err, "upsert category %s", c.ID)
		}
	}

	slog.Info("upserting products", slog.Int("count", len(dump.Produtos)))
	for _, p := range dump.Produtos {
		err := products.Upsert(ctx, catalog.Product{
			SKU:          p.SKU,
			Name:         p.Nome,
			Description:  p.Descricao,
			Photo:        p.Foto,
			Price:        p.Preco,
			OfferPercent: p.PctOferta,
			Stock:        p.Estoque,
			CategoryID:   p.IdCategoria,
		})
		if err != nil {
			return errors.Wrapf(err, "upsert product %s", p.SKU)
		}
	}

	return nil
}

// readDump opens the dump file, transparently decompressing .gz exports.
func readDump(path string) (*dumpJSON, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open dump file")
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(err, "open gzip reader")
		}
		defer gz.Close()
		r = gz
	}

	var dump dumpJSON
	if err := json.NewDecoder(r).Decode(&dump); err != nil {
		return nil, errors.Wrap(err, "parse dump JSON")
	}
	return &dump, nil
}
