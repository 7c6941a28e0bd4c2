package main

import (
	"context"
	"flag"
	"fmt"
	"iter"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/poiesic/catalogrank"
	"github.com/poiesic/catalogrank/core"
	"github.com/poiesic/catalogrank/ingestion"
)

type product struct {
	category    string
	title       string
	description string
	basePrice   float64
}

var products = []product{
	{"smartphones", "Samsung Galaxy S23", "Android smartphone with a bright AMOLED screen", 799},
	{"smartphones", "Samsung Galaxy A54", "Affordable Android smartphone with long battery life", 399},
	{"smartphones", "iPhone 15 Pro", "Apple smartphone with a titanium frame", 1229},
	{"smartphones", "Google Pixel 8", "Android smartphone with a great camera", 699},
	{"smartphones", "Xiaomi Redmi Note 13", "Budget smartphone with fast charging", 249},
	{"laptops", "Dell XPS 13", "Compact ultrabook laptop with an InfinityEdge display", 1499},
	{"laptops", "Apple MacBook Air M2", "Thin and light laptop with all-day battery", 1199},
	{"laptops", "Lenovo ThinkPad X1 Carbon", "Business laptop with a great keyboard", 1699},
	{"laptops", "Asus Zenbook 14", "OLED laptop for work and travel", 999},
	{"tv", "Sony Bravia 55 4K", "4K television with HDR and Google TV", 899},
	{"tv", "LG OLED C3 65", "OLED television with deep blacks", 1799},
	{"tv", "Samsung Crystal UHD 50", "Smart 4K television", 449},
	{"audio", "Sony WH-1000XM5", "Wireless noise cancelling headphones", 379},
	{"audio", "Bose QuietComfort Earbuds", "Wireless earbuds with noise cancelling", 279},
	{"audio", "JBL Flip 6", "Portable waterproof bluetooth speaker", 129},
}

var reviewBodies = []struct {
	body   string
	rating float64
}{
	{"Excellent product, works perfectly", 5},
	{"Great value for the price", 4},
	{"Fast shipping and good quality", 4},
	{"Average, does the job", 3},
	{"Battery drains too quickly", 2},
	{"Stopped working after a week, very disappointed", 1},
}

var (
	dbPath  = flag.String("db", "./catalog_db", "catalog database directory")
	count   = flag.Int("n", 200, "number of items to generate")
	seed    = flag.Uint64("seed", 42, "random seed")
	batchSz = flag.Int("batch", 50, "items stored per write")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// demoItems returns an iterator over n generated catalog items.
func demoItems(n int, rng *rand.Rand) iter.Seq[*core.Item] {
	return func(yield func(*core.Item) bool) {
		for i := range n {
			p := products[i%len(products)]
			link := fmt.Sprintf("https://shop.example/%s/%d", p.category, i)
			item := &core.Item{
				ID:          core.ItemIDFromURL(link),
				Title:       fmt.Sprintf("%s (edition %d)", p.title, i/len(products)+1),
				Price:       p.basePrice * (0.8 + 0.4*rng.Float64()),
				Link:        link,
				Description: p.description,
				Category:    p.category,
			}
			for range rng.IntN(8) {
				r := reviewBodies[rng.IntN(len(reviewBodies))]
				item.AddReview(core.Review{
					Author: fmt.Sprintf("customer%d", rng.IntN(1000)),
					Rating: r.rating,
					Body:   r.body,
				})
			}
			if !yield(item) {
				return
			}
		}
	}
}

// importBatched reads from a source iterator and imports items in batches.
func importBatched(ctx context.Context, importer *ingestion.Importer, source iter.Seq[*core.Item], batchSize int) error {
	batch := make([]*core.Item, 0, batchSize)

	for item := range source {
		batch = append(batch, item)
		if len(batch) == batchSize {
			if _, err := importer.Import(ctx, batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	// Process any remaining items
	if len(batch) > 0 {
		if _, err := importer.Import(ctx, batch); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	catalog, err := catalogrank.Open(*dbPath)
	if err != nil {
		panic(err)
	}
	defer catalog.Close()

	importer, err := catalog.NewImporter(ingestion.WithBatchSize(*batchSz))
	if err != nil {
		panic(err)
	}

	rng := rand.New(rand.NewPCG(*seed, *seed))
	if err := importBatched(context.Background(), importer, demoItems(*count, rng), *batchSz); err != nil {
		panic(err)
	}
}
