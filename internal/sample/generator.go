package sample

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/jaswdr/faker"

	"github.com/surveyops/triage/internal/table"
)

// Config controls synthetic survey generation.
type Config struct {
	Rows int
	Seed int64

	// MissingRate is the per-cell probability of replacing an answer with a
	// raw "NA" or "N/A" token.
	MissingRate float64

	// EmptyRate is the per-cell probability of an empty-string encoding on
	// the coordinate columns, mimicking datasets that blank those out
	// instead of using a token.
	EmptyRate float64
}

// DefaultConfig produces a small messy dataset: enough missing tokens to
// exercise normalization, plus blank coordinates that the default rule set
// deliberately does not catch.
func DefaultConfig() Config {
	return Config{
		Rows:        100,
		Seed:        1,
		MissingRate: 0.08,
		EmptyRate:   0.05,
	}
}

var columns = []string{
	"respondent_id",
	"name",
	"city",
	"age",
	"household_size",
	"income",
	"latitude",
	"longitude",
}

// Generate builds a synthetic survey table with ad-hoc missing-value
// encodings salted in. Same config, same table: generation is fully
// deterministic from the seed.
func Generate(cfg Config) table.Table {
	rng := rand.New(rand.NewSource(cfg.Seed))
	f := faker.NewWithSeed(rand.NewSource(cfg.Seed))

	t := table.New(columns...)
	for i := 0; i < cfg.Rows; i++ {
		values := []string{
			fmt.Sprintf("R%05d", i+1),
			f.Person().Name(),
			f.Address().City(),
			strconv.Itoa(f.IntBetween(18, 90)),
			strconv.Itoa(f.IntBetween(1, 12)),
			strconv.Itoa(f.IntBetween(500, 20000)),
			strconv.FormatFloat(f.Address().Latitude(), 'f', 5, 64),
			strconv.FormatFloat(f.Address().Longitude(), 'f', 5, 64),
		}

		rec := make(table.Record, 0, len(values))
		for col, v := range values {
			raw := salt(v, columns[col], cfg, rng)
			rec = append(rec, table.NewCell(raw))
		}
		// Shape is fixed above, Append cannot fail here.
		_ = t.Append(rec)
	}
	return t
}

// salt occasionally swaps an answer for a raw missing encoding. The id
// column is left intact so records stay identifiable.
func salt(v, column string, cfg Config, rng *rand.Rand) string {
	if column == "respondent_id" {
		return v
	}
	if column == "latitude" || column == "longitude" {
		if rng.Float64() < cfg.EmptyRate {
			return ""
		}
	}
	if rng.Float64() < cfg.MissingRate {
		if rng.Intn(2) == 0 {
			return "NA"
		}
		return "N/A"
	}
	return v
}
