// Command plan ejecuta el planner sobre un inventario JSON o sobre la base de datos
// e imprime el outfit elegido junto con el intent derivado.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"outfit-planner/internal/config"
	"outfit-planner/internal/db"
	"outfit-planner/internal/domain"
	"outfit-planner/internal/planner"
	"outfit-planner/internal/repository"
)

func main() {
	inventoryPath := flag.String("inventory", "", "archivo JSON con un arreglo de prendas (si se omite, se lee DATABASE_URL)")
	outfitContext := flag.String("context", "", "ocasion: work, date, weekend, wedding...")
	day := flag.String("day", "", "dia YYYY-MM-DD (por defecto hoy en TIMEZONE)")
	season := flag.String("season", "", "temporada opcional: spring, summer, fall, winter, all")
	flag.Parse()

	ctx := context.Background()
	_ = godotenv.Load()

	garments, err := loadGarments(ctx, *inventoryPath)
	if err != nil {
		log.Fatal(err)
	}

	opts, err := buildOptions(*day, *season, time.Now())
	if err != nil {
		log.Fatal(err)
	}

	plan := planner.BuildPlan(garments, *outfitContext, opts)
	if err := writePlan(os.Stdout, plan); err != nil {
		log.Fatal(err)
	}
}

func loadGarments(ctx context.Context, path string) ([]domain.Garment, error) {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open inventory: %w", err)
		}
		defer f.Close()
		return decodeInventory(f)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	defer pool.Close()
	return repository.NewPgGarmentRepository(pool).List(ctx)
}

func decodeInventory(r io.Reader) ([]domain.Garment, error) {
	var garments []domain.Garment
	if err := json.NewDecoder(r).Decode(&garments); err != nil {
		return nil, fmt.Errorf("decode inventory: %w", err)
	}
	return garments, nil
}

func buildOptions(day, season string, now time.Time) (planner.Options, error) {
	opts := planner.Options{Day: day}
	if opts.Day == "" {
		location := time.UTC
		if tz := os.Getenv("TIMEZONE"); tz != "" {
			loc, err := time.LoadLocation(tz)
			if err != nil {
				return planner.Options{}, fmt.Errorf("load timezone %q: %w", tz, err)
			}
			location = loc
		}
		opts.Day = planner.DayKey(now.In(location))
	} else if _, err := time.Parse(planner.DayLayout, opts.Day); err != nil {
		return planner.Options{}, fmt.Errorf("invalid -day %q: %w", opts.Day, err)
	}
	if season != "" {
		s, ok := domain.ParseSeason(season)
		if !ok {
			return planner.Options{}, fmt.Errorf("unknown season %q", season)
		}
		opts.Season = &s
	}
	return opts, nil
}

func writePlan(w io.Writer, plan planner.Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}
