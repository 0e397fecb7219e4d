// Command voltmargin sweeps the bundled fixture networks from base load
// to just past their voltage-collapse point, prints one table of margin
// records per network, and saves the margin tracks as charts.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	"github.com/katalvlaran/voltmargin/gridtest"
	"github.com/katalvlaran/voltmargin/sweep"
)

const (
	// sweepOvershoot pushes the last multiplier past collapse so the
	// divergence tail shows up in the records.
	sweepOvershoot = 1.05

	starLegs      = 3
	chainSegments = 4
)

type config struct {
	network string
	points  int
	workers int
	out     string
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("voltmargin: ")

	cfg := parseFlags()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	nets, err := selectNetworks(cfg.network)
	if err != nil {
		log.Fatal(err)
	}
	if err := os.MkdirAll(cfg.out, 0o755); err != nil {
		log.Fatalf("output directory: %v", err)
	}

	for _, net := range nets {
		if err := sweepNetwork(ctx, cfg, net); err != nil {
			log.Fatalf("%s: %v", net.Name, err)
		}
	}
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.network, "network", "all", "network to sweep: twobus, star, chain or all")
	flag.IntVar(&cfg.points, "points", 200, "number of load multipliers per sweep")
	flag.IntVar(&cfg.workers, "workers", runtime.NumCPU(), "concurrent scenarios")
	flag.StringVar(&cfg.out, "out", "figures", "directory for chart output")
	flag.Parse()

	if cfg.points < 2 {
		log.Fatalf("need at least 2 points, got %d", cfg.points)
	}
	if cfg.workers < 1 {
		log.Fatalf("need at least 1 worker, got %d", cfg.workers)
	}

	return cfg
}

func selectNetworks(name string) ([]gridtest.Network, error) {
	switch name {
	case "twobus":
		return []gridtest.Network{gridtest.TwoBus()}, nil
	case "star":
		return []gridtest.Network{gridtest.Star(starLegs)}, nil
	case "chain":
		return []gridtest.Network{gridtest.Chain(chainSegments)}, nil
	case "all":
		return []gridtest.Network{
			gridtest.TwoBus(),
			gridtest.Star(starLegs),
			gridtest.Chain(chainSegments),
		}, nil
	default:
		return nil, fmt.Errorf("unknown network %q (want twobus, star, chain or all)", name)
	}
}

func sweepNetwork(ctx context.Context, cfg config, net gridtest.Network) error {
	lam, err := net.CollapseMultiplier()
	if err != nil {
		return err
	}
	log.Printf("%s: collapse expected at multiplier %.3f", net.Name, lam)

	mults := linspace(1, sweepOvershoot*lam, cfg.points)
	recs, err := sweep.Run(ctx, net.Topo, gridtest.NewExactSolver(net), mults,
		sweep.WithWorkers(cfg.workers))
	if err != nil {
		return err
	}

	var diverged int
	for _, rec := range recs {
		if !rec.Converged {
			diverged++
		}
	}
	log.Printf("%s: %d scenarios, %d past collapse", net.Name, len(recs), diverged)

	fmt.Printf("\n== %s ==\n", net.Name)
	if err := sweep.WriteTable(os.Stdout, recs); err != nil {
		return err
	}

	chart := filepath.Join(cfg.out, net.Name+"_margins.svg")
	if err := sweep.SaveChart(chart, recs); err != nil {
		return err
	}
	log.Printf("%s: wrote %s", net.Name, chart)

	if err := ctx.Err(); err != nil {
		return errors.New("interrupted")
	}

	return nil
}

// linspace spreads n points evenly over [lo, hi] inclusive.
func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi

	return out
}
