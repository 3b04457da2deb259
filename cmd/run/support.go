package main

import (
	"context"
	"crypto/rand"
	"flag"
	"log"
	"math"
	"math/big"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/zintix-labs/floatrand/sdk/core"
	"github.com/zintix-labs/floatrand/sdk/perf"
	"github.com/zintix-labs/floatrand/sim"
	"github.com/zintix-labs/floatrand/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var cfg *config = new(config)

type config struct {
	kind      string // range | normal
	interval  string
	method    string
	bits      int
	mean      float64
	sigma     float64
	samples   int
	worker    int
	bins      int
	prng      string
	format    string
	progress  bool
	seed      int64
	pprofmode perf.Mode
}

type pprofFlag struct{ p *perf.Mode }

func (f pprofFlag) String() string {
	if f.p == nil {
		return ""
	}
	return string(*f.p)
}
func (f pprofFlag) Set(s string) error {
	m, err := perf.ParseMode(s)
	if err != nil {
		return err
	}
	*f.p = m
	return nil
}

func bindVar() {
	// 綁定 Flag 到本地變數的指標 (&)
	flag.StringVar(&cfg.kind, "kind", "normal", "what to verify: range | normal")
	flag.StringVar(&cfg.interval, "interval", "[0,1)", "interval notation for range, e.g. [0,1) (,] [-1e300,1e300]")
	flag.StringVar(&cfg.method, "method", string(sim.MethodApprox), "normal method: "+methodList())
	flag.IntVar(&cfg.bits, "bits", 64, "float precision: 32 | 64")
	flag.Float64Var(&cfg.mean, "mean", 0, "normal mean")
	flag.Float64Var(&cfg.sigma, "sigma", 1, "normal standard deviation")
	flag.IntVar(&cfg.samples, "n", 10000000, "number of samples")
	flag.IntVar(&cfg.worker, "worker", runtime.NumCPU(), "number of workers")
	flag.IntVar(&cfg.bins, "bins", stats.DefaultBins, "histogram bins for range")
	flag.StringVar(&cfg.prng, "prng", "pcg64", "base generator: pcg64 | pcg32")
	flag.StringVar(&cfg.format, "format", "table", "report format: table | json | yaml")
	flag.BoolVar(&cfg.progress, "progress", true, "show progress bar")
	flag.Int64Var(&cfg.seed, "seed", -1, "int64 seed for random number generator")
	flag.Var(pprofFlag{&cfg.pprofmode}, "p", "pprof: '', cpu, heap, allocs")

	flag.Parse()

	// given seed illeagel -> default seed
	if cfg.seed < 0 {
		seed, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
		if err != nil {
			log.Fatal(err)
		}
		cfg.seed = seed.Int64()
	}
}

func methodList() string {
	ms := sim.Methods()
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = string(m)
	}
	return strings.Join(names, " | ")
}

// 這裡解析並分支要執行的驗證
func executeSimulator() {
	cfg.valid() // 基本檢查

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := sim.NewWithFactory(cfg.factory(), cfg.seed).ShowProgress(cfg.progress && cfg.format == "table")
	render := cfg.render()

	green := "\033[1;32m"
	reset := "\033[0m"
	p := message.NewPrinter(language.English)

	switch cfg.kind {
	case "range":
		job := sim.RangeJob{Interval: cfg.interval, Bits: cfg.bits, Bins: cfg.bins}
		if render == nil {
			p.Printf("%s[WORKERS:%d] [RANGE:%s] [BITS:%d] [SAMPLES:%d] [SEED:%d]%s\n", green, cfg.worker, cfg.interval, cfg.bits, cfg.samples, s.Seed(), reset)
		}
		rep, used, err := s.Range(ctx, job, cfg.samples, cfg.worker)
		if err != nil {
			log.Fatal(err)
		}
		if render == nil {
			rep.StdOut(used)
			return
		}
		if err := rep.WriteWith(os.Stdout, render); err != nil {
			log.Fatal(err)
		}
	default:
		job := sim.NormalJob{Method: sim.Method(cfg.method), Bits: cfg.bits, Mean: cfg.mean, Sigma: cfg.sigma}
		if render == nil {
			p.Printf("%s[WORKERS:%d] [NORMAL:%s] [BITS:%d] [N(%g,%g²)] [SAMPLES:%d] [SEED:%d]%s\n", green, cfg.worker, cfg.method, cfg.bits, cfg.mean, cfg.sigma, cfg.samples, s.Seed(), reset)
		}
		rep, used, err := s.Normal(ctx, job, cfg.samples, cfg.worker)
		if err != nil {
			log.Fatal(err)
		}
		if render == nil {
			rep.StdOut(used)
			return
		}
		if err := rep.WriteWith(os.Stdout, render); err != nil {
			log.Fatal(err)
		}
	}
}

func (cfg *config) factory() core.PRNGFactory {
	if cfg.prng == "pcg32" {
		return &core.PCG32Factory{}
	}
	return core.Default()
}

// render 為 nil 時輸出含耗時的表格
func (cfg *config) render() stats.ReportRender {
	switch cfg.format {
	case "json":
		return &stats.JsonReportRender{}
	case "yaml":
		return &stats.YAMLReportRender{}
	default:
		return nil
	}
}

func (cfg *config) valid() {
	p := message.NewPrinter(language.English)

	if cfg.kind != "range" && cfg.kind != "normal" {
		log.Fatalf("value err : kind must be range or normal, got %q", cfg.kind)
	}
	if cfg.bits != 32 && cfg.bits != 64 {
		log.Fatalf("value err : bits must be 32 or 64, got %d", cfg.bits)
	}
	if cfg.prng != "pcg64" && cfg.prng != "pcg32" {
		log.Fatalf("value err : prng must be pcg64 or pcg32, got %q", cfg.prng)
	}
	switch cfg.format {
	case "table", "json", "yaml":
	default:
		log.Fatalf("value err : format must be table, json or yaml, got %q", cfg.format)
	}

	// 工作協程檢查(併發數)
	if cfg.worker < 1 {
		log.Fatal("value err : workers must > 0")
	}
	if cfg.samples < 1 {
		log.Fatal("value err : samples must > 0")
	}
	if cfg.bins < 1 || cfg.bins > stats.MaxBins {
		log.Fatalf("value err : bins must be between 1 and %d", stats.MaxBins)
	}
	// 常態驗證要保留全部樣本做 KS，超過就縮小
	if cfg.kind == "normal" && cfg.samples > 100_000_000 {
		p.Printf("too much samples for normal check: %d resized to 100M\n", cfg.samples)
		cfg.samples = 100_000_000
	}
	if cfg.worker > cfg.samples {
		cfg.worker = cfg.samples
	}
}
