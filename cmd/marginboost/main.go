// Command marginboost trains an LPBoost or ERLPBoost ensemble of decision
// stumps from a YAML run configuration.
//
//	marginboost run.yaml
//	marginboost --algorithm lpboost --max-rounds 200 run.yaml
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	arg "github.com/alexflint/go-arg"
	"github.com/dustin/go-humanize"

	"github.com/YuminosukeSato/marginboost/booster"
	"github.com/YuminosukeSato/marginboost/core/model"
	"github.com/YuminosukeSato/marginboost/core/sample"
	"github.com/YuminosukeSato/marginboost/metrics"
	"github.com/YuminosukeSato/marginboost/pkg/config"
	"github.com/YuminosukeSato/marginboost/pkg/errors"
	"github.com/YuminosukeSato/marginboost/pkg/log"
	"github.com/YuminosukeSato/marginboost/research"
	"github.com/YuminosukeSato/marginboost/weaklearner"
)

type args struct {
	Config    string `arg:"positional,required" help:"YAML run configuration"`
	Algorithm string `help:"override algorithm (lpboost or erlpboost)"`
	MaxRounds int    `arg:"--max-rounds" help:"override the round budget"`
	LogLevel  string `arg:"--log-level" help:"override log level"`
	Quiet     bool   `help:"suppress per-round status lines"`
}

func (args) Description() string {
	return "Trains a soft margin boosting ensemble and writes the requested artifacts."
}

func main() {
	var a args
	arg.MustParse(&a)

	if err := run(a, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "marginboost: %v\n", err)
		os.Exit(1)
	}
}

func run(a args, out io.Writer) error {
	cfg, err := config.Load(a.Config)
	if err != nil {
		return err
	}
	if a.Algorithm != "" {
		cfg.Algorithm = strings.ToLower(a.Algorithm)
	}
	if a.MaxRounds > 0 {
		cfg.MaxRounds = a.MaxRounds
	}
	if a.LogLevel != "" {
		cfg.LogLevel = a.LogLevel
	}
	if a.Quiet {
		cfg.Output.PrintEvery = 0
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := log.SetupLogger(cfg.LogLevel); err != nil {
		return err
	}
	logger := log.GetLoggerWithName("cli")

	train, err := loadSource(cfg.Data.Train)
	if err != nil {
		return errors.Wrap(err, "load train sample")
	}
	test := train
	if cfg.Data.Test != nil {
		if test, err = loadSource(*cfg.Data.Test); err != nil {
			return errors.Wrap(err, "load test sample")
		}
	}

	b, err := newBooster(cfg, train)
	if err != nil {
		return err
	}
	oracle := weaklearner.NewStumpLearner()
	if cfg.WeakLearner.ParallelThreshold > 0 {
		oracle = weaklearner.NewStumpLearner(weaklearner.WithParallelThreshold(cfg.WeakLearner.ParallelThreshold))
	}

	timeLimit, _ := cfg.Output.GetTimeLimit()
	printEvery := cfg.Output.PrintEvery
	if printEvery == 0 && !a.Quiet {
		printEvery = research.DefaultPrintEvery
	}
	runner, err := research.NewRunner(b, oracle, research.SoftMargin{Nu: b.Nu()}, train, test,
		research.WithMaxRounds(cfg.MaxRounds),
		research.WithTimeLimit(timeLimit),
		research.WithPrintEvery(printEvery),
		research.WithOutput(out),
	)
	if err != nil {
		return err
	}

	start := time.Now()
	var rep *research.Report
	if cfg.Output.LogCSV != "" {
		rep, err = runner.RunToFile(cfg.Output.LogCSV)
	} else {
		rep, err = runner.Run(io.Discard)
	}
	if err != nil {
		return err
	}

	if err := writeArtifacts(cfg, b, rep); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: %s hypotheses after %s rounds, train accuracy %.4f, test accuracy %.4f (%s)\n",
		b.Algorithm(),
		humanize.Comma(int64(rep.Model.Len())),
		humanize.Comma(int64(rep.Rounds)),
		metrics.Accuracy(train, rep.Model),
		metrics.Accuracy(test, rep.Model),
		time.Since(start).Round(time.Millisecond),
	)
	logger.Info("run finished",
		log.AlgorithmKey, b.Algorithm(),
		log.RoundKey, rep.Rounds,
		log.HypothesesKey, rep.Model.Len(),
		log.PrimalBoundKey, b.PrimalBound(),
		log.DualBoundKey, b.DualBound(),
	)
	return nil
}

func loadSource(src config.Source) (*sample.Sample, error) {
	var (
		s   *sample.Sample
		err error
	)
	if src.IsCSV() {
		s, err = sample.FromCSVFile(src.CSV, src.TargetColumn)
	} else {
		s, err = sample.FromNpy(src.Features, src.Target)
	}
	if err != nil {
		return nil, err
	}
	if src.Positive != 0 {
		s = s.BinarizeTarget(src.Positive)
	}
	return s, nil
}

func newBooster(cfg *config.Config, train *sample.Sample) (*booster.Booster, error) {
	var opts []booster.Option
	if cfg.Tolerance > 0 {
		opts = append(opts, booster.WithTolerance(cfg.Tolerance))
	}
	switch {
	case cfg.Nu > 0:
		opts = append(opts, booster.WithNu(cfg.Nu))
	case cfg.NuRatio > 0:
		opts = append(opts, booster.WithNuRatio(cfg.NuRatio))
	}

	if cfg.Algorithm == config.AlgorithmLPBoost {
		return booster.NewLPBoost(train, opts...)
	}
	return booster.NewERLPBoost(train, opts...)
}

func writeArtifacts(cfg *config.Config, b *booster.Booster, rep *research.Report) error {
	if path := cfg.Output.Plot; path != "" {
		if err := research.PlotBounds(rep.Records, path); err != nil {
			return err
		}
	}
	if path := cfg.Output.Graph; path != "" {
		if err := research.RenderEnsembleFile(rep.Model, path); err != nil {
			return err
		}
	}
	if path := cfg.Output.ModelJSON; path != "" {
		ew := rep.Model.Export(b.Algorithm())
		ew.Hyperparameters = map[string]interface{}{
			"tolerance": b.Tolerance(),
			"nu":        b.Nu(),
		}
		if b.MaxIter() > 0 {
			ew.Hyperparameters["eta"] = b.Eta()
			ew.Hyperparameters["max_iter"] = b.MaxIter()
		}
		ew.Metadata["rounds"] = rep.Rounds
		ew.Metadata["converged"] = rep.Converged
		ew.Metadata["primal_bound"] = b.PrimalBound()
		ew.Metadata["dual_bound"] = b.DualBound()
		ew.Metadata["run"] = b.Snapshot()
		if err := model.SaveWeights(ew, path); err != nil {
			return err
		}
	}
	return nil
}
