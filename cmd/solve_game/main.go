// Solve a two-player extensive-form game for one player's optimal strategy.
package main

import (
	"context"
	"flag"
	"math/rand"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"sort"

	"github.com/golang/glog"

	"github.com/timpalpant/efg"
	"github.com/timpalpant/efg/config"
	"github.com/timpalpant/efg/gamestate"
	"github.com/timpalpant/efg/solver"
)

func main() {
	gameFile := flag.String("game", "", "Game file to solve (.efg)")
	configFile := flag.String("config", "", "YAML file with solver settings")
	outputYAML := flag.String("output_yaml", "", "File to save the solution report to")
	outputProfile := flag.String("output_profile", "", "File to save the solved profile to")
	dumpModel := flag.String("dump_model", "", "File to write each program to in LP format")
	numPlayouts := flag.Int("num_playouts", 0, "Number of games to sample with the solved profile")
	fpIters := flag.Int("fictitious_play_iters", 0,
		"Number of fictitious play iterations to cross-check the value with (small games only)")
	printBeliefs := flag.Bool("print_beliefs", false,
		"Log the opponent's beliefs at each of its information sets under the solution")
	evalProfile := flag.String("eval_profile", "",
		"Profile saved by -output_profile to evaluate against the solved game")
	merges := flag.String("merge_infosets", "",
		"Information sets to merge during playouts, as player:from:to[,player:from:to...]")
	seed := flag.Int64("seed", 123, "Random seed")
	flag.Parse()

	go http.ListenAndServe("localhost:4123", nil)

	cfg, err := config.Load(*configFile)
	if err != nil {
		glog.Fatal(err)
	}
	opts, err := cfg.SolverOptions()
	if err != nil {
		glog.Fatal(err)
	}

	game, err := efg.LoadFile(*gameFile)
	if err != nil {
		glog.Fatal(err)
	}

	if *dumpModel != "" {
		f, err := os.Create(*dumpModel)
		if err != nil {
			glog.Fatal(err)
		}
		defer f.Close()
		opts.ModelOutput = f
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var result *solver.Result
	if cfg.DoubleOracle {
		var history []solver.Iteration
		result, history, err = solver.RunDoubleOracle(ctx, game, opts, cfg.MaxIterations)
		if err == nil {
			glog.Infof("Double oracle finished after %d iterations", len(history))
		}
	} else {
		result, err = solver.New(game, opts).Solve(ctx)
	}
	if err != nil {
		glog.Fatal(err)
	}

	glog.Infof("Value for %v: %v (%d variables, %d constraints)",
		result.Player, result.Value, result.NumVars, result.NumConstraints)
	if err := result.Profile.Validate(game, 1e-4); err != nil {
		glog.Warningf("Solved profile is not valid: %v", err)
	}

	if *outputYAML != "" {
		mustSave(*outputYAML, func(f *os.File) error { return result.WriteYAML(f, game) })
	}
	if *outputProfile != "" {
		mustSave(*outputProfile, func(f *os.File) error { return result.Profile.SaveTo(f) })
	}

	if *printBeliefs {
		logBeliefs(game, result)
	}

	if *evalProfile != "" {
		evaluateProfile(game, *evalProfile, result.Player)
	}

	rng := rand.New(rand.NewSource(*seed))
	if *numPlayouts > 0 {
		playoutGame := game
		if *merges != "" {
			a, err := efg.ParseAbstraction(*merges)
			if err != nil {
				glog.Fatal(err)
			}
			if playoutGame, err = game.WithAbstraction(a); err != nil {
				glog.Fatal(err)
			}
		}
		samplePlayouts(playoutGame, result, *numPlayouts, rng)
	}
	if *fpIters > 0 {
		crossCheck(game, result, *fpIters, rng)
	}
}

// crossCheck compares fictitious play on the normal form with the exact
// expected value of the solved profile. Neither averages merged leaves,
// so both can differ from the program value when symmetric actions have
// different payoffs.
func crossCheck(game *efg.Game, result *solver.Result, nIter int, rng *rand.Rand) {
	eval, err := solver.Evaluate(game, result.Player, result.Profile)
	if err != nil {
		glog.Warningf("Unable to evaluate solved profile: %v", err)
		return
	}

	fp, err := solver.FictitiousPlayValue(game, result.Player, nIter, rng)
	if err != nil {
		glog.Warningf("Unable to cross-check with fictitious play: %v", err)
		return
	}
	glog.Infof("Fictitious play value for %v: %v, solved profile expected value: %v (program value %v averages merged leaves)",
		result.Player, fp, eval.Value, result.Value)
}

// evaluateProfile reports how a saved profile performs for player and
// how much the opponent could gain by deviating from it.
func evaluateProfile(game *efg.Game, filename string, player gamestate.Player) {
	f, err := os.Open(filename)
	if err != nil {
		glog.Fatal(err)
	}
	defer f.Close()

	profile, err := efg.LoadProfile(f)
	if err != nil {
		glog.Fatal(err)
	}
	if err := profile.Validate(game, 1e-4); err != nil {
		glog.Fatalf("Profile %v does not fit the game: %v", filename, err)
	}

	eval, err := solver.Evaluate(game, player, profile)
	if err != nil {
		glog.Fatal(err)
	}
	glog.Infof("Profile %v: expected value for %v: %v, best response value for %v: %v",
		filename, player, eval.Value, player.Opponent(), eval.BestResponseValue)
}

func samplePlayouts(game *efg.Game, result *solver.Result, n int, rng *rand.Rand) {
	total := 0.0
	for i := 0; i < n; i++ {
		gs, err := game.SamplePlayout(result.Profile, rng)
		if err != nil {
			glog.Fatal(err)
		}
		glog.V(2).Infof("Playout %d: %v", i, gs)
		total += gs.Payoff(result.Player)
	}

	glog.Infof("Mean payoff for %v over %d playouts: %v", result.Player, n, total/float64(n))
}

func logBeliefs(game *efg.Game, result *solver.Result) {
	opponent := result.Player.Opponent()
	for _, is := range game.InfoSets(opponent) {
		bs, err := game.NewBeliefState(opponent, is, result.Profile)
		if err != nil {
			glog.Fatal(err)
		}

		sort.Sort(sort.Reverse(bs))
		for i := 0; i < bs.Len(); i++ {
			id, p := bs.Node(i)
			glog.Infof("%v information set %d: node %d (%v) with probability %.4f",
				opponent, is, id, game.Node(id).Name, p)
		}
	}
}

func mustSave(filename string, save func(f *os.File) error) {
	glog.Infof("Saving to: %v", filename)
	f, err := os.Create(filename)
	if err != nil {
		glog.Fatal(err)
	}
	defer f.Close()

	if err := save(f); err != nil {
		glog.Fatal(err)
	}
}
