// Print a game file in canonical form, with optional statistics.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/timpalpant/efg"
	"github.com/timpalpant/efg/gamestate"
)

func main() {
	gameFile := flag.String("game", "", "Game file to print (.efg)")
	stats := flag.Bool("stats", false, "Print sizes instead of the tree")
	flag.Parse()

	game, err := efg.LoadFile(*gameFile)
	if err != nil {
		glog.Fatal(err)
	}

	if !*stats {
		if _, err := game.WriteTo(os.Stdout); err != nil {
			glog.Fatal(err)
		}
		return
	}

	fmt.Printf("%d nodes.\n", game.NumNodes())
	for _, p := range []gamestate.Player{gamestate.Player1, gamestate.Player2} {
		lo, hi := game.PayoffRange(p)
		fmt.Printf("%v: %d information sets, %d sequences, payoffs in [%v, %v].\n",
			p, game.NumInfoSets(p), game.NumSequences(p), lo, hi)
	}
}
