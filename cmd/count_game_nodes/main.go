// Script to count the nodes of a game tree, or estimate the number
// touched by one external sampling run.
package main

import (
	"expvar"
	"flag"
	"math/rand"
	"net/http"
	_ "net/http/pprof"

	"github.com/golang/glog"

	"github.com/timpalpant/efg"
	"github.com/timpalpant/efg/gamestate"
)

func main() {
	gameFile := flag.String("game", "", "Game file to count (.efg)")
	sampled := flag.Bool("sampled", false, "Sample chance and player 2 actions")
	seed := flag.Int64("seed", 123, "Random seed")
	flag.Parse()

	go http.ListenAndServe("localhost:4125", nil)

	game, err := efg.LoadFile(*gameFile)
	if err != nil {
		glog.Fatal(err)
	}

	root := efg.NewTreeNode(game)
	var total int
	if *sampled {
		rng := rand.New(rand.NewSource(*seed))
		total = countSampledNodes(root, rng)
	} else {
		total = countNodes(root)
	}
	glog.Infof("%d nodes in game", total)
	glog.Infof("Visited: %v", expvar.Get("nodes_visited"))
}

func countNodes(node *efg.TreeNode) int {
	total := 1
	for i := 0; i < node.NumChildren(); i++ {
		total += countNodes(node.GetChild(i))
	}

	node.Close()
	return total
}

func countSampledNodes(node *efg.TreeNode, rng *rand.Rand) int {
	switch node.Type() {
	case gamestate.ChanceNode:
		child, _ := node.SampleChild(rng)
		total := countSampledNodes(child, rng) + 1
		node.Close()
		return total
	case gamestate.PlayerNode:
		if node.Player() == gamestate.Player1 {
			total := 1
			for i := 0; i < node.NumChildren(); i++ {
				total += countSampledNodes(node.GetChild(i), rng)
			}

			node.Close()
			return total
		}

		selected := rng.Intn(node.NumChildren())
		total := countSampledNodes(node.GetChild(selected), rng) + 1
		node.Close()
		return total
	}

	return 1
}
