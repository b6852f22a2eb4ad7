package gamestate

import (
	"github.com/pkg/errors"
)

// Player represents the identity of a player in the game.
// Players are stored zero-based; the game file numbers them from 1.
type Player uint8

const (
	Player1 Player = iota
	Player2
)

// NumPlayers is the number of (non-nature) players in a game.
const NumPlayers = 2

var playerStr = [...]string{
	"Player1",
	"Player2",
}

func (p Player) String() string {
	return playerStr[p]
}

// Opponent returns the other player.
func (p Player) Opponent() Player {
	return 1 - p
}

// Number returns the one-based player number used in game files.
func (p Player) Number() int {
	return int(p) + 1
}

// PlayerFromNumber converts a one-based player number into a Player.
func PlayerFromNumber(n int) (Player, error) {
	if n < 1 || n > NumPlayers {
		return 0, errors.Errorf("invalid player number: %d", n)
	}

	return Player(n - 1), nil
}

// NodeType represents who (if anyone) acts at a node of the game tree.
type NodeType uint8

const (
	_ NodeType = iota
	ChanceNode
	PlayerNode
	TerminalNode
)

var nodeTypeStr = [...]string{
	"Invalid",
	"Chance",
	"Player",
	"Terminal",
}

func (nt NodeType) String() string {
	return nodeTypeStr[nt]
}
