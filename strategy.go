package efg

import (
	"encoding/gob"
	"io"
	"math"

	gzip "github.com/klauspost/pgzip"
	"github.com/pkg/errors"

	"github.com/timpalpant/efg/gamestate"
)

// Strategy is a behavioral strategy for one player: for each information
// set, a probability for each of its actions (in action order).
type Strategy map[int][]float64

// Probability returns the probability of the given action in infoSet.
// Information sets without an entry have probability zero.
func (s Strategy) Probability(infoSet, action int) float64 {
	p := s[infoSet]
	if action < 0 || action >= len(p) {
		return 0
	}
	return p[action]
}

// Profile holds one Strategy per player.
type Profile [gamestate.NumPlayers]Strategy

func NewProfile() Profile {
	return Profile{make(Strategy), make(Strategy)}
}

// UniformProfile returns the profile where every player mixes uniformly
// over the actions of every information set.
func UniformProfile(g *Game) Profile {
	profile := NewProfile()
	for p := range profile {
		player := gamestate.Player(p)
		for _, is := range g.InfoSets(player) {
			n := len(g.ActionsAt(player, is))
			probs := make([]float64, n)
			for i := range probs {
				probs[i] = 1.0 / float64(n)
			}
			profile[p][is] = probs
		}
	}
	return profile
}

// Validate checks that every information set of the game has a
// probability vector of the right length summing to one within tol.
func (p Profile) Validate(g *Game, tol float64) error {
	for i, s := range p {
		player := gamestate.Player(i)
		for _, is := range g.InfoSets(player) {
			probs, ok := s[is]
			if !ok {
				return errors.Errorf("%v: missing information set %d", player, is)
			}
			if n := len(g.ActionsAt(player, is)); len(probs) != n {
				return errors.Errorf("%v: information set %d has %d probabilities for %d actions",
					player, is, len(probs), n)
			}

			total := 0.0
			for _, x := range probs {
				if x < -tol {
					return errors.Errorf("%v: information set %d has negative probability %v", player, is, x)
				}
				total += x
			}
			if math.Abs(total-1.0) > tol {
				return errors.Errorf("%v: information set %d probabilities sum to %v", player, is, total)
			}
		}
	}
	return nil
}

// SaveTo writes the profile as gzip-compressed gob.
func (p Profile) SaveTo(w io.Writer) error {
	gzw := gzip.NewWriter(w)
	enc := gob.NewEncoder(gzw)
	for _, s := range p {
		if err := enc.Encode(s); err != nil {
			gzw.Close()
			return errors.Wrap(err, "encoding strategy")
		}
	}
	return gzw.Close()
}

// LoadProfile reads a profile written by SaveTo.
func LoadProfile(r io.Reader) (Profile, error) {
	var profile Profile
	gzr, err := gzip.NewReader(r)
	if err != nil {
		return profile, errors.Wrap(err, "opening profile")
	}
	defer gzr.Close()

	dec := gob.NewDecoder(gzr)
	for i := range profile {
		if err := dec.Decode(&profile[i]); err != nil {
			return profile, errors.Wrap(err, "decoding strategy")
		}
	}
	return profile, nil
}
