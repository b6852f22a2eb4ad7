package solver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timpalpant/efg"
)

// The attacker sees neither the coin nor the defender's choice, so
// the defender's equilibrium is to mix evenly for a value of 0.
const matchingPennies = `EFG 2 R "Matching pennies" { "Defender" "Attacker" } 15 1 1
c "" 0 { "A" 0.5 "B" 0.5 }
p "A" 1 1 0 { "H" "T" }
p "A/H" 2 2 0 { "h" "t" }
t "A/H/h" 3 "" { 1 -1 }
t "A/H/t" 4 "" { -1 1 }
p "A/T" 5 2 0 { "h" "t" }
t "A/T/h" 6 "" { -1 1 }
t "A/T/t" 7 "" { 1 -1 }
p "B" 8 1 0 { "H" "T" }
p "B/H" 9 2 0 { "h" "t" }
t "B/H/h" 10 "" { 1 -1 }
t "B/H/t" 11 "" { -1 1 }
p "B/T" 12 2 0 { "h" "t" }
t "B/T/h" 13 "" { -1 1 }
t "B/T/t" 14 "" { 1 -1 }
`

// The attacker's two X actions are interchangeable; their leaves are
// averaged into one cell per defender action.
const symmetricAttack = `EFG 2 R "Symmetric attack" { "Defender" "Attacker" } 9 1 1
p "" 0 1 0 { "a" "b" }
p "a" 1 2 0 { "X" "X" "Y" }
t "a/X1" 2 "" { 2 -2 }
t "a/X2" 3 "" { 4 -4 }
t "a/Y" 4 "" { 0 0 }
p "b" 5 2 0 { "X" "X" "Y" }
t "b/X1" 6 "" { 1 -1 }
t "b/X2" 7 "" { 1 -1 }
t "b/Y" 8 "" { 5 -5 }
`

// Playing safe is optimal, which leaves the defender's second
// information set without any weight.
const safeOrRisky = `EFG 2 R "Safe or risky" { "Defender" "Attacker" } 8 2 1
p "" 0 1 0 { "safe" "risky" }
t "safe" 1 "" { 1 -1 }
p "risky" 2 2 0 { "u" "v" "u" }
p "risky/u1" 3 1 1 { "hold" "fold" }
t "risky/u1/hold" 4 "" { 0 0 }
t "risky/u1/fold" 5 "" { -1 1 }
t "risky/v" 6 "" { -2 2 }
t "risky/u2" 7 "" { 0 0 }
`

// The attacker picks L or R without seeing the defender, and after L
// picks u or v, again blind. Attacker pure plans Lu, Lv and R give the
// defender 10q, 4-4q and 1+q, where q is the weight on a.
const twoLevelAttack = `EFG 2 R "Two-level attack" { "Defender" "Attacker" } 11 1 2
p "" 0 1 0 { "a" "b" }
p "a" 1 2 0 { "L" "R" }
p "a/L" 2 2 1 { "u" "v" }
t "a/L/u" 3 "" { 10 -10 }
t "a/L/v" 4 "" { 0 0 }
t "a/R" 5 "" { 2 -2 }
p "b" 6 2 0 { "L" "R" }
p "b/L" 7 2 1 { "u" "v" }
t "b/L/u" 8 "" { 0 0 }
t "b/L/v" 9 "" { 4 -4 }
t "b/R" 10 "" { 1 -1 }
`

func mustParse(t *testing.T, input string) *efg.Game {
	g, err := efg.Parse(strings.NewReader(input))
	require.NoError(t, err)
	return g
}
