package sequence

import (
	"fmt"

	"github.com/timpalpant/efg/gamestate"
)

// CrossCheckError reports that the number of sequences assigned during
// encoding disagrees with the number the game declares.
type CrossCheckError struct {
	Player   gamestate.Player
	Encoded  int
	Declared int
}

func (e *CrossCheckError) Error() string {
	return fmt.Sprintf("%v: encoded %d sequences but the game declares %d",
		e.Player, e.Encoded, e.Declared)
}
