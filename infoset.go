package efg

import (
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/timpalpant/efg/gamestate"
)

// InfoSet identifies a player's information set and the number of actions
// available in it.
type InfoSet struct {
	Player     gamestate.Player
	ID         int
	NumActions int
}

// Key returns a compact string usable as a map key.
func (is *InfoSet) Key() string {
	buf, _ := is.MarshalBinary()
	return *(*string)(unsafe.Pointer(&buf))
}

func (is *InfoSet) String() string {
	return fmt.Sprintf("%v:%d", is.Player, is.ID)
}

func (is *InfoSet) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 1, 1+2*binary.MaxVarintLen64)
	buf[0] = byte(is.Player)
	buf = binary.AppendVarint(buf, int64(is.ID))
	buf = binary.AppendUvarint(buf, uint64(is.NumActions))
	return buf, nil
}

func (is *InfoSet) UnmarshalBinary(buf []byte) error {
	if len(buf) < 3 {
		return errors.Errorf("info set too short: %d bytes", len(buf))
	}
	if int(buf[0]) >= gamestate.NumPlayers {
		return errors.Errorf("invalid player: %d", buf[0])
	}
	is.Player = gamestate.Player(buf[0])
	buf = buf[1:]

	id, n := binary.Varint(buf)
	if n <= 0 {
		return errors.New("invalid info set id")
	}
	buf = buf[n:]

	nActions, n := binary.Uvarint(buf)
	if n <= 0 || n != len(buf) {
		return errors.New("invalid number of actions")
	}

	is.ID = int(id)
	is.NumActions = int(nActions)
	return nil
}

func init() {
	gob.Register(&InfoSet{})
}
