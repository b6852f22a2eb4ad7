package efg

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

func TestString(t *testing.T) {
	g := loadMatchingPennies(t)
	gold := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	gold.Assert(t, "matching_pennies", []byte(g.String()))
}
