package efg

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/timpalpant/efg/gamestate"
)

func stringsReader(s string) *strings.Reader {
	return strings.NewReader(s)
}

func TestValidate(t *testing.T) {
	g := loadMatchingPennies(t)
	if err := UniformProfile(g).Validate(g, 1e-4); err != nil {
		t.Errorf("uniform profile is invalid: %v", err)
	}

	bad := pureProfile(0, 0)
	bad[gamestate.Player2][0] = []float64{0.5, 0.4}
	err := bad.Validate(g, 1e-4)
	if err == nil {
		t.Error("expected error for probabilities that do not sum to 1")
	} else if trace := fmt.Sprintf("%+v", err); !strings.Contains(trace, "Profile.Validate") {
		t.Errorf("expected a stack trace through Validate, got %q", trace)
	}

	missing := pureProfile(0, 0)
	delete(missing[gamestate.Player1], 0)
	if err := missing.Validate(g, 1e-4); err == nil {
		t.Error("expected error for missing info set")
	}
}

func TestSaveLoadProfile(t *testing.T) {
	profile := pureProfile(1, 0)
	profile[gamestate.Player1][3] = []float64{0.25, 0.75}

	var buf bytes.Buffer
	if err := profile.SaveTo(&buf); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadProfile(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(profile, loaded) {
		t.Errorf("expected %v, got %v", profile, loaded)
	}
}

type brokenWriter struct {
	writes atomic.Int64
}

func (w *brokenWriter) Write(p []byte) (int, error) {
	w.writes.Add(1)
	return 0, fmt.Errorf("disk full")
}

func TestSaveToWriterError(t *testing.T) {
	// Large enough that the compressor flushes blocks while encoding.
	profile := NewProfile()
	for is := 0; is < 1<<17; is++ {
		profile[gamestate.Player1][is] = []float64{float64(is), 0.5}
	}

	w := &brokenWriter{}
	if err := profile.SaveTo(w); err == nil {
		t.Error("expected error from failing writer")
	}
	if w.writes.Load() == 0 {
		t.Error("expected the compressor to reach the writer")
	}
}
