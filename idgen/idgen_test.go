package idgen

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idPattern = regexp.MustCompile(`^\d+-[0-9a-z]{9}$`)

func TestTimeRandomFormat(t *testing.T) {
	g := NewTimeRandom()
	g.now = func() time.Time { return time.UnixMilli(1700000000123) }

	id := g.NewID()
	require.Regexp(t, idPattern, id)
	assert.Equal(t, "1700000000123", id[:13])
}

func TestTimeRandomDoesNotCollide(t *testing.T) {
	g := NewTimeRandom()
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := g.NewID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestSequence(t *testing.T) {
	s := &Sequence{Prefix: "p"}
	assert.Equal(t, "p-1", s.NewID())
	assert.Equal(t, "p-2", s.NewID())
}

func TestFunc(t *testing.T) {
	var g Generator = Func(func() string { return "fixed" })
	assert.Equal(t, "fixed", g.NewID())
}
