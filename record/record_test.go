package record

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/data"
)

func TestRecordChannels(t *testing.T) {
	r := New(3)
	assert.Equal(t, 3, r.Row)
	assert.True(t, math.IsNaN(r.XMin))
	assert.True(t, r.Get(aes.YMax).IsNull(), "unset bound")

	for _, c := range aes.Channels() {
		r.Set(c, data.Int(int64(c)+1))
	}
	for _, c := range aes.Channels() {
		f, ok := r.Get(c).Float()
		assert.True(t, ok, c.String())
		assert.Equal(t, float64(c)+1, f, c.String())
	}
	assert.Equal(t, float64(aes.XMin)+1, r.XMin)

	r.Set(aes.YMin, data.Str("low"))
	assert.True(t, math.IsNaN(r.YMin))
}

func TestClone(t *testing.T) {
	r := New(0)
	r.SetStat("count", data.Int(4))
	c := r.Clone()
	c.SetStat("count", data.Int(5))
	c.X = data.Int(1)
	assert.Equal(t, data.Int(4), r.Stat("count"))
	assert.True(t, r.X.IsNull())

	all := CloneAll([]Record{r, c})
	all[0].SetStat("prop", data.Float(0.5))
	assert.True(t, r.Stat("prop").IsNull())
}

func TestVisualValid(t *testing.T) {
	v := Visual{X: 0.5, Y: 0.5}
	assert.True(t, v.Valid())
	v.Y = math.NaN()
	assert.False(t, v.Valid())
	v.Y = math.Inf(1)
	assert.False(t, v.Valid())
}
