package stat

import (
	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/data"
	"github.com/vdobler/ggcore/record"
)

// Identity leaves the data as is: one record per row.
type Identity struct{}

func (Identity) Name() string                     { return "identity" }
func (Identity) Defaults() map[aes.Channel]string { return nil }

func (Identity) Compute(f *aes.Frame) ([]record.Record, error) {
	ids, _ := f.GroupIDs()
	channels := f.Channels()
	recs := make([]record.Record, f.Len())
	for i := range recs {
		r := record.New(f.Rows[i])
		for _, c := range channels {
			if c == aes.Group {
				continue
			}
			r.Set(c, f.At(c, i))
		}
		r.Group = data.Int(int64(ids[i]))
		recs[i] = r
	}
	return recs, nil
}
