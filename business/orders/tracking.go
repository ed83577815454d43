package orders

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"shirtshop/pkg/logger"
)

const trackingTagPrefix = "TAG"

// TagSequence hands out the next number for a given day key. The redis
// implementation keeps tags unique across processes.
type TagSequence interface {
	Next(ctx context.Context, day string) (int64, error)
}

// TrackingTagGenerator produces human-readable tags like TAG-20251023-00012.
type TrackingTagGenerator struct {
	seq TagSequence
	// local is the fallback counter when the sequence backend is down. The
	// tag is a label, not a key, so a process-local number is acceptable.
	local atomic.Int64
}

func NewTrackingTagGenerator(seq TagSequence) *TrackingTagGenerator {
	return &TrackingTagGenerator{seq: seq}
}

func (g *TrackingTagGenerator) NextTag(ctx context.Context) string {
	day := time.Now().Format("20060102")

	var n int64
	if g.seq != nil {
		v, err := g.seq.Next(ctx, day)
		if err == nil {
			n = v
		} else {
			logger.Error("tag sequence unavailable, using local counter", err)
		}
	}
	if n == 0 {
		n = g.local.Add(1)
	}

	n = (n-1)%99999 + 1
	return fmt.Sprintf("%s-%s-%05d", trackingTagPrefix, day, n)
}
