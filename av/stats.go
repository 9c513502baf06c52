package av

import (
	"fmt"
	"sort"
	"sync/atomic"
	"time"
)

// Stage identifies an observer point in the pipeline.
type Stage int

const (
	StageRecord Stage = iota
	StagePlaybackBeforeMixing
	StageMixed
	StagePlayback
	StageCapture
	StagePreEncode
	StageRender
	numStages
)

func (s Stage) String() string {
	switch s {
	case StageRecord:
		return "record"
	case StagePlaybackBeforeMixing:
		return "playback_before_mixing"
	case StageMixed:
		return "mixed"
	case StagePlayback:
		return "playback"
	case StageCapture:
		return "capture"
	case StagePreEncode:
		return "pre_encode"
	case StageRender:
		return "render"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// StageStats counts frames that passed or were dropped at one stage.
type StageStats struct {
	Delivered uint64
	Dropped   uint64
}

// ViewStats describes one render view.
type ViewStats struct {
	UID       uint32
	SessionID string // empty for the built-in renderer
	External  bool   // false when the built-in renderer is in use
	State     string
	Delivered uint64
	Dropped   uint64
	Width     int // last size reported by the renderer
	Height    int
}

// Stats is a point-in-time snapshot of engine counters.
type Stats struct {
	Stages           map[Stage]StageStats
	Views            []ViewStats // sorted by UID
	PlayoutQueued    time.Duration
	PlayoutUnderruns uint64
	PlayoutRejected  uint64
}

// stageCounters holds the atomic counters behind StageStats.
type stageCounters struct {
	delivered atomic.Uint64
	dropped   atomic.Uint64
}

type engineCounters struct {
	stages           [numStages]stageCounters
	playoutUnderruns atomic.Uint64
	playoutRejected  atomic.Uint64
}

// count records the outcome of one observer call.
func (c *engineCounters) count(s Stage, delivered bool) {
	if delivered {
		c.stages[s].delivered.Add(1)
	} else {
		c.stages[s].dropped.Add(1)
	}
}

// Stats returns a snapshot of the engine counters. Counters may advance
// concurrently with the call.
func (e *Engine) Stats() Stats {
	st := Stats{
		Stages:           make(map[Stage]StageStats, numStages),
		PlayoutUnderruns: e.counters.playoutUnderruns.Load(),
		PlayoutRejected:  e.counters.playoutRejected.Load(),
	}
	for s := Stage(0); s < numStages; s++ {
		st.Stages[s] = StageStats{
			Delivered: e.counters.stages[s].delivered.Load(),
			Dropped:   e.counters.stages[s].dropped.Load(),
		}
	}

	if rate := e.opts.playoutBytesPerSecond(); rate > 0 {
		st.PlayoutQueued = time.Duration(e.playout.Len()) * time.Second / time.Duration(rate)
	}

	e.mu.RLock()
	for _, v := range e.views {
		st.Views = append(st.Views, v.stats())
	}
	e.mu.RUnlock()
	sort.Slice(st.Views, func(i, j int) bool { return st.Views[i].UID < st.Views[j].UID })

	return st
}
