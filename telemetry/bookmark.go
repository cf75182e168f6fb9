package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkDisturbance   BookmarkType = "disturbance"
	BookmarkSettled       BookmarkType = "settled"
	BookmarkTrackLap      BookmarkType = "track_lap"
	BookmarkFullyRevealed BookmarkType = "fully_revealed"
)

// Detection thresholds.
const (
	disturbanceRatio   = 2.0 // p90 displacement over rolling average
	disturbanceMinDisp = 10.0
	settledDisp        = 1.0 // mean displacement back under this
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Frame       int32        `csv:"frame"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"frame", b.Frame,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable moments across stats windows.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	disturbed     bool // a disturbance has not settled yet
	lastCycles    int
	fullyRevealed bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkDisturbance(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkSettled(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkTrackLap(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkFullyRevealed(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkDisturbance(stats WindowStats) *Bookmark {
	if stats.Particles == 0 || stats.DispMax < disturbanceMinDisp {
		return nil
	}
	history := bd.getHistory()
	if len(history) < 2 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.DispP90
	}
	avg := total / float64(len(history))

	// A calm history averages near zero; the minimum keeps the ratio finite
	if stats.DispP90 > max(avg, 0.5)*disturbanceRatio {
		bd.disturbed = true
		return &Bookmark{
			Type:        BookmarkDisturbance,
			Frame:       stats.WindowEndFrame,
			Description: fmt.Sprintf("p90 displacement %.1f against average %.1f, %d particles displaced", stats.DispP90, avg, stats.Displaced),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkSettled(stats WindowStats) *Bookmark {
	if !bd.disturbed || stats.Particles == 0 || stats.DispMean >= settledDisp {
		return nil
	}
	bd.disturbed = false
	return &Bookmark{
		Type:        BookmarkSettled,
		Frame:       stats.WindowEndFrame,
		Description: fmt.Sprintf("grid settled, mean displacement %.2f", stats.DispMean),
	}
}

func (bd *BookmarkDetector) checkTrackLap(stats WindowStats) *Bookmark {
	if stats.TrackCycles <= bd.lastCycles {
		return nil
	}
	laps := stats.TrackCycles - bd.lastCycles
	bd.lastCycles = stats.TrackCycles
	return &Bookmark{
		Type:        BookmarkTrackLap,
		Frame:       stats.WindowEndFrame,
		Description: fmt.Sprintf("track drawn %d times (%d this window)", stats.TrackCycles, laps),
	}
}

func (bd *BookmarkDetector) checkFullyRevealed(stats WindowStats) *Bookmark {
	if bd.fullyRevealed || stats.RevealTargets == 0 || stats.Revealed < stats.RevealTargets {
		return nil
	}
	bd.fullyRevealed = true
	return &Bookmark{
		Type:        BookmarkFullyRevealed,
		Frame:       stats.WindowEndFrame,
		Description: fmt.Sprintf("all %d reveal targets shown", stats.RevealTargets),
	}
}
