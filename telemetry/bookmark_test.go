package telemetry

import "testing"

func hasBookmark(bms []Bookmark, typ BookmarkType) bool {
	for _, b := range bms {
		if b.Type == typ {
			return true
		}
	}
	return false
}

func calmWindow(frame int32) WindowStats {
	return WindowStats{
		WindowEndFrame: frame,
		Particles:      100,
		DispMean:       0.2,
		DispP90:        0.4,
		DispMax:        0.8,
	}
}

func TestBookmarkDetector_DisturbanceAndSettle(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := int32(0); i < 4; i++ {
		if bms := bd.Check(calmWindow(i * 300)); len(bms) != 0 {
			t.Fatalf("calm window produced %v", bms)
		}
	}

	swept := WindowStats{
		WindowEndFrame: 1200,
		Particles:      100,
		DispMean:       6,
		DispP90:        18,
		DispMax:        40,
		Displaced:      35,
	}
	bms := bd.Check(swept)
	if !hasBookmark(bms, BookmarkDisturbance) {
		t.Fatalf("expected disturbance bookmark, got %v", bms)
	}
	if hasBookmark(bms, BookmarkSettled) {
		t.Error("settled in the same window as the disturbance")
	}

	if bms := bd.Check(calmWindow(1500)); !hasBookmark(bms, BookmarkSettled) {
		t.Errorf("expected settled bookmark, got %v", bms)
	}
	if bms := bd.Check(calmWindow(1800)); hasBookmark(bms, BookmarkSettled) {
		t.Error("settled reported twice for one disturbance")
	}
}

func TestBookmarkDetector_NoDisturbanceWithoutHistory(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bms := bd.Check(WindowStats{Particles: 100, DispP90: 20, DispMax: 40})
	if hasBookmark(bms, BookmarkDisturbance) {
		t.Error("disturbance without history")
	}
}

func TestBookmarkDetector_SmallMovementIgnored(t *testing.T) {
	bd := NewBookmarkDetector(10)
	for i := int32(0); i < 4; i++ {
		bd.Check(calmWindow(i))
	}
	// Large ratio but below the absolute minimum
	bms := bd.Check(WindowStats{Particles: 100, DispP90: 4, DispMax: 6})
	if hasBookmark(bms, BookmarkDisturbance) {
		t.Error("small displacement flagged as disturbance")
	}
}

func TestBookmarkDetector_TrackLap(t *testing.T) {
	bd := NewBookmarkDetector(5)

	if bms := bd.Check(WindowStats{TrackCycles: 0}); hasBookmark(bms, BookmarkTrackLap) {
		t.Error("lap before any cycle")
	}
	if bms := bd.Check(WindowStats{TrackCycles: 1}); !hasBookmark(bms, BookmarkTrackLap) {
		t.Error("expected lap bookmark")
	}
	if bms := bd.Check(WindowStats{TrackCycles: 1}); hasBookmark(bms, BookmarkTrackLap) {
		t.Error("lap repeated without a new cycle")
	}
}

func TestBookmarkDetector_FullyRevealedOnce(t *testing.T) {
	bd := NewBookmarkDetector(5)

	if bms := bd.Check(WindowStats{Revealed: 3, RevealTargets: 6}); hasBookmark(bms, BookmarkFullyRevealed) {
		t.Error("partially revealed page flagged")
	}
	if bms := bd.Check(WindowStats{Revealed: 6, RevealTargets: 6}); !hasBookmark(bms, BookmarkFullyRevealed) {
		t.Error("expected fully_revealed bookmark")
	}
	if bms := bd.Check(WindowStats{Revealed: 6, RevealTargets: 6}); hasBookmark(bms, BookmarkFullyRevealed) {
		t.Error("fully_revealed reported twice")
	}
	if bms := NewBookmarkDetector(5).Check(WindowStats{}); hasBookmark(bms, BookmarkFullyRevealed) {
		t.Error("page without targets flagged")
	}
}
