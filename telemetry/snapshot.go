package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/esimmons/folio/geom"
	"github.com/esimmons/folio/systems"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the moving state of a particle grid. Origins and brightness
// come from the source image and are not stored.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`
	Frame   int32 `json:"frame"`

	Cols int    `json:"cols"`
	Rows int    `json:"rows"`
	// Source image the grid was sampled from
	Image string `json:"image,omitempty"`

	Particles []ParticleState `json:"particles"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// ParticleState holds one particle's position and velocity.
type ParticleState struct {
	X    float32 `json:"x"`
	Y    float32 `json:"y"`
	VelX float32 `json:"vel_x"`
	VelY float32 `json:"vel_y"`
}

// NewSnapshot captures the grid at the given frame.
func NewSnapshot(g *systems.Grid, frame int32, seed int64, image string, bm *Bookmark) *Snapshot {
	ps := g.Particles()
	s := &Snapshot{
		Version:   SnapshotVersion,
		RNGSeed:   seed,
		Frame:     frame,
		Cols:      g.Cols(),
		Rows:      g.Rows(),
		Image:     image,
		Particles: make([]ParticleState, len(ps)),
		Bookmark:  bm,
	}
	for i := range ps {
		s.Particles[i] = ParticleState{
			X:    ps[i].Pos.X,
			Y:    ps[i].Pos.Y,
			VelX: ps[i].Vel.X,
			VelY: ps[i].Vel.Y,
		}
	}
	return s
}

// Restore moves the particles of an initialized grid to the saved state.
func (s *Snapshot) Restore(g *systems.Grid) error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("snapshot version %d, want %d", s.Version, SnapshotVersion)
	}
	if !g.Ready() {
		return fmt.Errorf("grid not initialized")
	}
	if s.Cols != g.Cols() || s.Rows != g.Rows() || len(s.Particles) != len(g.Particles()) {
		return fmt.Errorf("snapshot is %dx%d, grid is %dx%d", s.Cols, s.Rows, g.Cols(), g.Rows())
	}
	ps := g.Particles()
	for i, st := range s.Particles {
		ps[i].Pos = geom.V(st.X, st.Y)
		ps[i].Vel = geom.V(st.VelX, st.VelY)
	}
	return nil
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Frame)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Frame, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}
