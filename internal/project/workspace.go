package project

import (
	"errors"
	"fmt"
	"sync"

	"github.com/piwi3910/FabricCut/internal/model"
)

// ErrNotFound is returned when no shape has the requested ID.
var ErrNotFound = errors.New("not found")

// Workspace holds the disposition being edited. All access goes through a
// single mutex; the layout pipeline only ever sees snapshots.
type Workspace struct {
	mu    sync.Mutex
	state model.Disposition
}

// NewWorkspace returns a workspace starting from d.
func NewWorkspace(d model.Disposition) *Workspace {
	return &Workspace{state: d.Clone()}
}

// Snapshot returns an independent copy of the current input.
func (w *Workspace) Snapshot() model.LayoutInput {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Input()
}

// State returns a copy of the whole disposition.
func (w *Workspace) State() model.Disposition {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Clone()
}

// Replace swaps in a new disposition after validating it.
func (w *Workspace) Replace(d model.Disposition) error {
	if err := d.Input().Validate(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = d.Clone()
	return nil
}

// Config returns the layout settings.
func (w *Workspace) Config() model.LayoutConfig {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Config.Clone()
}

// SetConfig validates and stores new layout settings.
func (w *Workspace) SetConfig(c model.LayoutConfig) (model.LayoutConfig, error) {
	if err := c.Validate(); err != nil {
		return model.LayoutConfig{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Config = c.Clone()
	return c, nil
}

// Add creates a shape of the requested kind and returns its ID. Adding a
// filler replaces the previous one.
func (w *Workspace) Add(req model.PieceRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	rect := model.NewRectangle(req.Width, req.Length)

	w.mu.Lock()
	defer w.mu.Unlock()
	switch req.Kind {
	case model.KindPiece:
		w.state.Pieces = append(w.state.Pieces, rect)
	case model.KindFiller:
		w.state.Filler = &rect
	case model.KindExcludedZone:
		w.state.ExcludedZones = append(w.state.ExcludedZones, rect.At(*req.TopLeft))
	}
	return rect.ID, nil
}

// AddPieces adds several pieces at once, all or nothing.
func (w *Workspace) AddPieces(pieces []model.Rectangle) ([]string, error) {
	added := make([]model.Rectangle, 0, len(pieces))
	for i, p := range pieces {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("piece %d: %w", i+1, err)
		}
		added = append(added, model.NewRectangle(p.Width, p.Length))
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Pieces = append(w.state.Pieces, added...)

	ids := make([]string, len(added))
	for i, p := range added {
		ids[i] = p.ID
	}
	return ids, nil
}

// Piece returns the piece with the given ID.
func (w *Workspace) Piece(id string) (model.Rectangle, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := w.pieceIndex(id)
	if i < 0 {
		return model.Rectangle{}, fmt.Errorf("piece %s: %w", id, ErrNotFound)
	}
	return w.state.Pieces[i], nil
}

// EditPiece changes the size of a piece.
func (w *Workspace) EditPiece(id string, width, length int) (model.Rectangle, error) {
	r := model.Rectangle{ID: id, Width: width, Length: length}
	if err := r.Validate(); err != nil {
		return model.Rectangle{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	i := w.pieceIndex(id)
	if i < 0 {
		return model.Rectangle{}, fmt.Errorf("piece %s: %w", id, ErrNotFound)
	}
	w.state.Pieces[i] = r
	return r, nil
}

// RemovePiece deletes a piece.
func (w *Workspace) RemovePiece(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := w.pieceIndex(id)
	if i < 0 {
		return fmt.Errorf("piece %s: %w", id, ErrNotFound)
	}
	w.state.Pieces = append(w.state.Pieces[:i], w.state.Pieces[i+1:]...)
	return nil
}

// Filler returns the filler, or nil when none is set.
func (w *Workspace) Filler() *model.Rectangle {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.Filler == nil {
		return nil
	}
	f := *w.state.Filler
	return &f
}

// RemoveFiller clears the filler.
func (w *Workspace) RemoveFiller() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Filler = nil
}

// ExcludedZone returns the zone with the given ID.
func (w *Workspace) ExcludedZone(id string) (model.PositionedRectangle, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := w.zoneIndex(id)
	if i < 0 {
		return model.PositionedRectangle{}, fmt.Errorf("excluded zone %s: %w", id, ErrNotFound)
	}
	return w.state.ExcludedZones[i], nil
}

// EditExcludedZone changes the size and position of a zone.
func (w *Workspace) EditExcludedZone(id string, req model.PieceRequest) (model.PositionedRectangle, error) {
	req.Kind = model.KindExcludedZone
	if err := req.Validate(); err != nil {
		return model.PositionedRectangle{}, err
	}
	z := model.Rectangle{ID: id, Width: req.Width, Length: req.Length}.At(*req.TopLeft)

	w.mu.Lock()
	defer w.mu.Unlock()
	i := w.zoneIndex(id)
	if i < 0 {
		return model.PositionedRectangle{}, fmt.Errorf("excluded zone %s: %w", id, ErrNotFound)
	}
	w.state.ExcludedZones[i] = z
	return z, nil
}

// RemoveExcludedZone deletes a zone.
func (w *Workspace) RemoveExcludedZone(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := w.zoneIndex(id)
	if i < 0 {
		return fmt.Errorf("excluded zone %s: %w", id, ErrNotFound)
	}
	w.state.ExcludedZones = append(w.state.ExcludedZones[:i], w.state.ExcludedZones[i+1:]...)
	return nil
}

// Clear removes every shape and keeps the config.
func (w *Workspace) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Pieces = []model.Rectangle{}
	w.state.ExcludedZones = []model.PositionedRectangle{}
	w.state.Filler = nil
}

func (w *Workspace) pieceIndex(id string) int {
	for i, p := range w.state.Pieces {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (w *Workspace) zoneIndex(id string) int {
	for i, z := range w.state.ExcludedZones {
		if z.ID == id {
			return i
		}
	}
	return -1
}
