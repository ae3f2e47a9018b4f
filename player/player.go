// Package player holds playback state and its pure transition
// function. Nothing here touches the audio output or the network;
// callers dispatch actions and render the resulting state.
package player

import (
	"math/rand"

	"github.com/ParthJhaveri10/Lumeo/model"
)

// RepeatMode selects what happens at track boundaries.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatOne
	RepeatAll
)

// HistoryLimit caps the previously-played list; the oldest entry is
// evicted first.
const HistoryLimit = 50

// randIntn is swapped out in tests for a deterministic pick.
var randIntn = rand.Intn

// State is the complete playback state. Mutate it only through
// Reduce.
type State struct {
	CurrentTrack *model.Track
	Playlist     []model.Track
	CurrentIndex int // position of CurrentTrack in Playlist, -1 if not applicable
	Queue        []model.Track
	History      []model.Track
	RepeatMode   RepeatMode
	Shuffle      bool
	IsPlaying    bool
}

// Initial returns the empty playback state.
func Initial() State {
	return State{CurrentIndex: -1}
}

// Action is a sealed playback state transition request.
type Action interface{ isAction() }

// SetCurrentTrack makes a track current. A nil Playlist keeps the
// prior playlist; a nil Index keeps the prior index.
type SetCurrentTrack struct {
	Track    model.Track
	Playlist []model.Track
	Index    *int
}

// SetPlaylist replaces the playlist wholesale and selects the track
// at Index (0 when out of range).
type SetPlaylist struct {
	Playlist []model.Track
	Index    int
}

// Next advances playback: queued tracks first, then repeat-one, then
// shuffle, then the next playlist position.
type Next struct{}

// Previous steps back through history, falling back to the previous
// playlist position.
type Previous struct{}

// AddToQueue appends a track to the play-next queue.
type AddToQueue struct{ Track model.Track }

// RemoveFromQueue drops the queue entry at Index; out-of-range
// indexes are a no-op.
type RemoveFromQueue struct{ Index int }

// ClearQueue empties the queue.
type ClearQueue struct{}

// SetRepeat sets the repeat mode.
type SetRepeat struct{ Mode RepeatMode }

// ToggleShuffle flips shuffle. Order is not rewritten; shuffle only
// changes how Next picks the following track.
type ToggleShuffle struct{}

// SetPlaying records the reported player status.
type SetPlaying struct{ Playing bool }

// Clear resets to the initial empty state.
type Clear struct{}

func (SetCurrentTrack) isAction() {}
func (SetPlaylist) isAction()     {}
func (Next) isAction()            {}
func (Previous) isAction()        {}
func (AddToQueue) isAction()      {}
func (RemoveFromQueue) isAction() {}
func (ClearQueue) isAction()      {}
func (SetRepeat) isAction()       {}
func (ToggleShuffle) isAction()   {}
func (SetPlaying) isAction()      {}
func (Clear) isAction()           {}

// Reduce applies one action and returns the next state. It is total:
// unknown inputs and out-of-range indexes leave the state unchanged.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case SetCurrentTrack:
		s.History = pushHistory(s.History, s.CurrentTrack)
		track := act.Track
		s.CurrentTrack = &track
		if act.Playlist != nil {
			s.Playlist = copyTracks(act.Playlist)
		}
		if act.Index != nil {
			s.CurrentIndex = *act.Index
		}
		return s

	case SetPlaylist:
		// Copied so later caller-side mutation of the slice cannot
		// reach into the state.
		s.Playlist = copyTracks(act.Playlist)
		if len(act.Playlist) == 0 {
			s.CurrentTrack = nil
			s.CurrentIndex = -1
			return s
		}
		idx := act.Index
		if idx < 0 || idx >= len(act.Playlist) {
			idx = 0
		}
		track := act.Playlist[idx]
		s.CurrentIndex = idx
		s.CurrentTrack = &track
		return s

	case Next:
		return next(s)

	case Previous:
		return previous(s)

	case AddToQueue:
		queue := make([]model.Track, len(s.Queue), len(s.Queue)+1)
		copy(queue, s.Queue)
		s.Queue = append(queue, act.Track)
		return s

	case RemoveFromQueue:
		if act.Index < 0 || act.Index >= len(s.Queue) {
			return s
		}
		queue := make([]model.Track, 0, len(s.Queue)-1)
		queue = append(queue, s.Queue[:act.Index]...)
		queue = append(queue, s.Queue[act.Index+1:]...)
		s.Queue = queue
		return s

	case ClearQueue:
		s.Queue = nil
		return s

	case SetRepeat:
		s.RepeatMode = act.Mode
		return s

	case ToggleShuffle:
		s.Shuffle = !s.Shuffle
		return s

	case SetPlaying:
		s.IsPlaying = act.Playing
		return s

	case Clear:
		return Initial()
	}
	return s
}

// next implements the advance precedence: queue beats repeat-one,
// repeat-one beats shuffle, shuffle beats the linear step. Repeat-one
// therefore shadows shuffle whenever the queue is empty; that quirk
// is load-bearing and covered by tests.
func next(s State) State {
	if len(s.Queue) > 0 {
		head := s.Queue[0]
		queue := make([]model.Track, len(s.Queue)-1)
		copy(queue, s.Queue[1:])
		s.History = pushHistory(s.History, s.CurrentTrack)
		s.CurrentTrack = &head
		s.Queue = queue
		// Queue playback is orthogonal to the playlist position.
		return s
	}

	if s.RepeatMode == RepeatOne {
		return s
	}

	if s.Shuffle && len(s.Playlist) > 0 {
		idx := shufflePick(len(s.Playlist), s.CurrentIndex)
		track := s.Playlist[idx]
		s.History = pushHistory(s.History, s.CurrentTrack)
		s.CurrentTrack = &track
		s.CurrentIndex = idx
		return s
	}

	nextIdx := s.CurrentIndex + 1
	if nextIdx >= len(s.Playlist) {
		if s.RepeatMode == RepeatAll && len(s.Playlist) > 0 {
			track := s.Playlist[0]
			s.History = pushHistory(s.History, s.CurrentTrack)
			s.CurrentTrack = &track
			s.CurrentIndex = 0
			return s
		}
		// End of playlist: stop, keep the current track and index.
		s.IsPlaying = false
		return s
	}

	track := s.Playlist[nextIdx]
	s.History = pushHistory(s.History, s.CurrentTrack)
	s.CurrentTrack = &track
	s.CurrentIndex = nextIdx
	return s
}

func previous(s State) State {
	if len(s.History) > 0 {
		last := s.History[len(s.History)-1]
		history := make([]model.Track, len(s.History)-1)
		copy(history, s.History[:len(s.History)-1])
		s.History = history
		s.CurrentTrack = &last
		if idx := indexOf(s.Playlist, last.ID); idx >= 0 {
			s.CurrentIndex = idx
		}
		return s
	}

	if s.CurrentIndex > 0 {
		track := s.Playlist[s.CurrentIndex-1]
		s.CurrentIndex--
		s.CurrentTrack = &track
		return s
	}

	if s.CurrentIndex == 0 && s.RepeatMode == RepeatAll && len(s.Playlist) > 0 {
		idx := len(s.Playlist) - 1
		track := s.Playlist[idx]
		s.CurrentIndex = idx
		s.CurrentTrack = &track
	}
	return s
}

// pushHistory appends t unless it is nil or already the most recent
// entry, evicting the oldest entry past HistoryLimit.
func pushHistory(history []model.Track, t *model.Track) []model.Track {
	if t == nil {
		return history
	}
	if len(history) > 0 && history[len(history)-1].ID == t.ID {
		return history
	}
	out := make([]model.Track, len(history), len(history)+1)
	copy(out, history)
	out = append(out, *t)
	if len(out) > HistoryLimit {
		out = out[len(out)-HistoryLimit:]
	}
	return out
}

// shufflePick returns a uniformly random index, excluding current
// when there are at least two choices.
func shufflePick(n, current int) int {
	if n == 1 {
		return 0
	}
	if current < 0 || current >= n {
		return randIntn(n)
	}
	idx := randIntn(n - 1)
	if idx >= current {
		idx++
	}
	return idx
}

func copyTracks(tracks []model.Track) []model.Track {
	if tracks == nil {
		return nil
	}
	out := make([]model.Track, len(tracks))
	copy(out, tracks)
	return out
}

func indexOf(tracks []model.Track, id string) int {
	for i, t := range tracks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
