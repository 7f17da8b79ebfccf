// Package client holds the interactive state of a roaster session: the
// subject being edited, the in-flight generation and the bounded history of
// past results.
package client

import "roaster-backend/internal/models"

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

type State struct {
	Name            string
	Career          string
	CurrentMode     models.Mode
	CurrentResponse string
	IsLoading       bool
	Error           string
	History         []models.HistoryEntry
	Sharing         bool

	// Epoch identifies the latest request; results of older ones are dropped.
	Epoch uint64
}

func (s State) Phase() Phase {
	switch {
	case s.IsLoading:
		return PhaseLoading
	case s.Error != "":
		return PhaseError
	case s.CurrentResponse != "":
		return PhaseSuccess
	default:
		return PhaseIdle
	}
}

// Action is one state transition fed to Reduce.
type Action interface {
	isAction()
}

type (
	SetName              struct{ Value string }
	SetCareer            struct{ Value string }
	ClearCurrentResponse struct{}
	InputRejected        struct{ Message string }
	RequestStarted       struct {
		Epoch uint64
		Mode  models.Mode
	}
	RequestSucceeded struct {
		Epoch uint64
		Entry models.HistoryEntry
	}
	RequestFailed struct {
		Epoch   uint64
		Message string
	}
	ClearHistory  struct{}
	ShareStarted  struct{}
	ShareFinished struct{}
	HistoryLoaded struct{ History []models.HistoryEntry }
	EntrySelected struct{ Entry models.HistoryEntry }
)

func (SetName) isAction()              {}
func (SetCareer) isAction()            {}
func (ClearCurrentResponse) isAction() {}
func (InputRejected) isAction()        {}
func (RequestStarted) isAction()       {}
func (RequestSucceeded) isAction()     {}
func (RequestFailed) isAction()        {}
func (ClearHistory) isAction()         {}
func (ShareStarted) isAction()         {}
func (ShareFinished) isAction()        {}
func (HistoryLoaded) isAction()        {}
func (EntrySelected) isAction()        {}

// Reduce returns the state after applying a. It never mutates s.History in
// place.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetName:
		s.Name = a.Value
	case SetCareer:
		s.Career = a.Value
	case ClearCurrentResponse:
		s.CurrentResponse = ""
		s.Error = ""
	case InputRejected:
		s.Error = a.Message
		s.IsLoading = false
		s.CurrentResponse = ""
	case RequestStarted:
		s.Epoch = a.Epoch
		s.CurrentMode = a.Mode
		s.IsLoading = true
		s.Error = ""
		s.CurrentResponse = ""
	case RequestSucceeded:
		if a.Epoch != s.Epoch {
			return s
		}
		s.IsLoading = false
		s.CurrentResponse = a.Entry.Response
		s.History = prependCapped(s.History, a.Entry)
	case RequestFailed:
		if a.Epoch != s.Epoch {
			return s
		}
		s.IsLoading = false
		s.Error = a.Message
		s.CurrentResponse = ""
	case ClearHistory:
		s.History = nil
		s.CurrentResponse = ""
		s.Error = ""
	case ShareStarted:
		s.Sharing = true
	case ShareFinished:
		s.Sharing = false
	case HistoryLoaded:
		s.History = capHistory(a.History)
	case EntrySelected:
		s.Name = a.Entry.Name
		s.Career = a.Entry.Career
		s.CurrentMode = a.Entry.Mode
		s.CurrentResponse = a.Entry.Response
		s.Error = ""
	}
	return s
}

func prependCapped(history []models.HistoryEntry, entry models.HistoryEntry) []models.HistoryEntry {
	keep := len(history)
	if keep > models.HistoryCapacity-1 {
		keep = models.HistoryCapacity - 1
	}
	next := make([]models.HistoryEntry, 0, keep+1)
	next = append(next, entry)
	return append(next, history[:keep]...)
}

func capHistory(history []models.HistoryEntry) []models.HistoryEntry {
	if len(history) > models.HistoryCapacity {
		history = history[:models.HistoryCapacity]
	}
	return append([]models.HistoryEntry(nil), history...)
}
