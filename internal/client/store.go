package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"roaster-backend/internal/card"
	"roaster-backend/internal/models"
	"roaster-backend/internal/storage"
)

// StorageKey is where the persisted history lives.
const StorageKey = "roast-positive-chat-storage"

const (
	msgMissingInput = "Please enter both name and career."
	msgUnknownError = "An unknown error occurred."
)

var ErrMissingInput = errors.New(msgMissingInput)

type persistedState struct {
	State struct {
		History []models.HistoryEntry `json:"history"`
	} `json:"state"`
	Version int `json:"version"`
}

// Store serialises every state change through Reduce and persists the
// history after each change to it.
type Store struct {
	mu      sync.Mutex
	state   State
	api     ChatAPI
	storage storage.Storage

	now   func() time.Time
	newID func() uuid.UUID
}

func NewStore(api ChatAPI, st storage.Storage) *Store {
	return &Store{
		api:     api,
		storage: st,
		now:     time.Now,
		newID:   uuid.New,
	}
}

// State returns a snapshot safe to read without the lock.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.state
	snap.History = append([]models.HistoryEntry(nil), s.state.History...)
	return snap
}

func (s *Store) dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
	return s.state
}

// Load restores the persisted history. A corrupt document leaves the
// history empty and is reported.
func (s *Store) Load(ctx context.Context) error {
	if s.storage == nil {
		return nil
	}
	raw, ok, err := s.storage.GetItem(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if !ok {
		return nil
	}

	var doc persistedState
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return fmt.Errorf("failed to decode history: %w", err)
	}
	s.dispatch(HistoryLoaded{History: doc.State.History})
	return nil
}

func (s *Store) persist(ctx context.Context, history []models.HistoryEntry) error {
	if s.storage == nil {
		return nil
	}
	var doc persistedState
	doc.State.History = history
	if doc.State.History == nil {
		doc.State.History = []models.HistoryEntry{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if err := s.storage.SetItem(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist history: %w", err)
	}
	return nil
}

func (s *Store) SetName(name string)     { s.dispatch(SetName{Value: name}) }
func (s *Store) SetCareer(career string) { s.dispatch(SetCareer{Value: career}) }
func (s *Store) ClearCurrentResponse()   { s.dispatch(ClearCurrentResponse{}) }

// FetchResponse asks the proxy for a new text in the given mode. The outcome
// is always reflected in State; the returned error mirrors State.Error.
func (s *Store) FetchResponse(ctx context.Context, mode models.Mode) error {
	s.mu.Lock()
	name, career := s.state.Name, s.state.Career
	if strings.TrimSpace(name) == "" || strings.TrimSpace(career) == "" {
		s.state = Reduce(s.state, InputRejected{Message: msgMissingInput})
		s.mu.Unlock()
		return ErrMissingInput
	}
	epoch := s.state.Epoch + 1
	s.state = Reduce(s.state, RequestStarted{Epoch: epoch, Mode: mode})
	s.mu.Unlock()

	text, err := s.api.Chat(ctx, models.ChatRequest{
		Name:    name,
		Career:  career,
		Mode:    mode,
		History: []models.ChatMessage{},
	})
	if err != nil {
		log.Printf("Failed to fetch AI response: %v", err)
		msg := err.Error()
		if msg == "" {
			msg = msgUnknownError
		}
		s.dispatch(RequestFailed{Epoch: epoch, Message: msg})
		return err
	}

	entry := models.HistoryEntry{
		ID:        s.newID(),
		Name:      name,
		Career:    career,
		Mode:      mode,
		Response:  text,
		Timestamp: s.now(),
	}
	next := s.dispatch(RequestSucceeded{Epoch: epoch, Entry: entry})
	if next.Epoch != epoch {
		return nil
	}
	return s.persist(ctx, next.History)
}

func (s *Store) ClearHistory(ctx context.Context) error {
	next := s.dispatch(ClearHistory{})
	return s.persist(ctx, next.History)
}

// ShareCurrent exports the current response through the share chain. The
// sharing flag is cleared on every path.
func (s *Store) ShareCurrent(ctx context.Context, sharer *card.Sharer) card.ShareOutcome {
	snap := s.State()
	if snap.CurrentResponse == "" || snap.Sharing {
		return card.ShareAborted
	}

	s.dispatch(ShareStarted{})
	defer s.dispatch(ShareFinished{})

	return sharer.Share(ctx, card.Input{
		Text:   snap.CurrentResponse,
		Name:   snap.Name,
		Career: snap.Career,
		Mode:   snap.CurrentMode,
	})
}

// CopyCurrent puts the current response on the clipboard.
func (s *Store) CopyCurrent(sharer *card.Sharer) card.ShareOutcome {
	snap := s.State()
	if snap.CurrentResponse == "" || snap.Sharing {
		return card.ShareAborted
	}

	s.dispatch(ShareStarted{})
	defer s.dispatch(ShareFinished{})

	return sharer.Copy(card.Input{
		Text:   snap.CurrentResponse,
		Name:   snap.Name,
		Career: snap.Career,
		Mode:   snap.CurrentMode,
	})
}

// ShowEntry makes a past result current again, for re-sharing.
func (s *Store) ShowEntry(entry models.HistoryEntry) {
	s.dispatch(EntrySelected{Entry: entry})
}
