package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"intellinote-be/internal/apperror"
	"intellinote-be/internal/dto"
	"intellinote-be/internal/entity"
	"intellinote-be/internal/pkg/logger"
	"intellinote-be/internal/repository/contract"
	"intellinote-be/internal/repository/memory"
	"intellinote-be/pkg/events"
	pktNats "intellinote-be/pkg/nats"
	"intellinote-be/pkg/normalizer"
	"intellinote-be/pkg/store"
)

// GenerationClient is the single-shot structured generation contract.
// A (nil, nil) result means the model answered with no content.
type GenerationClient interface {
	Generate(ctx context.Context, payload *normalizer.InputPayload) (*entity.GeneratedContent, error)
}

type IStudyService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	GetState(ctx context.Context, sessionID string) (*dto.SessionStateResponse, error)
	Generate(ctx context.Context, sessionID string, payload *normalizer.InputPayload) (*dto.HistoryEntryResponse, error)
	GetHistory(ctx context.Context) []*dto.HistoryEntryResponse
	SelectHistory(ctx context.Context, sessionID, entryID string) (*dto.SessionStateResponse, error)
	DeleteHistory(ctx context.Context, sessionID, entryID string) error
	ClearHistory(ctx context.Context, sessionID string) error
}

type studyService struct {
	historyRepo    contract.IHistoryRepository
	sessionRepo    *memory.SessionRepository
	client         GenerationClient
	eventPublisher *pktNats.Publisher
	sysLogger      logger.ILogger
}

func NewStudyService(
	historyRepo contract.IHistoryRepository,
	sessionRepo *memory.SessionRepository,
	client GenerationClient,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IStudyService {
	return &studyService{
		historyRepo:    historyRepo,
		sessionRepo:    sessionRepo,
		client:         client,
		eventPublisher: eventPublisher,
		sysLogger:      sysLogger,
	}
}

func (s *studyService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	session := &store.Session{
		ID:     uuid.New().String(),
		Status: store.StatusIdle,
	}
	s.sessionRepo.Save(session)

	return &dto.CreateSessionResponse{Id: session.ID}, nil
}

func (s *studyService) GetState(ctx context.Context, sessionID string) (*dto.SessionStateResponse, error) {
	session, ok := s.sessionRepo.Get(sessionID)
	if !ok {
		return nil, apperror.NotFound("session")
	}
	return sessionStateResponse(session), nil
}

// Generate runs one submission through the pipeline: clear previous state,
// call the model, and on success insert the new entry and display it. The
// previous output and error are cleared before the call begins, so a client
// polling the session never observes a stale result alongside GENERATING.
func (s *studyService) Generate(ctx context.Context, sessionID string, payload *normalizer.InputPayload) (*dto.HistoryEntryResponse, error) {
	// The status check and the transition to GENERATING happen inside one
	// Update so two simultaneous submissions cannot both pass the gate.
	_, ok, err := s.sessionRepo.Update(sessionID, func(session *store.Session) error {
		if session.Status == store.StatusGenerating {
			return fmt.Errorf("%w: a generation is already in progress for this session", apperror.ErrConflict)
		}
		session.Status = store.StatusGenerating
		session.Output = nil
		session.SelectedId = ""
		session.Error = ""
		return nil
	})
	if !ok {
		return nil, apperror.NotFound("session")
	}
	if err != nil {
		return nil, err
	}

	result, err := s.client.Generate(ctx, payload)
	if err != nil {
		s.failSession(sessionID, err)
		return nil, err
	}
	if result == nil {
		err := apperror.EmptyResponse()
		s.failSession(sessionID, err)
		return nil, err
	}

	now := time.Now()
	entry := &entity.HistoryEntry{
		Id:        strconv.FormatInt(now.UnixMilli(), 10),
		Label:     payload.Name,
		Content:   *result,
		CreatedAt: now,
	}
	if err := s.historyRepo.Insert(ctx, entry); err != nil {
		s.failSession(sessionID, err)
		return nil, err
	}

	s.sessionRepo.Update(sessionID, func(session *store.Session) error {
		session.Status = store.StatusDisplaying
		session.Output = result
		session.SelectedId = entry.Id
		session.Error = ""
		return nil
	})

	s.publishEvent(ctx, events.BaseEvent{
		Type: "GENERATION_COMPLETED",
		Data: map[string]interface{}{
			"entry_id":   entry.Id,
			"label":      entry.Label,
			"kind":       payload.Kind,
			"session_id": sessionID,
		},
		OccurredAt: now,
	})

	return historyEntryResponse(entry), nil
}

func (s *studyService) GetHistory(ctx context.Context) []*dto.HistoryEntryResponse {
	entries := s.historyRepo.All(ctx)
	out := make([]*dto.HistoryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, historyEntryResponse(entry))
	}
	return out
}

// SelectHistory redisplays a past generation without a new model call.
func (s *studyService) SelectHistory(ctx context.Context, sessionID, entryID string) (*dto.SessionStateResponse, error) {
	if _, ok := s.sessionRepo.Get(sessionID); !ok {
		return nil, apperror.NotFound("session")
	}

	entry := s.historyRepo.Find(ctx, entryID)
	if entry == nil {
		return nil, apperror.NotFound("history entry")
	}

	content := entry.Content
	session, ok, _ := s.sessionRepo.Update(sessionID, func(session *store.Session) error {
		session.Status = store.StatusDisplaying
		session.Output = &content
		session.SelectedId = entry.Id
		session.Error = ""
		return nil
	})
	if !ok {
		return nil, apperror.NotFound("session")
	}

	return sessionStateResponse(session), nil
}

func (s *studyService) DeleteHistory(ctx context.Context, sessionID, entryID string) error {
	if _, ok := s.sessionRepo.Get(sessionID); !ok {
		return apperror.NotFound("session")
	}

	if err := s.historyRepo.Remove(ctx, entryID); err != nil {
		return err
	}

	// Deleting what the client is looking at resets the display.
	s.sessionRepo.Update(sessionID, func(session *store.Session) error {
		if session.SelectedId == entryID {
			session.Status = store.StatusIdle
			session.Output = nil
			session.SelectedId = ""
			session.Error = ""
		}
		return nil
	})

	return nil
}

func (s *studyService) ClearHistory(ctx context.Context, sessionID string) error {
	if _, ok := s.sessionRepo.Get(sessionID); !ok {
		return apperror.NotFound("session")
	}

	if err := s.historyRepo.Clear(ctx); err != nil {
		return err
	}

	s.publishEvent(ctx, events.BaseEvent{
		Type:       "HISTORY_CLEARED",
		Data:       map[string]interface{}{"session_id": sessionID},
		OccurredAt: time.Now(),
	})

	return nil
}

func (s *studyService) failSession(sessionID string, err error) {
	message := err.Error()
	if message == "" {
		message = "An unknown error occurred."
	}
	s.sessionRepo.Update(sessionID, func(session *store.Session) error {
		session.Status = store.StatusFailed
		session.Error = message
		return nil
	})
}

// publishEvent is best-effort: events feed auxiliary consumers, so a publish
// failure is logged and never fails the request.
func (s *studyService) publishEvent(ctx context.Context, evt events.BaseEvent) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.sysLogger.Warn("study", "Failed to publish event", map[string]interface{}{
			"type":  evt.Type,
			"error": err.Error(),
		})
	}
}

func historyEntryResponse(entry *entity.HistoryEntry) *dto.HistoryEntryResponse {
	return &dto.HistoryEntryResponse{
		Id:        entry.Id,
		Label:     entry.Label,
		Content:   entry.Content,
		CreatedAt: entry.CreatedAt,
	}
}

func sessionStateResponse(session *store.Session) *dto.SessionStateResponse {
	return &dto.SessionStateResponse{
		Id:         session.ID,
		Status:     session.Status,
		Output:     session.Output,
		SelectedId: session.SelectedId,
		Error:      session.Error,
	}
}
