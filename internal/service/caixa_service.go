package service

import (
	"context"
	"fmt"
	"time"

	"donmenu/internal/costing"
	"donmenu/internal/dto"
	"donmenu/internal/model"
	"donmenu/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ClosureEnqueuer hands a closed session off to the background closure
// pipeline (PDF + e-mail). The worker dispatcher satisfies it; the nil check
// keeps the service usable in unit tests without Redis.
type ClosureEnqueuer interface {
	EnqueueClosure(ctx context.Context, sessionID uuid.UUID) error
}

type CaixaService interface {
	// Open starts a session. Only one session may be open at a time.
	Open(ctx context.Context, userID uuid.UUID, req dto.OpenCaixaRequest) (*dto.CaixaSessionResponse, error)
	// RecordEntry appends a manual revenue/expense to the open session.
	RecordEntry(ctx context.Context, req dto.CaixaEntryRequest) (*dto.CaixaEntryResponse, error)
	// Close transitions the open session to closed, computing the expected
	// balance and the difference against the declared amount, then enqueues
	// the closure report.
	Close(ctx context.Context, req dto.CloseCaixaRequest) (*dto.CaixaSessionResponse, error)
	GetActive(ctx context.Context) (*dto.CaixaSessionResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CaixaSessionResponse, error)
	History(ctx context.Context, page, limit int) (*dto.CaixaHistoryResponse, error)
}

type caixaService struct {
	repo     repository.CaixaRepository
	enqueuer ClosureEnqueuer
}

func NewCaixaService(repo repository.CaixaRepository, enqueuer ClosureEnqueuer) CaixaService {
	return &caixaService{repo: repo, enqueuer: enqueuer}
}

func (s *caixaService) Open(ctx context.Context, userID uuid.UUID, req dto.OpenCaixaRequest) (*dto.CaixaSessionResponse, error) {
	if req.OpeningAmount.IsNegative() {
		return nil, costing.ErrNegativeCost
	}
	if _, err := s.repo.FindOpenSession(ctx); err == nil {
		return nil, ErrSessionAlreadyOpen
	}

	session := &model.CaixaSession{
		UserID:        userID,
		OpeningAmount: req.OpeningAmount,
		Status:        "open",
		OpenedAt:      time.Now(),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return sessionToResponse(session, nil), nil
}

func (s *caixaService) RecordEntry(ctx context.Context, req dto.CaixaEntryRequest) (*dto.CaixaEntryResponse, error) {
	session, err := s.repo.FindOpenSession(ctx)
	if err != nil {
		return nil, ErrNoOpenSession
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", costing.ErrValidation)
	}

	amount := req.Amount
	if req.Kind == "expense" {
		amount = amount.Neg()
	}
	entry := &model.CaixaEntry{
		SessionID:   session.ID,
		Kind:        req.Kind,
		Amount:      amount,
		Description: req.Description,
	}
	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entryToResponse(entry), nil
}

func (s *caixaService) Close(ctx context.Context, req dto.CloseCaixaRequest) (*dto.CaixaSessionResponse, error) {
	session, err := s.repo.FindOpenSession(ctx)
	if err != nil {
		return nil, ErrNoOpenSession
	}
	if req.DeclaredAmount.IsNegative() {
		return nil, costing.ErrNegativeCost
	}

	sum, err := s.repo.SumEntries(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	expected := costing.RoundCurrency(session.OpeningAmount.Add(sum))
	declared := req.DeclaredAmount
	difference := costing.RoundCurrency(declared.Sub(expected))
	now := time.Now()

	session.Status = "closed"
	session.ExpectedAmount = &expected
	session.DeclaredAmount = &declared
	session.Difference = &difference
	session.Note = req.Note
	session.ClosedAt = &now

	// The status guard in CloseSession makes a concurrent double close fail
	// with ErrRecordNotFound instead of overwriting the first close.
	if err := s.repo.CloseSession(ctx, session); err != nil {
		return nil, ErrNoOpenSession
	}

	if s.enqueuer != nil {
		if err := s.enqueuer.EnqueueClosure(ctx, session.ID); err != nil {
			// The session is already closed; report delivery has its own
			// retry path, so the close itself still succeeds.
			log.Error().Err(err).Str("session_id", session.ID.String()).
				Msg("failed to enqueue closure report")
		}
	}

	entries, _ := s.repo.ListEntries(ctx, session.ID)
	return sessionToResponse(session, entries), nil
}

func (s *caixaService) GetActive(ctx context.Context) (*dto.CaixaSessionResponse, error) {
	session, err := s.repo.FindOpenSession(ctx)
	if err != nil {
		return nil, ErrNoOpenSession
	}
	entries, err := s.repo.ListEntries(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	return sessionToResponse(session, entries), nil
}

func (s *caixaService) Get(ctx context.Context, id uuid.UUID) (*dto.CaixaSessionResponse, error) {
	session, err := s.repo.FindSessionByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return sessionToResponse(session, session.Entries), nil
}

func (s *caixaService) History(ctx context.Context, page, limit int) (*dto.CaixaHistoryResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	sessions, total, err := s.repo.ListSessions(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CaixaSessionResponse, 0, len(sessions))
	for i := range sessions {
		data = append(data, *sessionToResponse(&sessions[i], nil))
	}
	return &dto.CaixaHistoryResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

func sessionToResponse(s *model.CaixaSession, entries []model.CaixaEntry) *dto.CaixaSessionResponse {
	resp := &dto.CaixaSessionResponse{
		ID:             s.ID.String(),
		Status:         s.Status,
		OpeningAmount:  s.OpeningAmount,
		ExpectedAmount: s.ExpectedAmount,
		DeclaredAmount: s.DeclaredAmount,
		Difference:     s.Difference,
		Note:           s.Note,
		OpenedAt:       s.OpenedAt.Format(time.RFC3339),
	}
	if s.ClosedAt != nil {
		closed := s.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &closed
	}
	for i := range entries {
		resp.Entries = append(resp.Entries, *entryToResponse(&entries[i]))
	}
	return resp
}

func entryToResponse(e *model.CaixaEntry) *dto.CaixaEntryResponse {
	return &dto.CaixaEntryResponse{
		ID:          e.ID.String(),
		Kind:        e.Kind,
		Amount:      e.Amount,
		Description: e.Description,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
}
