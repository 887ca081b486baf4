package worker

// closure_worker.go
// Processes caixa closing jobs from QueueClosure. Generates the closing
// report PDF and, when a report recipient is configured, enqueues the email.
// Failures leave the report in "pending" with a next_retry_at for the retry
// cron; the caixa close itself already committed and is never rolled back.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"donmenu/internal/infra"
	"donmenu/internal/model"
	"donmenu/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MaxClosureRetries bounds retry cron attempts before a report is parked in
// "error" and sent to the DLQ.
const MaxClosureRetries = 5

// ClosureJobPayload is the job envelope sent to QueueClosure.
type ClosureJobPayload struct {
	SessionID string `json:"session_id"`
}

type ClosureWorker struct {
	caixaRepo      repository.CaixaRepository
	reportRepo     repository.ClosureReportRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
	restaurantName string
	reportEmail    string
}

func NewClosureWorker(
	caixaRepo repository.CaixaRepository,
	reportRepo repository.ClosureReportRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
	restaurantName string,
	reportEmail string,
) *ClosureWorker {
	return &ClosureWorker{
		caixaRepo:      caixaRepo,
		reportRepo:     reportRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
		restaurantName: restaurantName,
		reportEmail:    reportEmail,
	}
}

// Process handles a single closure job:
//  1. Parse ClosureJobPayload from the job envelope
//  2. Fetch the closed session with its entries
//  3. Find or create the ClosureReport record
//  4. Generate the PDF with exponential backoff
//  5. Enqueue the email when a recipient is configured
func (w *ClosureWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ClosureJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("closure_worker: invalid payload")
		return
	}

	sessionID, err := uuid.Parse(payload.SessionID)
	if err != nil {
		log.Error().Str("session_id", payload.SessionID).Msg("closure_worker: invalid session_id")
		return
	}

	session, err := w.caixaRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		log.Error().Err(err).Str("session_id", payload.SessionID).Msg("closure_worker: session not found")
		return
	}
	if session.Status != "closed" {
		log.Warn().Str("session_id", payload.SessionID).Msg("closure_worker: session is not closed, skipping")
		return
	}

	report, err := w.reportRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		report = &model.ClosureReport{SessionID: sessionID, Status: "pending"}
		if w.reportEmail != "" {
			email := w.reportEmail
			report.Email = &email
		}
		if err := w.reportRepo.Create(ctx, report); err != nil {
			log.Error().Err(err).Str("session_id", payload.SessionID).Msg("closure_worker: failed to create report")
			return
		}
	}

	var pdfPath string
	pdfErr := withRetry(ctx, 3, func(attempt int) error {
		path, genErr := infra.GenerateClosureReportPDF(session, w.restaurantName, w.pdfStoragePath)
		if genErr != nil {
			log.Warn().Err(genErr).Int("attempt", attempt+1).
				Str("session_id", payload.SessionID).
				Msg("closure_worker: PDF attempt failed, retrying")
			return genErr
		}
		pdfPath = path
		return nil
	})

	if pdfErr != nil {
		// Leave the report pending; the retry cron picks it up.
		report.RetryCount++
		errMsg := pdfErr.Error()
		report.LastError = &errMsg
		next := time.Now().Add(computeRetryBackoff(report.RetryCount))
		report.NextRetryAt = &next
		_ = w.reportRepo.Update(ctx, report)
		log.Error().Err(pdfErr).Str("session_id", payload.SessionID).
			Msg("closure_worker: PDF generation failed after all attempts")
		return
	}

	report.PDFPath = &pdfPath

	if w.reportEmail != "" {
		emailJob := EmailJobPayload{
			ToEmail: w.reportEmail,
			Subject: fmt.Sprintf("%s — Fechamento de caixa %s", w.restaurantName, session.OpenedAt.Format("02/01/2006")),
			Body:    closureEmailBody(session),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			report.RetryCount++
			errMsg := err.Error()
			report.LastError = &errMsg
			next := time.Now().Add(computeRetryBackoff(report.RetryCount))
			report.NextRetryAt = &next
			_ = w.reportRepo.Update(ctx, report)
			log.Error().Err(err).Str("session_id", payload.SessionID).
				Msg("closure_worker: failed to enqueue report email")
			return
		}
	}

	report.Status = "delivered"
	report.NextRetryAt = nil
	report.LastError = nil
	if err := w.reportRepo.Update(ctx, report); err != nil {
		log.Error().Err(err).Str("session_id", payload.SessionID).Msg("closure_worker: failed to update report")
		return
	}
	log.Info().Str("session_id", payload.SessionID).Str("pdf", pdfPath).
		Msg("closure_worker: closing report delivered")
}

func closureEmailBody(session *model.CaixaSession) string {
	body := fmt.Sprintf("Caixa aberto em %s", session.OpenedAt.Format("02/01/2006 15:04"))
	if session.ClosedAt != nil {
		body += fmt.Sprintf(", fechado em %s", session.ClosedAt.Format("02/01/2006 15:04"))
	}
	if session.ExpectedAmount != nil && session.DeclaredAmount != nil && session.Difference != nil {
		body += fmt.Sprintf(".\nEsperado: R$ %s\nDeclarado: R$ %s\nDiferença: R$ %s",
			session.ExpectedAmount.StringFixed(2),
			session.DeclaredAmount.StringFixed(2),
			session.Difference.StringFixed(2))
	}
	body += "\n\nO relatório completo segue em anexo."
	return body
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

// computeRetryBackoff returns the wait before the n-th cron retry:
// 1m, 2m, 4m … capped at 30m.
func computeRetryBackoff(retryCount int) time.Duration {
	if retryCount < 1 {
		retryCount = 1
	}
	backoff := time.Duration(1<<uint(retryCount-1)) * time.Minute
	if backoff > 30*time.Minute {
		backoff = 30 * time.Minute
	}
	return backoff
}
