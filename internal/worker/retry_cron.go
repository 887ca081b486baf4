package worker

// retry_cron.go
// Background goroutine that periodically re-attempts delivery of closing
// reports stuck in status='pending' with a next_retry_at in the past.
// Uses the circuit breaker to avoid hammering a downed SMTP relay.

import (
	"context"
	"fmt"
	"time"

	"donmenu/internal/infra"
	"donmenu/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	ReportRepo     repository.ClosureReportRepository
	CaixaRepo      repository.CaixaRepository
	Mailer         *infra.Mailer
	CB             *infra.CircuitBreaker
	RDB            *redis.Client
	PDFStoragePath string
	RestaurantName string
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries pending reports, and re-attempts delivery through the CB.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	// If CB is open, skip entirely — don't hammer a downed relay
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	now := time.Now()
	reports, err := cfg.ReportRepo.ListPendingRetries(ctx, now, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}
	if len(reports) == 0 {
		return
	}

	log.Info().Int("count", len(reports)).Msg("retry_cron: processing pending reports")

	for i := range reports {
		report := &reports[i]

		// The CB may have tripped mid-batch
		if cfg.CB.State() == infra.CBOpen {
			log.Debug().Msg("retry_cron: circuit breaker opened mid-batch, stopping")
			return
		}

		session, err := cfg.CaixaRepo.FindSessionByID(ctx, report.SessionID)
		if err != nil {
			log.Error().Err(err).Str("session_id", report.SessionID.String()).
				Msg("retry_cron: session not found for report")
			continue
		}

		deliverErr := cfg.CB.Execute(func() error {
			pdfPath := ""
			if report.PDFPath != nil {
				pdfPath = *report.PDFPath
			}
			if pdfPath == "" {
				path, genErr := infra.GenerateClosureReportPDF(session, cfg.RestaurantName, cfg.PDFStoragePath)
				if genErr != nil {
					return genErr
				}
				pdfPath = path
				report.PDFPath = &pdfPath
			}
			if report.Email == nil || *report.Email == "" {
				return nil // PDF only, nothing to send
			}
			subject := fmt.Sprintf("%s — Fechamento de caixa %s",
				cfg.RestaurantName, session.OpenedAt.Format("02/01/2006"))
			return cfg.Mailer.SendReport(*report.Email, subject, closureEmailBody(session), pdfPath)
		})

		if deliverErr != nil {
			report.RetryCount++
			errMsg := deliverErr.Error()
			report.LastError = &errMsg
			nextRetry := time.Now().Add(computeRetryBackoff(report.RetryCount))
			report.NextRetryAt = &nextRetry

			if report.RetryCount >= MaxClosureRetries {
				report.Status = "error"
				report.NextRetryAt = nil
				log.Error().
					Str("report_id", report.ID.String()).
					Str("session_id", report.SessionID.String()).
					Int("retries", report.RetryCount).
					Msg("retry_cron: max retries exceeded, moving to error/DLQ")

				payload := fmt.Sprintf(`{"session_id":%q}`, report.SessionID.String())
				SendToDLQ(ctx, cfg.RDB, QueueClosure, "closure", []byte(payload),
					fmt.Sprintf("max retries (%d) exceeded: %s", MaxClosureRetries, errMsg),
					report.RetryCount)
			} else {
				log.Warn().
					Str("report_id", report.ID.String()).
					Int("retry_count", report.RetryCount).
					Time("next_retry_at", *report.NextRetryAt).
					Msg("retry_cron: delivery failed, scheduled next attempt")
			}

			_ = cfg.ReportRepo.Update(ctx, report)
			continue
		}

		report.Status = "delivered"
		report.NextRetryAt = nil
		report.LastError = nil
		_ = cfg.ReportRepo.Update(ctx, report)

		log.Info().
			Str("report_id", report.ID.String()).
			Str("session_id", report.SessionID.String()).
			Int("total_retries", report.RetryCount).
			Msg("retry_cron: report delivered after retry")
	}
}
