package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/challengerucars/backoffice-go/internal/domain"
	"github.com/challengerucars/backoffice-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Backup & Restore Handlers
// ============================================================

// createBackupHandler streams the envelope as a JSON download.
func createBackupHandler(svc *service.BackupService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /backup")
		defer span.End()

		envelope, err := svc.Create(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		filename := fmt.Sprintf("backup-%s.json", time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
		writeJSON(w, http.StatusOK, envelope)
	}
}

func restoreBackupHandler(svc *service.BackupService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /backup/restore")
		defer span.End()

		var envelope domain.BackupEnvelope
		if err := decodeJSON(r, &envelope); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		if err := svc.Restore(ctx, &envelope); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"status":    "restored",
			"backup_id": envelope.BackupID,
		})
	}
}

// ============================================================
// Audit Log Handler
// ============================================================

func listAuditEntriesHandler(audit *service.AuditRecorder, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /audit")
		defer span.End()

		entries, err := audit.ListEntries(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}
