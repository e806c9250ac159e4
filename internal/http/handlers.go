package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"novaspend/internal/core"
	"novaspend/internal/services"
)

const maxBodyBytes = 1 << 20 // 1MB, plenty for any backup document

type expenseRequest struct {
	Amount      json.Number `json:"amount"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Notes       string      `json:"notes"`
}

// handleExpenses records a new expense (POST).
func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req expenseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Numeric validation happens here; the ledger assumes a valid amount
	amount, err := core.ParseExpenseAmount(req.Amount.String())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	input := core.ExpenseInput{
		Amount:      amount,
		Category:    core.Category(strings.TrimSpace(req.Category)),
		Date:        strings.TrimSpace(req.Date),
		Description: strings.TrimSpace(req.Description),
		Notes:       strings.TrimSpace(req.Notes),
	}

	tx, err := s.ledger.RecordExpense(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":     "Expense added successfully!",
		"transaction": tx,
	})
}

// handleTransactions returns the ledger, newest first (GET).
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	txs, err := s.ledger.Transactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction list error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": txs})
}

// handleSummary returns expenses aggregated per category (GET).
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	breakdown, err := s.ledger.CategoryBreakdown(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Category breakdown error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load summary")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": breakdown})
}

// handleStats returns the cached summary plus the display currency (GET).
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	stats, err := s.stats.Read(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Stats read error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	currency, err := s.settings.Currency(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Currency read error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": stats, "currency": currency})
}

type amountRequest struct {
	Value json.Number `json:"value"`
}

// handleBalance overwrites the declared balance (POST).
func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	s.handleStatsEdit(w, r, s.stats.AdjustBalance, "Balance updated")
}

// handleBudget overwrites the monthly budget (POST).
func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	s.handleStatsEdit(w, r, s.stats.AdjustBudget, "Budget updated")
}

func (s *Server) handleStatsEdit(w http.ResponseWriter, r *http.Request, apply func(context.Context, decimal.Decimal) error, ack string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req amountRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	value, err := core.ParseSignedAmount(req.Value.String())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	if err := apply(r.Context(), value); err != nil {
		slog.ErrorContext(r.Context(), "Stats edit error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update stats")
		return
	}
	writeMessage(w, http.StatusOK, ack)
}

// handleSettings reads (GET) or saves (PUT) the full settings record.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		cfg, err := s.settings.Read(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Settings read error", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to load settings")
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	case http.MethodPut:
		var cfg core.Settings
		if err := decodeBody(r, &cfg); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := s.settings.Save(r.Context(), cfg); err != nil {
			if isValidationError(err) {
				writeError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			slog.ErrorContext(r.Context(), "Settings save error", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save settings")
			return
		}
		writeMessage(w, http.StatusOK, "Settings saved successfully!")
	default:
		methodNotAllowed(w, "GET, PUT")
	}
}

type themeRequest struct {
	Theme string `json:"theme"`
}

// handleTheme persists a theme change immediately (POST), independent of a
// full settings save.
func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req themeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.settings.SetTheme(r.Context(), core.Theme(req.Theme)); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "Theme updated")
}

// handleBackup downloads the backup document (GET) or restores one (POST).
func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		data, err := s.backup.ExportJSON(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Backup export error", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to export data")
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+services.BackupFilename+`"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	case http.MethodPost:
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		doc, err := services.ParseDocument(body)
		if err != nil {
			// Decode failed before any write: the store is untouched
			writeError(w, http.StatusBadRequest, "Error importing data. Please check the file format.")
			return
		}
		if err := s.backup.Import(r.Context(), doc); err != nil {
			slog.ErrorContext(r.Context(), "Backup import error", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to import data")
			return
		}
		writeMessage(w, http.StatusOK, "Data imported successfully!")
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

type clearRequest struct {
	Confirm bool `json:"confirm"`
}

// handleClear removes every record (POST). The destructive action requires
// an explicit confirmation flag from the caller.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req clearRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Confirm {
		writeError(w, http.StatusBadRequest, "confirmation required")
		return
	}

	if err := s.backup.Clear(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Clear error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear data")
		return
	}
	writeMessage(w, http.StatusOK, "All data has been cleared.")
}

func decodeBody(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrInvalidTheme) ||
		errors.Is(err, core.ErrInvalidCurrency)
}
