package orchestrators

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	subscriberStore "fringe/internal/adapters/storage/subscriber"
	domain "fringe/internal/domain/subscriber"
)

// ImportSubscribersInput carries the parsed CSV reader and import options.
// PRE: Reader is a valid CSV stream with a header row; ActorID is non-empty.
// POST: Returns aggregate counts and per-row errors; writes are skipped when DryRun=true.
// INVARIANT: Existing subscribers are never deleted; IDs are preserved on update.
type ImportSubscribersInput struct {
	Reader     io.Reader
	ActorID    string
	DryRun     bool
	UpdateMode bool
}

// ImportSubscribersResult holds aggregate counts and per-row errors from an import run.
type ImportSubscribersResult struct {
	Total   int                         `json:"total"`
	Created int                         `json:"created"`
	Updated int                         `json:"updated"`
	Skipped int                         `json:"skipped"`
	Errors  []ImportSubscribersRowError `json:"errors"`
	DryRun  bool                        `json:"dry_run"`
	Unknown []string                    `json:"unknown_columns,omitempty"`
}

// ImportSubscribersRowError describes a validation or processing error for a single CSV row.
type ImportSubscribersRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportSubscribersDeps holds external dependencies for the import orchestrator.
type ImportSubscribersDeps struct {
	SubscriberStore subscriberStore.Store
	GenerateID      func() string
	Now             func() time.Time
}

// ExecuteImportSubscribers parses a CSV stream and creates or updates subscriber records.
// PRE: Input.Reader contains a valid CSV with at least an EMAIL column.
// POST: Subscribers are created/updated/skipped according to DryRun and UpdateMode flags;
// aggregate counts and per-row errors are returned.
// INVARIANT: When DryRun=true no writes occur; existing subscriber IDs are preserved on update.
func ExecuteImportSubscribers(ctx context.Context, input ImportSubscribersInput, deps ImportSubscribersDeps) (ImportSubscribersResult, error) {
	cr := csv.NewReader(input.Reader)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return ImportSubscribersResult{}, err
	}

	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.ToUpper(strings.TrimSpace(h))] = i
	}

	if _, ok := colIdx["EMAIL"]; !ok {
		return ImportSubscribersResult{}, &ImportValidationError{Message: "CSV missing required column: EMAIL"}
	}

	known := map[string]bool{"ID": true, "EMAIL": true, "NAME": true, "STATUS": true, "SOURCE": true}
	var unknownCols []string
	for _, h := range header {
		if !known[strings.ToUpper(strings.TrimSpace(h))] {
			unknownCols = append(unknownCols, h)
		}
	}

	getCol := func(row []string, col string) string {
		i, ok := colIdx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	result := ImportSubscribersResult{DryRun: input.DryRun, Unknown: unknownCols}
	rowNum := 1

	// FieldsPerRecord=-1 so a short or long row reaches us as data, not a
	// reader error that would abort the remaining rows.
	cr.FieldsPerRecord = -1

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowNum++
			result.Total++
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				result.Errors = append(result.Errors, ImportSubscribersRowError{Row: rowNum, Message: "malformed row: " + perr.Err.Error()})
				continue
			}
			// Not a row-level parse problem; the stream itself is broken.
			return result, err
		}
		rowNum++
		result.Total++

		addr, parseErr := mail.ParseAddress(getCol(row, "EMAIL"))
		if parseErr != nil {
			result.Errors = append(result.Errors, ImportSubscribersRowError{Row: rowNum, Message: "invalid email: " + getCol(row, "EMAIL")})
			continue
		}
		email := strings.ToLower(addr.Address)
		name := getCol(row, "NAME")

		status := strings.ToLower(getCol(row, "STATUS"))
		if status != domain.StatusActive && status != domain.StatusUnsubscribed && status != domain.StatusBounced {
			status = domain.StatusActive
		}

		existing, lookupErr := deps.SubscriberStore.GetByEmail(ctx, email)
		exists := lookupErr == nil

		if exists && !input.UpdateMode {
			result.Skipped++
			continue
		}

		if input.DryRun {
			if exists {
				result.Updated++
			} else {
				result.Created++
			}
			continue
		}

		if exists {
			if name != "" {
				existing.Name = name
			}
			existing.Status = status
			if err := deps.SubscriberStore.Save(ctx, existing); err != nil {
				log.Error().Err(err).Int("row", rowNum).Str("email", email).Msg("subscriber import save failed")
				result.Errors = append(result.Errors, ImportSubscribersRowError{Row: rowNum, Message: "save failed (see server log)"})
				continue
			}
			result.Updated++
		} else {
			sub := domain.Subscriber{
				ID:           deps.GenerateID(),
				Email:        email,
				Name:         name,
				Source:       domain.SourceImport,
				Status:       status,
				SubscribedAt: deps.Now(),
			}
			if err := deps.SubscriberStore.Save(ctx, sub); err != nil {
				log.Error().Err(err).Int("row", rowNum).Str("email", email).Msg("subscriber import save failed")
				result.Errors = append(result.Errors, ImportSubscribersRowError{Row: rowNum, Message: "save failed (see server log)"})
				continue
			}
			result.Created++
		}
	}

	log.Info().
		Str("actor", input.ActorID).
		Bool("dry_run", input.DryRun).
		Bool("update_mode", input.UpdateMode).
		Int("total", result.Total).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Int("errors", len(result.Errors)).
		Msg("subscriber import")

	return result, nil
}

// ImportValidationError is returned when the CSV structure is invalid (e.g. missing required columns).
type ImportValidationError struct {
	Message string
}

func (e *ImportValidationError) Error() string {
	return e.Message
}
