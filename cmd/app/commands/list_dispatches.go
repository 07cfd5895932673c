package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/allisson/dispatcher/internal/dispatch/http/dto"
	dispatchUseCase "github.com/allisson/dispatcher/internal/dispatch/usecase"
)

// ListFlags holds the optional history filters given on the command line.
type ListFlags struct {
	Recipient      string
	Status         string
	StartTimestamp string
	EndTimestamp   string
}

// RunListDispatches prints the dispatch history matching flags, oldest first.
// Filters are parsed exactly like the query string of GET /.
func RunListDispatches(
	ctx context.Context,
	useCase dispatchUseCase.DispatchUseCase,
	logger *slog.Logger,
	writer io.Writer,
	flags ListFlags,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	req := dto.ListDispatchesRequest{
		Recipient:      flags.Recipient,
		Status:         flags.Status,
		StartTimestamp: flags.StartTimestamp,
		EndTimestamp:   flags.EndTimestamp,
	}
	filter, err := req.ToFilter()
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	records, err := useCase.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list dispatches: %w", err)
	}

	logger.Debug("dispatches listed", slog.Int("count", len(records)))

	response := dto.MapRecordsToListResponse(records)
	if format == FormatJSON {
		return writeJSON(writer, response)
	}

	return outputDispatchesText(writer, response)
}

func outputDispatchesText(writer io.Writer, records []dto.DispatchRecordResponse) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(writer, "No dispatches found")
		return err
	}

	tw := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tRECIPIENT\tSTATUS\tEVENT TIME\tBODY")
	for _, r := range records {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			r.ID, r.Recipient, r.Status, r.EventTime.Format(time.RFC3339), preview(r.Body, 40))
	}
	return tw.Flush()
}

// preview shortens s to at most n runes for tabular output.
func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
