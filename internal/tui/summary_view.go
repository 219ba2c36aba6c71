// Package tui renders sync outcomes for the terminal syncd runs in.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-record-sync/models"
)

// RenderSummary renders one line per scope plus the errors of the pass.
func RenderSummary(s models.SyncSummary) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("sync pass: "))
	b.WriteString(renderResult(s.Result))

	if s.PreflightError != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("preflight: " + s.PreflightError.Error()))
		return appStyle.Render(b.String())
	}

	rows := make([]string, 0, len(s.Scopes))
	for _, sc := range s.Scopes {
		rows = append(rows, renderScope(sc))
	}
	if len(rows) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	if len(s.Errors) > 0 {
		b.WriteString("\n")
		for _, err := range s.Errors {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render("! "))
			b.WriteString(err.Error())
		}
	}

	return appStyle.Render(b.String())
}

func renderScope(sc models.ScopedSyncSummary) string {
	name := lipgloss.NewStyle().Width(8).Render(sc.Scope.String())

	pulled := len(sc.Pull.ChangedRecordIDs)
	evicted := len(sc.Pull.DeletedRecordIDs)
	if sc.ZonePull != nil {
		pulled += len(sc.ZonePull.ZoneChanges.ChangedRecordIDs)
		evicted += len(sc.ZonePull.ZoneChanges.DeletedRecordIDs) + len(sc.ZonePull.ZoneDeletions.DeletedRecordIDs)
	}

	detail := fmt.Sprintf("pulled %d, evicted %d, pushed %d, deleted %d",
		pulled, evicted, len(sc.Push.ChangedRecordIDs), len(sc.Push.DeletedRecordIDs))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		name,
		lipgloss.NewStyle().Width(17).Render(renderResult(sc.Result)),
		helpStyle.Render(detail),
	)
}

func renderResult(r models.SyncResult) string {
	switch r {
	case models.SyncSuccess:
		return successStyle.Render(r.String())
	case models.SyncPartialFailure:
		return partialStyle.Render(r.String())
	default:
		return failureStyle.Render(r.String())
	}
}
