package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/combot/combot/internal/service"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

// printRecipients lists who a send would message, without sending.
func printRecipients(w io.Writer, spaceName string, plan *service.Recipients) {
	fmt.Fprintf(w, "Total of people in this %s: %d\n", spaceName, plan.Total)
	if plan.Total == 0 {
		return
	}

	table := newTable(w, []string{"Email", "Action"})
	for _, email := range plan.Emails {
		table.Append([]string{email, "would send 1:1"})
	}
	for _, s := range plan.Skipped {
		table.Append([]string{s.Email, "skip (" + s.Reason + ")"})
	}
	table.Render()
}

// printReport shows the outcome of a send.
func printReport(w io.Writer, report *service.Report) {
	fmt.Fprintf(w, "Successfully sent a message to %s.\n", report.RoomID)
	if len(report.Deliveries) == 0 && len(report.Skipped) == 0 {
		return
	}

	table := newTable(w, []string{"Email", "Status", "Detail"})
	for _, d := range report.Deliveries {
		if d.OK() {
			table.Append([]string{d.Email, "sent", d.MessageID})
			continue
		}
		table.Append([]string{d.Email, "failed", d.Err.Error()})
	}
	for _, s := range report.Skipped {
		table.Append([]string{s.Email, "skipped", s.Reason})
	}
	table.Render()
}
