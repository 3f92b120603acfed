// Package printers renders CLI output for entries and images.
package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/aibiikeo/journal-cli/pkg/journal"
)

const layoutUS = "January 2, 2006"

type PrettyPrint struct{}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

// Entries prints the user's entry list as a table.
func (pp *PrettyPrint) Entries(entries ...journal.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("ID", "DATE", "TITLE")
	for _, e := range entries {
		table.AddRow(e.ID, e.EntryDate.Local().Format(layoutUS), e.Title)
	}
	fmt.Println(table)
	fmt.Println("")
}

// Entry prints one entry in full.
func (pp *PrettyPrint) Entry(e *journal.Entry) {
	t := color.New(color.Bold)
	f := color.New(color.Faint)
	_, _ = t.Println(e.Title)
	_, _ = f.Println(e.EntryDate.Local().Format(layoutUS))
	fmt.Println("")
	fmt.Println(e.Content)
	fmt.Println("")
}

// Images prints an entry's attachments as a table.
func (pp *PrettyPrint) Images(images ...journal.Image) {
	if len(images) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" no images\n\n")
		return
	}

	table := uitable.New()
	table.AddRow("ID", "NAME")
	for _, img := range images {
		table.AddRow(img.ID, img.Name)
	}
	fmt.Println(table)
	fmt.Println("")
}

// Message prints a success line.
func (pp *PrettyPrint) Message(msg string) {
	g := color.New(color.FgGreen)
	_, _ = g.Println(msg)
}

// Hint prints a secondary suggestion line.
func (pp *PrettyPrint) Hint(msg string) {
	y := color.New(color.FgHiYellow, color.Italic)
	_, _ = y.Println(msg)
}
