package options

import (
	"github.com/spf13/cobra"
)

// EntryOptions captures the fields of a journal entry draft.
type EntryOptions struct {
	Title   string
	Content string
	Date    string
	Images  []string
}

// AddEntryArgs wires draft flags on the provided command.
func AddEntryArgs(cmd *cobra.Command, o *EntryOptions) {
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"Entry title.")
	cmd.Flags().StringVarP(&o.Content, "content", "c", "",
		"Entry content.")
	cmd.Flags().StringVar(&o.Date, "date", "",
		"Entry date in RFC 3339 form. Defaults to now.")
	cmd.Flags().StringArrayVarP(&o.Images, "image", "i", nil,
		"Path to an image attachment. Repeatable.")
}
