package commands

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aibiikeo/journal-cli/pkg/journal"
	"github.com/aibiikeo/journal-cli/pkg/printers"
)

func addImages(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "images",
		Short: "work with entry image attachments",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addImagesList(cmd)
	addImagesDelete(cmd)
	addImagesFetch(cmd)
	addImagesUpload(cmd)

	topLevel.AddCommand(cmd)
}

func addImagesList(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "list <entry-id>",
		Short: "list the attachments of an entry",
		Example: `
journal images list 42
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}
			ctx := context.Background()
			userID, err := env.resolveUser(ctx)
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}
			images, err := env.journal.Images(ctx, userID, id)
			if err != nil {
				return oo.HandleError(err)
			}
			pp := printers.PrettyPrint{}
			pp.Images(images...)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addImagesDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "delete <entry-id> <image-id>",
		Short: "delete one attachment",
		Example: `
journal images delete 42 7
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}
			ctx := context.Background()
			userID, err := env.resolveUser(ctx)
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}
			imageID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return err
			}
			if err := env.journal.DeleteImage(ctx, userID, id, imageID); err != nil {
				return oo.HandleError(err)
			}
			pp := printers.PrettyPrint{}
			pp.Message("Image deleted.")
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addImagesFetch(topLevel *cobra.Command) {
	var width, height int
	var out string

	cmd := &cobra.Command{
		Use:   "fetch <file-name>",
		Short: "download an image, optionally resized",
		Long:  "Download an image by file name. The server resizes only when both --width and --height are given; otherwise the original is fetched.",
		Example: `
journal images fetch beach.jpg
journal images fetch beach.jpg --width 320 --height 240 -o thumb.jpg
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}
			data, err := env.journal.Image(context.Background(), args[0], width, height)
			if err != nil {
				return oo.HandleError(err)
			}
			dest := out
			if dest == "" {
				dest = filepath.Base(args[0])
			}
			if err := os.WriteFile(dest, data, 0o644); err != nil {
				return err
			}
			pp := printers.PrettyPrint{}
			pp.Message("Saved " + dest + ".")
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Resize width in pixels.")
	cmd.Flags().IntVar(&height, "height", 0, "Resize height in pixels.")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Destination file. Defaults to the image name.")

	topLevel.AddCommand(cmd)
}

func addImagesUpload(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "upload standalone images",
		Example: `
journal images upload beach.jpg sunset.jpg
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}
			files, err := journal.LoadFiles(args)
			if err != nil {
				return err
			}
			msg, err := env.journal.UploadImages(context.Background(), files)
			if err != nil {
				return oo.HandleError(err)
			}
			pp := printers.PrettyPrint{}
			pp.Message(msg)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
