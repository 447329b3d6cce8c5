package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Juliorubiodev/inku-go/internal/application"
	"github.com/Juliorubiodev/inku-go/internal/domain/model"
)

func newUploadCmd(app *App) *cobra.Command {
	var (
		mangaID     string
		chapter     int
		title       string
		pdfPath     string
		thumbPath   string
		createTitle string
		description string
		tags        string
	)

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a chapter PDF",
		Long: "Upload a chapter: obtain presigned URLs, PUT the PDF (and optional " +
			"thumbnail) to object storage, then register the chapter with the catalog. " +
			"Pass --create-title to create the manga entry first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConfigured(app); err != nil {
				return err
			}
			if mangaID == "" || pdfPath == "" {
				return fmt.Errorf("--manga and --pdf are required")
			}

			if createTitle != "" {
				var tagList []string
				for _, t := range strings.Split(tags, ",") {
					if t = strings.TrimSpace(t); t != "" {
						tagList = append(tagList, t)
					}
				}
				created, err := app.Library.CreateManga(cmd.Context(), model.NewManga{
					ID:          mangaID,
					Title:       createTitle,
					Description: description,
					Tags:        tagList,
				})
				if err != nil {
					return err
				}
				fmt.Printf("Created manga %s\n", accentStyle.Render(created.ID))
			}

			pdf, err := os.ReadFile(pdfPath)
			if err != nil {
				return fmt.Errorf("read pdf: %w", err)
			}

			var thumb []byte
			if thumbPath != "" {
				if thumb, err = os.ReadFile(thumbPath); err != nil {
					return fmt.Errorf("read thumbnail: %w", err)
				}
			}

			upload, err := app.Uploads.PublishChapter(cmd.Context(), application.ChapterDraft{
				MangaID:       mangaID,
				ChapterNumber: chapter,
				Title:         title,
				PDF:           pdf,
				Thumb:         thumb,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Uploaded chapter %d of %s %s\n",
				upload.ChapterNumber,
				accentStyle.Render(upload.MangaID),
				dimStyle.Render("("+upload.S3Key+")"),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&mangaID, "manga", "", "manga id")
	cmd.Flags().IntVar(&chapter, "chapter", 1, "chapter number")
	cmd.Flags().StringVar(&title, "title", "", "chapter title")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "path to the chapter PDF")
	cmd.Flags().StringVar(&thumbPath, "thumb", "", "path to a thumbnail image")
	cmd.Flags().StringVar(&createTitle, "create-title", "", "create the manga first with this title")
	cmd.Flags().StringVar(&description, "description", "", "manga description (with --create-title)")
	cmd.Flags().StringVar(&tags, "tags", "", "comma-separated manga tags (with --create-title)")
	return cmd
}
