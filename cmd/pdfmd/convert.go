package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pdfmd"
	"pdfmd/model"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file.pdf>",
	Short: "Convert a PDF file to Markdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().String("image-mode", "none", "image disposition: none, base64, relative, save")
	convertCmd.Flags().String("image-save-path", "", "directory to write images to (required for --image-mode=save)")
	convertCmd.Flags().String("title-prefix", "", "override the image filename prefix")
	convertCmd.Flags().StringSlice("table-keywords", nil, "override the table-header keyword list")
	convertCmd.Flags().Bool("disable-page-number-stripping", false, "do not strip repeated page-number lines")
	convertCmd.Flags().Bool("json", false, "emit the full result (pages, images, warnings) as JSON instead of raw Markdown")

	for _, name := range []string{"image-mode", "image-save-path", "title-prefix", "table-keywords", "disable-page-number-stripping", "json"} {
		_ = viper.BindPFlag(name, convertCmd.Flags().Lookup(name))
	}

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	mode, err := parseImageMode(viper.GetString("image-mode"))
	if err != nil {
		return err
	}

	conv := pdfmd.Open(args[0]).
		ImageMode(mode).
		ImageSavePath(viper.GetString("image-save-path")).
		TitlePrefix(viper.GetString("title-prefix"))

	if keywords := viper.GetStringSlice("table-keywords"); len(keywords) > 0 {
		conv = conv.TableKeywords(keywords)
	}
	if viper.GetBool("disable-page-number-stripping") {
		conv = conv.DisablePageNumberStripping()
	}

	result, err := conv.Convert(context.Background())
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning [%s p%d]: %s\n", w.Stage, w.PageIndex, w.Message)
	}

	if viper.GetBool("json") {
		encoded, err := sonic.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		fmt.Println(string(encoded))
		return nil
	}

	fmt.Println(strings.Join(result.Pages, "\n\n---\n\n"))
	return nil
}

func parseImageMode(s string) (model.ImageMode, error) {
	switch s {
	case "", "none":
		return model.ImageNone, nil
	case "base64":
		return model.ImageBase64, nil
	case "relative":
		return model.ImageRelative, nil
	case "save":
		return model.ImageSave, nil
	default:
		return model.ImageNone, fmt.Errorf("unknown image mode %q", s)
	}
}
