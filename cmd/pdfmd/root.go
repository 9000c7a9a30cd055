package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "pdfmd",
	Short: "Reconstruct Markdown structure from PDF documents",
	Long: `pdfmd reads a PDF and reconstructs its structural Markdown: headings,
lists, code and quote blocks, tables, footnotes, inline emphasis, and
in-flow images, driven by layout statistics rather than any embedded
document structure.`,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdfmd.yaml or ~/.config/pdfmd/pdfmd.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdfmd")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdfmd"))
		}
	}

	viper.SetEnvPrefix("PDFMD")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
