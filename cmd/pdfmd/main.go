// Command pdfmd converts a PDF into structural Markdown.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
