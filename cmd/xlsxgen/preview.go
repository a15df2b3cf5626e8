package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aerissecure/xlsxgen/xlsx"
)

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview FILE.xlsx",
		Short: "Renders a workbook written by convert as an HTML table",
		Args:  cobra.ExactArgs(1),
		RunE:  preview,
	}
	cmd.Flags().StringP("output", "o", "", "Output HTML file (default: stdout).")
	return cmd
}

func preview(cmd *cobra.Command, args []string) error {
	debugCmd(cmd)

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}

	m, err := xlsx.ParseWorkbookModel(f, info.Size())
	if err != nil {
		return err
	}
	for _, sheet := range m.Sheets {
		log.Debugf("Sheet %s", sheet)
	}
	html := xlsx.RenderWorkbookHTML(m)

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), html)
		return err
	}
	return os.WriteFile(output, []byte(html), 0o644)
}
