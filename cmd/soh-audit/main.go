package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"bitbucket.org/mmdatafocus/stockaudit_backend/config"
	"bitbucket.org/mmdatafocus/stockaudit_backend/models/reports"
	"bitbucket.org/mmdatafocus/stockaudit_backend/utils"
	"bitbucket.org/mmdatafocus/stockaudit_backend/workflow"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func main() {
	movementsPath := flag.String("movements", "", "Required: movement log workbook (.xlsx)")
	snapshotPath := flag.String("snapshot", "", "Required: stock-on-hand snapshot workbook (.xlsx)")
	outPath := flag.String("out", "soh-confidence.xlsx", "Output report workbook")
	movementsSheet := flag.String("movements-sheet", "", "Optional: sheet name in the movement workbook (default first sheet)")
	snapshotSheet := flag.String("snapshot-sheet", "", "Optional: sheet name in the snapshot workbook (default first sheet)")
	tolerance := flag.String("tolerance", "", "Optional: delta tolerance override (e.g. 0.5)")
	materialPad := flag.Int("material-pad", -1, "Optional: material zero-pad width override")
	storLocPad := flag.Int("storloc-pad", -1, "Optional: storage location zero-pad width override")
	flag.Parse()

	// Local runs keep their env in a .env file; absence is fine.
	_ = godotenv.Load()

	if strings.TrimSpace(*movementsPath) == "" || strings.TrimSpace(*snapshotPath) == "" {
		fmt.Fprintln(os.Stderr, "--movements and --snapshot are required")
		os.Exit(1)
	}

	settings := config.DefaultSettings()
	if *materialPad >= 0 {
		settings.MaterialPadWidth = *materialPad
	}
	if *storLocPad >= 0 {
		settings.StorageLocationPadWidth = *storLocPad
	}
	if strings.TrimSpace(*tolerance) != "" {
		tol, err := decimal.NewFromString(strings.TrimSpace(*tolerance))
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid tolerance: %v\n", err)
			os.Exit(1)
		}
		settings.DeltaTolerance = tol
	}

	movementRows, err := readNamedWorkbook(*movementsPath, *movementsSheet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "movement workbook: %v\n", err)
		os.Exit(1)
	}
	snapshotGrid, err := readGridWorkbook(*snapshotPath, *snapshotSheet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "snapshot workbook: %v\n", err)
		os.Exit(1)
	}

	result, err := workflow.RunReconciliation(context.Background(), movementRows, snapshotGrid, settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reconciliation failed: %v\n", err)
		os.Exit(1)
	}

	if err := reports.ExportXlsx(result.Rows, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "report export: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("run %s: %d rows, %d keys matched across both reports -> %s\n",
		result.RunId, len(result.Rows), result.MatchedKeys, *outPath)
}

func readNamedWorkbook(path, sheet string) ([]map[string]any, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return utils.ReadNamedRows(f, sheet)
}

func readGridWorkbook(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return utils.ReadRawGrid(f, sheet)
}
