package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	sheetClusters = "Clusters"
	sheetPairs    = "ClosestPairs"
	sheetActivity = "Activity"
)

// WriteWorkbook writes the full analysis as an XLSX workbook with one sheet
// per report: cluster summaries, closest pairs and activity intervals.
func WriteWorkbook(path string, doc ClustersDocument, pairs map[string]PairEntry, activity map[string]ActivityEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetClusters); err != nil {
		return fmt.Errorf("report: workbook sheet %s: %w", sheetClusters, err)
	}
	if err := f.SetSheetRow(sheetClusters, "A1", &[]any{"cluster_id", "size", "median_len", "members"}); err != nil {
		return fmt.Errorf("report: workbook header: %w", err)
	}
	for i, s := range doc.Summary {
		members := ""
		if i < len(doc.Clusters) {
			members = strings.Join(doc.Clusters[i], " ")
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetClusters, cell, &[]any{s.ClusterID, s.Size, s.MedianLen, members}); err != nil {
			return fmt.Errorf("report: workbook row %s: %w", cell, err)
		}
	}

	if _, err := f.NewSheet(sheetPairs); err != nil {
		return fmt.Errorf("report: workbook sheet %s: %w", sheetPairs, err)
	}
	if err := f.SetSheetRow(sheetPairs, "A1", &[]any{"cluster_id", "id_a", "id_b", "distance"}); err != nil {
		return fmt.Errorf("report: workbook header: %w", err)
	}
	// Pair keys are exactly c0..c<n-1>, so index order beats lexicographic.
	for i := 0; i < len(pairs); i++ {
		key := clusterID(i)
		entry := pairs[key]
		row := []any{key, "", "", ""}
		if entry.Pair != nil {
			row = []any{key, entry.Pair[0], entry.Pair[1], *entry.Distance}
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetPairs, cell, &row); err != nil {
			return fmt.Errorf("report: workbook row %s: %w", cell, err)
		}
	}

	if _, err := f.NewSheet(sheetActivity); err != nil {
		return fmt.Errorf("report: workbook sheet %s: %w", sheetActivity, err)
	}
	if err := f.SetSheetRow(sheetActivity, "A1", &[]any{"series_id", "l", "r", "score"}); err != nil {
		return fmt.Errorf("report: workbook header: %w", err)
	}
	for i, id := range sortedKeys(activity) {
		entry := activity[id]
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetActivity, cell, &[]any{id, entry.L, entry.R, entry.Score}); err != nil {
			return fmt.Errorf("report: workbook row %s: %w", cell, err)
		}
	}

	return f.SaveAs(path)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
