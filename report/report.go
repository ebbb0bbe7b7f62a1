// Package report serializes analysis results into the JSON, Markdown, HTML
// and XLSX report files consumed by downstream tooling.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"

	"github.com/pulsedb/pulsecluster"
)

// ClusterSummary describes one cluster in the clusters.json summary list.
type ClusterSummary struct {
	ClusterID string `json:"cluster_id"`
	Size      int    `json:"size"`
	MedianLen int    `json:"median_len"`
}

// ClustersDocument is the external shape of clusters.json.
type ClustersDocument struct {
	Clusters [][]string       `json:"clusters"`
	Summary  []ClusterSummary `json:"summary"`
}

// PairEntry is one closest-pair record; both fields serialize to null for
// clusters with fewer than two members.
type PairEntry struct {
	Pair     []string `json:"pair"`
	Distance *float64 `json:"distance"`
}

// ActivityEntry is the external shape of one kadane.json record.
type ActivityEntry struct {
	L     int     `json:"l"`
	R     int     `json:"r"`
	Score float64 `json:"score"`
}

// clusterID formats the stable report key for cluster index idx.
func clusterID(idx int) string {
	return fmt.Sprintf("c%d", idx)
}

// Clusters assembles the clusters.json document, computing the per-cluster
// summary (size and median series length) from the original series map.
func Clusters(clusters [][]string, series map[string][]float64) ClustersDocument {
	summary := make([]ClusterSummary, len(clusters))
	for idx, ids := range clusters {
		lengths := make([]float64, len(ids))
		for i, id := range ids {
			lengths[i] = float64(len(series[id]))
		}
		medianLen := 0
		if med, err := stats.Median(lengths); err == nil {
			medianLen = int(med)
		}
		summary[idx] = ClusterSummary{
			ClusterID: clusterID(idx),
			Size:      len(ids),
			MedianLen: medianLen,
		}
	}
	if clusters == nil {
		clusters = [][]string{}
	}
	return ClustersDocument{Clusters: clusters, Summary: summary}
}

// ClosestPairs converts per-cluster results into the closest_pairs.json
// mapping, keyed c0, c1, ... in cluster order.
func ClosestPairs(results []*pulsecluster.ClosestPairResult) map[string]PairEntry {
	out := make(map[string]PairEntry, len(results))
	for idx, res := range results {
		entry := PairEntry{}
		if res != nil {
			d := res.Distance
			entry.Pair = []string{res.A, res.B}
			entry.Distance = &d
		}
		out[clusterID(idx)] = entry
	}
	return out
}

// Activity converts per-series intervals into the kadane.json mapping.
func Activity(intervals map[string]pulsecluster.ActivityInterval) map[string]ActivityEntry {
	out := make(map[string]ActivityEntry, len(intervals))
	for id, iv := range intervals {
		out[id] = ActivityEntry{L: iv.L, R: iv.R, Score: iv.Score}
	}
	return out
}

// WriteJSON writes v to path as two-space-indented JSON.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshaling %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}

// RunMeta captures run-level context for the Markdown/HTML summary.
type RunMeta struct {
	RunID        string
	GeneratedAt  time.Time
	Metric       string
	SeriesCount  int
	ClusterCount int
	PlotCount    int
	PlotsDir     string
}

// NewRunMeta stamps a fresh run id and timestamp for a completed analysis.
func NewRunMeta(metric string, seriesCount, clusterCount int) RunMeta {
	return RunMeta{
		RunID:        uuid.NewString(),
		GeneratedAt:  time.Now().UTC(),
		Metric:       metric,
		SeriesCount:  seriesCount,
		ClusterCount: clusterCount,
	}
}
