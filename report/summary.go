package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/gomarkdown/markdown"
)

// Summary renders the run summary as Markdown.
func Summary(meta RunMeta) string {
	lines := []string{
		"# Run Summary",
		fmt.Sprintf("- run id: `%s`", meta.RunID),
		fmt.Sprintf("- generated: %s", meta.GeneratedAt.Format("2006-01-02 15:04:05 UTC")),
		fmt.Sprintf("- metric: **%s**", meta.Metric),
		fmt.Sprintf("- total series: **%d**", meta.SeriesCount),
		fmt.Sprintf("- clusters formed: **%d**", meta.ClusterCount),
		"- closest-pair computed per cluster",
		"- Kadane intervals saved to `kadane.json`",
	}
	if meta.PlotsDir != "" {
		lines = append(lines, fmt.Sprintf("- example plots saved under `%s` (first %d series)", meta.PlotsDir, meta.PlotCount))
	}
	return strings.Join(lines, "\n") + "\n"
}

// WriteMarkdown writes text to path verbatim.
func WriteMarkdown(path, text string) error {
	return os.WriteFile(path, []byte(text), 0o644)
}

// RenderHTML converts Markdown to an HTML fragment.
func RenderHTML(md []byte) []byte {
	return markdown.ToHTML(md, nil, nil)
}

// WriteHTML renders md and writes the result to path.
func WriteHTML(path string, md []byte) error {
	return os.WriteFile(path, RenderHTML(md), 0o644)
}
