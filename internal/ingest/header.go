package ingest

import "strings"

// HeaderKeywords are the tokens used to locate the header row of a Mongolian
// budget template, with English fallbacks for translated files.
var HeaderKeywords = []string{
	"төрөл", "хийгдэх ажил", "нийт төсөв", "давтамж", "тайлбар",
	"хару|/хугацаа", "цогц унэ", "хару|/",
	"сурталчилгааны суваг", "суваг", "контент", "арга хэмжээ",
	"type", "budget", "amount", "description", "frequency",
}

// MaxHeaderScanRows bounds how deep DetectHeader looks. Real templates carry
// up to ~30 rows of titles and approver blocks before the header.
const MaxHeaderScanRows = 30

// minHeaderScore is the keyword-match count a row must reach to be accepted
// as the header. One match is too easy to hit in free-text preamble.
const minHeaderScore = 2

// DetectHeader scans the first maxScan rows and scores each row by how many
// keywords appear as a substring of one of its cells, each keyword counting
// at most once per row. The highest-scoring row wins; ties go to the first
// row reaching the maximum, since the score only updates on strict
// improvement. Returns -1 when no row scores at least minHeaderScore.
func DetectHeader(rows [][]string, keywords []string, maxScan int) int {
	limit := len(rows)
	if maxScan < limit {
		limit = maxScan
	}

	bestRow := -1
	bestScore := 0
	for i := 0; i < limit; i++ {
		cells := make([]string, 0, len(rows[i]))
		for _, c := range rows[i] {
			c = strings.ToLower(strings.TrimSpace(c))
			if c != "" {
				cells = append(cells, c)
			}
		}

		score := 0
		for _, kw := range keywords {
			for _, c := range cells {
				if strings.Contains(c, kw) {
					score++
					break
				}
			}
		}
		if score > bestScore {
			bestScore = score
			bestRow = i
		}
	}

	if bestScore < minHeaderScore {
		return -1
	}
	return bestRow
}
