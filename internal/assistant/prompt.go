package assistant

import (
	"fmt"
	"strings"

	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/search"
)

const systemPrompt = `You are a temple directory assistant. You answer visitor questions about temples using ONLY the catalog excerpt supplied with each question.

## Rules
1. Answer ONLY from the supplied catalog entries; do not invent temples, addresses, timings or distances
2. When the question asks for recommendations, prefer nearer temples when distances are given
3. If no catalog entry answers the question, say so plainly instead of guessing
4. Distances are in kilometers from the visitor's position
5. Keep answers short and practical: names, cities, timings, distances
6. "suggestions" must list the ids of catalog entries your answer relies on, nearest first`

// buildPrompt assembles one question plus its catalog context. Each context
// line is one temple; distance is present only for proximity searches.
func buildPrompt(question string, results []search.Result) string {
	var b strings.Builder

	b.WriteString(`Answer the visitor's question about temples using the catalog excerpt below.

Respond with ONLY valid JSON in this exact format (no markdown, no explanation):
{
  "answer": "your answer to the visitor",
  "suggestions": [list of catalog ids used, as integers]
}

If the catalog excerpt cannot answer the question, return:
{"answer": "<a short explanation of what is missing>", "suggestions": []}

--- CATALOG EXCERPT ---
`)

	if len(results) == 0 {
		b.WriteString("(no matching temples)\n")
	}
	for _, r := range results {
		fmt.Fprintf(&b, "id=%d | %s | %s | %s", r.ID, r.Name, r.Category, r.City)
		if r.Timings != "" {
			fmt.Fprintf(&b, " | timings: %s", r.Timings)
		}
		if r.DistanceKm != nil {
			fmt.Fprintf(&b, " | %.2f km away", *r.DistanceKm)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n--- QUESTION ---\n")
	b.WriteString(question)

	return b.String()
}
