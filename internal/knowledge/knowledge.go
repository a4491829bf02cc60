// Package knowledge loads the static essay-writing rules corpus and
// splits it into bounded chunks for embedding.
package knowledge

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"scholar-ai/internal/apperr"
)

// DefaultMaxChunkSize bounds a chunk unless a single paragraph alone
// exceeds it, in which case that paragraph is hard-sliced.
const DefaultMaxChunkSize = 1000

// minChunkLen drops fragments too short to carry a usable rule.
const minChunkLen = 20

var paragraphSplit = regexp.MustCompile(`\n{2,}`)

// Load reads the rules corpus from disk.
func Load(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: essay rules corpus not found at %s", apperr.ErrConfiguration, path)
	}
	return string(raw), nil
}

// Chunk splits corpus text on blank-line paragraphs and greedily packs
// consecutive paragraphs into chunks of at most maxSize characters.
// Paragraphs larger than maxSize are sliced into fixed-size pieces.
// Chunks of minChunkLen characters or fewer are discarded. Output order
// follows corpus order.
func Chunk(text string, maxSize int) []string {
	if maxSize <= 0 {
		maxSize = DefaultMaxChunkSize
	}

	paragraphs := paragraphSplit.Split(text, -1)
	var chunks []string
	current := ""

	for _, para := range paragraphs {
		clean := strings.TrimSpace(para)
		if clean == "" {
			continue
		}

		if len(clean) > maxSize {
			for i := 0; i < len(clean); i += maxSize {
				end := i + maxSize
				if end > len(clean) {
					end = len(clean)
				}
				chunks = append(chunks, clean[i:end])
			}
			continue
		}

		if len(current)+len(clean) > maxSize {
			if strings.TrimSpace(current) != "" {
				chunks = append(chunks, strings.TrimSpace(current))
			}
			current = clean
		} else {
			current += " " + clean
		}
	}

	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}

	kept := chunks[:0]
	for _, c := range chunks {
		if len(c) > minChunkLen {
			kept = append(kept, c)
		}
	}
	return kept
}
