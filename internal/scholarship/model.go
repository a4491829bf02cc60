// Package scholarship covers the discovery side of the system: the
// best-effort listing scraper, the persistent catalog and the
// LLM-backed recommendation agent.
package scholarship

import (
	"encoding/base64"
	"time"
)

// Scholarship is one catalog record. Deadline and Amount are pointers so
// that unknown values serialize as JSON null, which the recommendation
// contract relies on.
type Scholarship struct {
	ScholarshipID string    `json:"scholarshipId" gorm:"primaryKey"`
	Title         string    `json:"title"`
	Type          string    `json:"type"`
	Subject       string    `json:"subject"`
	Provider      string    `json:"provider"`
	DetailURL     string    `json:"detailUrl"`
	Deadline      *string   `json:"deadline"`
	Amount        *string   `json:"amount"`
	Level         string    `json:"level"`
	Source        string    `json:"source"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

// scholarshipID derives a stable, deterministic id from the title so
// repeated scrapes converge on the same records.
func scholarshipID(title string) string {
	id := base64.StdEncoding.EncodeToString([]byte(title))
	if len(id) > 12 {
		id = id[:12]
	}
	return id
}
