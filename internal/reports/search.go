package reports

import (
	"strings"

	"github.com/sheikh-saqib/udharbook/internal/models"
)

// SearchParties matches the query against names, ignoring case, and against
// phone numbers as a plain substring. A blank query matches everyone.
func SearchParties(parties []models.Party, query string) []models.Party {
	query = strings.TrimSpace(query)
	if query == "" {
		return parties
	}

	lower := strings.ToLower(query)
	result := []models.Party{}
	for _, p := range parties {
		if strings.Contains(strings.ToLower(p.Name), lower) || strings.Contains(p.Phone, query) {
			result = append(result, p)
		}
	}
	return result
}
