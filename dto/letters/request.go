package letters

import (
	"time"

	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/models"
)

const dateLayout = "2006-01-02"

func parseDate(raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func validPriorityString(p string) bool {
	return models.Priority(p).IsValid()
}
