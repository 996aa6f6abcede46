package dbmetrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationClassification(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"select", "SELECT id FROM slot WHERE id = $1", "select"},
		{"select lowercase", "select count(*) from slot", "select"},
		{"insert", "INSERT INTO slot (schedule_line_id) VALUES ($1)", "insert"},
		{"update", "UPDATE slot SET claimant_id = $1 WHERE id = $2", "update"},
		{"delete", "DELETE FROM slot WHERE schedule_line_id = $1", "delete"},
		{"leading whitespace", "  \n\tSELECT 1", "select"},
		{"ddl", "TRUNCATE slot", "other"},
		{"empty", "", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, operation(tt.query))
		})
	}
}
