package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestType(t *testing.T) {
	tests := []struct {
		column string
		want   string
	}{
		{"id", "INT"},
		{"user_id", "INT"},
		{"email", "VARCHAR(255)"},
		{"password_hash", "VARCHAR(255)"},
		{"price", "DECIMAL(10,2)"},
		{"total", "DECIMAL(10,2)"},
		{"salary", "DECIMAL(10,2)"},
		{"quantity", "INT"},
		{"age", "INT"},
		{"created_at", "TIMESTAMP"},
		{"updated_at", "TIMESTAMP"},
		{"birth_date", "TIMESTAMP"},
		{"is_active", "BOOLEAN"},
		{"has_avatar", "BOOLEAN"},
		{"verified", "BOOLEAN"},
		{"description", "TEXT"},
		{"address", "TEXT"},
		{"avatar_url", "VARCHAR(500)"},
		{"image", "VARCHAR(500)"},
		{"metadata", "JSON"},
		{"settings", "JSON"},
		{"uuid", "UUID"},
		{"status", "VARCHAR(50)"},
		{"role", "VARCHAR(50)"},
		{"name", "VARCHAR(100)"},
		{"title", "VARCHAR(100)"},
		{"whatever", "VARCHAR(255)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Type(tt.column), "column %q", tt.column)
	}
}

// Specific rules must precede generic ones: misordering silently changes
// inferred types for names matching several heuristics.
func TestTypeOrderIsLoadBearing(t *testing.T) {
	// "product_id" also contains no other trigger, but "order_count" hits
	// both "integer" (count) and nothing earlier; "total_amount" hits money.
	assert.Equal(t, "INT", Type("product_id"), "_id wins over everything")
	assert.Equal(t, "DECIMAL(10,2)", Type("total_count"), "money precedes integer")
	assert.Equal(t, "TIMESTAMP", Type("deleted_at"), "_at precedes boolean/text")
	assert.Equal(t, "VARCHAR(100)", Type("username"), "label is nearly last")

	names := make([]string, 0)
	for _, r := range Heuristics().Rules() {
		names = append(names, r.Name)
	}
	want := []string{
		"id", "email", "password", "money", "integer", "timestamp",
		"boolean", "text", "url", "json", "uuid", "enum", "label",
	}
	assert.Equal(t, want, names)
}

func TestTypeIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, "VARCHAR(255)", Type("  Email "))
	assert.Equal(t, "TIMESTAMP", Type("CreatedAt"))
}
