package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var noteFilterColumns = map[string][]string{
	"domain_id":   {"n.domain_id"},
	"author_id":   {"n.user_id"},
	"access_type": {"n.access_type"},
	"search":      {"n.title", "n.content"},
	"from_date":   {"n.created_at"},
	"to_date":     {"n.created_at"},
}

func TestBuildFilter_ExactMatch(t *testing.T) {
	clauses, args := BuildFilter(Filter{"domain_id": "dom-1"}, noteFilterColumns)
	assert.Equal(t, []string{"n.domain_id = ?"}, clauses)
	assert.Equal(t, []any{"dom-1"}, args)
}

func TestBuildFilter_Search(t *testing.T) {
	clauses, args := BuildFilter(Filter{"search": "verbs"}, noteFilterColumns)
	assert.Equal(t, []string{"(n.title LIKE ? OR n.content LIKE ?)"}, clauses)
	assert.Equal(t, []any{"%verbs%", "%verbs%"}, args)
}

func TestBuildFilter_Range(t *testing.T) {
	clauses, args := BuildFilter(Filter{"from_date": "2026-01-01"}, noteFilterColumns)
	assert.Equal(t, []string{"n.created_at >= ?"}, clauses)
	assert.Equal(t, []any{"2026-01-01"}, args)

	clauses, args = BuildFilter(Filter{"to_date": "2026-02-01"}, noteFilterColumns)
	assert.Equal(t, []string{"n.created_at <= ?"}, clauses)
	assert.Equal(t, []any{"2026-02-01"}, args)
}

func TestBuildFilter_In(t *testing.T) {
	clauses, args := BuildFilter(Filter{"author_id": []string{"user-1", "user-2"}}, noteFilterColumns)
	assert.Equal(t, []string{"n.user_id IN (?, ?)"}, clauses)
	assert.Equal(t, []any{"user-1", "user-2"}, args)
}

func TestBuildFilter_EmptySlice(t *testing.T) {
	clauses, args := BuildFilter(Filter{"author_id": []string{}}, noteFilterColumns)
	assert.Empty(t, clauses)
	assert.Empty(t, args)
}

func TestBuildFilter_UnknownKeyIgnored(t *testing.T) {
	clauses, args := BuildFilter(Filter{"color": "blue", "domain_id": "dom-1"}, noteFilterColumns)
	assert.Equal(t, []string{"n.domain_id = ?"}, clauses)
	assert.Equal(t, []any{"dom-1"}, args)
}

func TestParseSort(t *testing.T) {
	allowed := map[string]string{
		"created_at": "created_at",
		"updated_at": "updated_at",
		"title":      "title",
	}

	tests := []struct {
		sort string
		want string
	}{
		{sort: "title", want: "title ASC, id ASC"},
		{sort: "-updated_at", want: "updated_at DESC, id ASC"},
		{sort: "", want: "created_at DESC, id ASC"},
		{sort: "evil; DROP TABLE notes", want: "created_at DESC, id ASC"},
	}

	for _, tt := range tests {
		got := ParseSort(tt.sort, allowed, "created_at", "id")
		assert.Equal(t, tt.want, got, "sort=%q", tt.sort)
	}
}

func TestParseSort_AliasedColumns(t *testing.T) {
	allowed := map[string]string{"created_at": "n.created_at"}
	got := ParseSort("-created_at", allowed, "n.created_at", "n.id")
	assert.Equal(t, "n.created_at DESC, n.id ASC", got)
}
