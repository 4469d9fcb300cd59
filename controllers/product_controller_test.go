package controllers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildProductFilter(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected bson.M
		wantErr  bool
	}{
		{
			name:     "no filters",
			query:    "",
			expected: bson.M{},
		},
		{
			name:     "category",
			query:    "category=birthday",
			expected: bson.M{"category": "birthday"},
		},
		{
			name:    "unknown category",
			query:   "category=vehicles",
			wantErr: true,
		},
		{
			name:     "featured",
			query:    "featured=true",
			expected: bson.M{"featured": true},
		},
		{
			name:    "featured not a bool",
			query:   "featured=maybe",
			wantErr: true,
		},
		{
			name:     "tag",
			query:    "tag=handmade",
			expected: bson.M{"tags": "handmade"},
		},
		{
			name:  "price range",
			query: "price%5Bgte%5D=10&price%5Blte%5D=50",
			expected: bson.M{"price": bson.M{
				"$gte": 10.0,
				"$lte": 50.0,
			}},
		},
		{
			name:    "price not a number",
			query:   "price%5Bgte%5D=cheap",
			wantErr: true,
		},
		{
			name:     "unrecognised parameters ignored",
			query:    "color=red&page=3&sort=price",
			expected: bson.M{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			filter, err := buildProductFilter(values)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, filter)
		})
	}
}

func TestBuildProductFilterSearch(t *testing.T) {
	filter, err := buildProductFilter(url.Values{"search": {"candle"}})
	require.NoError(t, err)

	clauses, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, clauses, 2)
	assert.Equal(t, bson.M{"$regex": "candle", "$options": "i"}, clauses[0]["name"])
	assert.Equal(t, bson.M{"$regex": "candle", "$options": "i"}, clauses[1]["description"])
}

func TestBuildProductSort(t *testing.T) {
	tests := []struct {
		name     string
		param    string
		expected bson.D
		wantErr  bool
	}{
		{
			name:     "default newest first",
			param:    "",
			expected: bson.D{{Key: "created_at", Value: -1}},
		},
		{
			name:     "price ascending",
			param:    "price",
			expected: bson.D{{Key: "price", Value: 1}},
		},
		{
			name:     "price descending",
			param:    "-price",
			expected: bson.D{{Key: "price", Value: -1}},
		},
		{
			name:     "createdAt maps to created_at",
			param:    "-createdAt",
			expected: bson.D{{Key: "created_at", Value: -1}},
		},
		{
			name:     "rating",
			param:    "rating",
			expected: bson.D{{Key: "rating", Value: 1}},
		},
		{
			name:     "name",
			param:    "name",
			expected: bson.D{{Key: "name", Value: 1}},
		},
		{
			name:    "unknown field",
			param:   "stock",
			wantErr: true,
		},
		{
			name:    "injection attempt",
			param:   "$where",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sort, err := buildProductSort(tt.param)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sort)
		})
	}
}
