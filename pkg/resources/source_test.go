package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSource() Source {
	return Source{
		Name:        "primary",
		Variant:     "abc",
		Definition:  PrimaryData{Location: SQLTable{Name: "table"}},
		Owner:       "someone",
		Description: "desc",
		Provider:    "redis-name",
	}
}

func TestCreatePrimaryDataSource(t *testing.T) {
	s, err := NewSource(validSource())
	require.NoError(t, err)
	assert.Equal(t, PrimaryData{Location: SQLTable{Name: "table"}}, s.Definition)
}

func TestCreateTransformationSource(t *testing.T) {
	src := validSource()
	src.Definition = SQLTransformation{
		Query:   "SELECT * FROM {{ primary.abc }}",
		Sources: []NameVariant{{Name: "primary", Variant: "abc"}},
	}

	s, err := NewSource(src)
	require.NoError(t, err)
	assert.IsType(t, SQLTransformation{}, s.Definition)
}

func TestInvalidSources(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Source)
	}{
		{name: "missing name", mutate: func(s *Source) { s.Name = "" }},
		{name: "missing variant", mutate: func(s *Source) { s.Variant = "" }},
		{name: "missing provider", mutate: func(s *Source) { s.Provider = "" }},
		{name: "missing definition", mutate: func(s *Source) { s.Definition = nil }},
		{
			name:   "primary data without location",
			mutate: func(s *Source) { s.Definition = PrimaryData{} },
		},
		{
			name:   "sql table without name",
			mutate: func(s *Source) { s.Definition = PrimaryData{Location: SQLTable{}} },
		},
		{
			name:   "transformation without query",
			mutate: func(s *Source) { s.Definition = SQLTransformation{} },
		},
		{
			name: "transformation with malformed input",
			mutate: func(s *Source) {
				s.Definition = SQLTransformation{
					Query:   "SELECT 1",
					Sources: []NameVariant{{Name: "primary"}},
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := validSource()
			tt.mutate(&src)
			_, err := NewSource(src)
			assert.ErrorIs(t, err, ErrInvalidResource)
		})
	}
}
