package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/featstate/featstate/pkg/resources"
)

func redisProvider(t *testing.T) resources.Provider {
	t.Helper()
	p, err := resources.NewProvider(resources.Provider{
		Name:        "redis",
		Description: "desc3",
		Function:    "fn3",
		Team:        "team3",
		Config:      resources.RedisConfig{Host: "localhost", Port: 123, Password: "abc", DB: 3},
	})
	require.NoError(t, err)
	return p
}

// canonicalResources returns one resource per kind, already in the canonical
// sorted order.
func canonicalResources(t *testing.T) []resources.Resource {
	t.Helper()

	user, err := resources.NewUser(resources.User{Name: "Featureform"})
	require.NoError(t, err)

	source, err := resources.NewSource(resources.Source{
		Name:        "primary",
		Variant:     "abc",
		Definition:  resources.PrimaryData{Location: resources.SQLTable{Name: "table"}},
		Owner:       "someone",
		Description: "desc",
		Provider:    "redis-name",
	})
	require.NoError(t, err)

	entity, err := resources.NewEntity(resources.Entity{Name: "user", Description: "A user"})
	require.NoError(t, err)

	feature, err := resources.NewFeature(resources.Feature{
		Name:        "feature",
		Variant:     "v1",
		Description: "feature",
		ValueType:   "float32",
		Entity:      "user",
		Owner:       "Owner",
		Provider:    "redis-name",
	})
	require.NoError(t, err)

	label, err := resources.NewLabel(resources.Label{
		Name:        "label",
		Variant:     "v1",
		Description: "feature",
		ValueType:   "float32",
		Entity:      "user",
		Owner:       "Owner",
		Provider:    "redis-name",
	})
	require.NoError(t, err)

	trainingSet, err := resources.NewTrainingSet(resources.TrainingSet{
		Name:        "training-set",
		Variant:     "v1",
		Description: "desc",
		Owner:       "featureform",
		Provider:    "redis-name",
		Label:       resources.NameVariant{Name: "label", Variant: "var"},
		Features:    []resources.NameVariant{{Name: "f1", Variant: "var"}},
	})
	require.NoError(t, err)

	return []resources.Resource{
		user,
		redisProvider(t),
		source,
		entity,
		feature,
		label,
		trainingSet,
	}
}

func TestAddAllResourceTypesReverseOrder(t *testing.T) {
	canonical := canonicalResources(t)

	state := New()
	for i := len(canonical) - 1; i >= 0; i-- {
		require.NoError(t, state.Add(canonical[i]))
	}

	assert.Equal(t, canonical, state.SortedList())
}

func TestRedefineProvider(t *testing.T) {
	first, err := resources.NewProvider(resources.Provider{
		Name:        "name",
		Description: "desc",
		Function:    "fn",
		Team:        "team",
		Config:      resources.RedisConfig{Host: "localhost", Port: 123, Password: "abc", DB: 3},
	})
	require.NoError(t, err)

	second, err := resources.NewProvider(resources.Provider{
		Name:        "name",
		Description: "desc2",
		Function:    "fn2",
		Team:        "team2",
		Config: resources.SnowflakeConfig{
			Account:      "act",
			Organization: "org",
			Database:     "db",
			Username:     "user",
			Password:     "pwd",
			Schema:       "schema",
		},
	})
	require.NoError(t, err)

	state := New()
	require.NoError(t, state.Add(first))

	err = state.Add(second)
	assert.ErrorIs(t, err, ErrResourceRedefined)

	// The first definition is retained.
	stored, ok := state.Get(first.ID())
	require.True(t, ok)
	assert.Equal(t, first, stored)
	assert.Equal(t, 1, state.Len())
}

func TestReaddIdenticalResourceIsNoop(t *testing.T) {
	provider := redisProvider(t)

	state := New()
	require.NoError(t, state.Add(provider))
	require.NoError(t, state.Add(provider))
	assert.Equal(t, 1, state.Len())
}

func TestSortedListTiesBrokenByNameThenVariant(t *testing.T) {
	features := []resources.Feature{
		{Name: "b", Variant: "v1"},
		{Name: "a", Variant: "v2"},
		{Name: "a", Variant: "v1"},
	}

	state := New()
	for _, f := range features {
		f.Description = "desc"
		f.ValueType = "float32"
		f.Entity = "user"
		f.Owner = "Owner"
		f.Provider = "redis-name"
		built, err := resources.NewFeature(f)
		require.NoError(t, err)
		require.NoError(t, state.Add(built))
	}

	var ids []resources.ResourceID
	for _, r := range state.SortedList() {
		ids = append(ids, r.ID())
	}
	assert.Equal(t, []resources.ResourceID{
		{Type: resources.TypeFeature, Name: "a", Variant: "v1"},
		{Type: resources.TypeFeature, Name: "a", Variant: "v2"},
		{Type: resources.TypeFeature, Name: "b", Variant: "v1"},
	}, ids)
}

func TestSortedListIndependentOfInsertionOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		canonical := canonicalResources(t)

		shuffled := make([]resources.Resource, len(canonical))
		copy(shuffled, canonical)
		for i := len(shuffled) - 1; i > 0; i-- {
			j := rapid.IntRange(0, i).Draw(rt, "j")
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		}

		state := New()
		for _, r := range shuffled {
			if err := state.Add(r); err != nil {
				rt.Fatalf("add failed: %v", err)
			}
		}

		if !assert.ObjectsAreEqual(canonical, state.SortedList()) {
			rt.Fatalf("sorted list diverged for insertion order %v", shuffled)
		}
	})
}
