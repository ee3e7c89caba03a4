package tmdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func companyAPI(t *testing.T) *fakeAPI {
	api := newFakeAPI(t)
	api.on("/company/1", map[string]any{
		"id":             1,
		"name":           "Lucasfilm Ltd.",
		"description":    "",
		"headquarters":   "San Francisco, California, United States",
		"homepage":       "https://www.lucasfilm.com",
		"logo_path":      "/o86DbpburjxrqAzEDhXZcyE8pDb.png",
		"origin_country": "US",
		"parent_company": nil,
	})
	api.on("/company/1/images", map[string]any{
		"id": 1,
		"logos": []any{
			map[string]any{"file_path": "/o86DbpburjxrqAzEDhXZcyE8pDb.png", "file_type": ".png", "width": 1000, "height": 1000},
		},
	})
	api.on("/company/1/alternative_names", map[string]any{
		"id":      1,
		"results": []any{map[string]any{"name": "Lucasfilm Limited", "type": ""}},
	})
	return api
}

func TestCompanyDedicatedResolvers(t *testing.T) {
	api := companyAPI(t)
	company, err := api.client().Company(1)
	require.NoError(t, err)
	ctx := context.Background()

	name, err := company.Name(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Lucasfilm Ltd.", name)
	assert.Equal(t, 1, company.Requests())

	logos, err := company.Logos(ctx)
	require.NoError(t, err)
	require.Len(t, logos, 1)
	assert.Equal(t, ImageLogo, logos[0].Kind)
	assert.Equal(t, 2, company.Requests())

	assert.Equal(t, 1, api.count("/company/1"))
	assert.Equal(t, 1, api.count("/company/1/images"))

	names, err := company.AlternativeNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lucasfilm Limited"}, names)
	assert.Equal(t, 3, company.Requests())

	_, err = company.Headquarters(ctx)
	require.NoError(t, err)
	_, err = company.Logos(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, company.Requests())
	assert.Equal(t, 1, api.count("/company/1"))
}

func TestCompanyParent(t *testing.T) {
	t.Run("independent company", func(t *testing.T) {
		company, err := companyAPI(t).client().Company(1)
		require.NoError(t, err)

		parent, err := company.ParentCompany(context.Background())
		require.NoError(t, err)
		assert.Nil(t, parent)
	})

	t.Run("absent parent is recorded", func(t *testing.T) {
		api := newFakeAPI(t)
		api.on("/company/2", map[string]any{"id": 2, "name": "Orphan"})
		company, err := api.client().Company(2)
		require.NoError(t, err)
		ctx := context.Background()

		for i := 0; i < 2; i++ {
			parent, err := company.ParentCompany(ctx)
			require.NoError(t, err)
			assert.Nil(t, parent)
		}
		assert.Equal(t, 1, company.Requests())
	})

	t.Run("subsidiary", func(t *testing.T) {
		client := newFakeAPI(t).client()
		company, err := client.CompanyFromJSON(map[string]any{
			"id":             3,
			"parent_company": map[string]any{"id": 1, "name": "Lucasfilm Ltd.", "logo_path": nil},
		})
		require.NoError(t, err)

		parent, err := company.ParentCompany(context.Background())
		require.NoError(t, err)
		require.NotNil(t, parent)
		assert.Equal(t, 1, parent.ID())
		name, err := parent.Name(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Lucasfilm Ltd.", name)
		assert.Zero(t, company.Requests())
	})
}

func TestCompanyMovies(t *testing.T) {
	api := newFakeAPI(t)
	api.onPages("/discover/movie", 2, 5)
	company, err := api.client().Company(1)
	require.NoError(t, err)

	movies, err := company.Movies(context.Background()).Collect(0)
	require.NoError(t, err)
	assert.Len(t, movies, 10)
	assert.Equal(t, "1", api.query("GET", "/discover/movie").Get("with_companies"))
	assert.Equal(t, 2, company.Requests())
}
