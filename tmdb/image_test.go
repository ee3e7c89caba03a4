package tmdb

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImage(t *testing.T) {
	client := NewClient(nil, zerolog.Nop())

	tests := []struct {
		name    string
		data    map[string]any
		kind    ImageKind
		wantErr bool
	}{
		{name: "poster", data: map[string]any{"file_path": "/a.jpg"}, kind: ImagePoster},
		{name: "still", data: map[string]any{"file_path": "/a.jpg", "width": 1280}, kind: ImageStill},
		{name: "missing kind", data: map[string]any{"file_path": "/a.jpg"}, kind: "", wantErr: true},
		{name: "unknown kind", data: map[string]any{"file_path": "/a.jpg"}, kind: "banner", wantErr: true},
		{name: "missing file path", data: map[string]any{"width": 500}, kind: ImagePoster, wantErr: true},
		{name: "mistyped width", data: map[string]any{"file_path": "/a.jpg", "width": []any{1}}, kind: ImagePoster, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			image, err := NewImage(client, tt.data, tt.kind)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrConstruction)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, image.Kind)
			assert.Equal(t, "/a.jpg", image.String())
		})
	}
}

func TestImageConfigurationFetchedOnce(t *testing.T) {
	api := newFakeAPI(t)
	api.on("/configuration", configurationFixture())
	client := api.client()
	ctx := context.Background()

	poster, err := NewImage(client, map[string]any{"file_path": "/poster.jpg"}, ImagePoster)
	require.NoError(t, err)
	assert.Zero(t, api.count("/configuration"))

	sizes, err := poster.Sizes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"w92", "w154", "w500", "original"}, sizes)
	assert.Equal(t, 1, api.count("/configuration"))

	profile, err := NewImage(client, map[string]any{"file_path": "/face.jpg"}, ImageProfile)
	require.NoError(t, err)
	url, err := profile.URL(ctx, "h632")
	require.NoError(t, err)
	assert.Equal(t, "https://image.tmdb.org/t/p/h632/face.jpg", url)
	assert.Equal(t, 1, api.count("/configuration"))

	client.ResetImageConfiguration()
	_, err = poster.Sizes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, api.count("/configuration"))
}

func TestImageURLs(t *testing.T) {
	api := newFakeAPI(t)
	api.on("/configuration", configurationFixture())
	client := api.client()
	ctx := context.Background()

	still, err := NewImage(client, map[string]any{"file_path": "/still.jpg"}, ImageStill)
	require.NoError(t, err)

	url, err := still.URL(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "https://image.tmdb.org/t/p/original/still.jpg", url)

	_, err = still.URL(ctx, "w500")
	require.ErrorIs(t, err, ErrUnknownImageSize)

	urls, err := still.URLs(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"w92":      "https://image.tmdb.org/t/p/w92/still.jpg",
		"w300":     "https://image.tmdb.org/t/p/w300/still.jpg",
		"original": "https://image.tmdb.org/t/p/original/still.jpg",
	}, urls)
}

func TestImageConfigurationFailureIsNotCached(t *testing.T) {
	api := newFakeAPI(t)
	api.onStatus(http.MethodGet, "/configuration", http.StatusServiceUnavailable, map[string]any{"status_code": 9, "status_message": "Service offline."})
	client := api.client()
	ctx := context.Background()

	logo, err := NewImage(client, map[string]any{"file_path": "/logo.png"}, ImageLogo)
	require.NoError(t, err)

	_, err = logo.Sizes(ctx)
	require.Error(t, err)

	api.on("/configuration", configurationFixture())
	sizes, err := logo.Sizes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"w45", "w92", "original"}, sizes)
	assert.Equal(t, 2, api.count("/configuration"))
}

func TestImageConfigurationConcurrentFirstUse(t *testing.T) {
	api := newFakeAPI(t)
	api.on("/configuration", configurationFixture())
	client := api.client()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			image, err := NewImage(client, map[string]any{"file_path": "/b.jpg"}, ImageBackdrop)
			if assert.NoError(t, err) {
				_, err = image.Sizes(context.Background())
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, api.count("/configuration"))
}

func TestMovieImagesResolveURLs(t *testing.T) {
	api := newFakeAPI(t)
	api.on("/movie/550", movieFixture(550))
	api.on("/configuration", configurationFixture())
	movie, err := api.client().Movie(550)
	require.NoError(t, err)
	ctx := context.Background()

	backdrops, err := movie.Backdrops(ctx)
	require.NoError(t, err)
	require.Len(t, backdrops, 1)

	url, err := backdrops[0].URL(ctx, "w780")
	require.NoError(t, err)
	assert.Equal(t, "https://image.tmdb.org/t/p/w780/backdrop.jpg", url)
	assert.Equal(t, 1, movie.Requests())
}
