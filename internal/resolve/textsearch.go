package resolve

import (
	"context"

	"shelf/internal/logging"
)

// TextMatch is the outcome of one text-search provider. A failed or
// unconfigured provider yields Success false with a short message rather
// than an error.
type TextMatch struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message,omitempty"`
	Title    string      `json:"title"`
	Artist   string      `json:"artist"`
	Year     string      `json:"year"`
	ImageURL string      `json:"image_url"`
	Tracks   []TrackStub `json:"tracks"`
}

// TextSearchResult pairs the two independent text-search provider outcomes.
type TextSearchResult struct {
	Release   TextMatch `json:"release"`
	Streaming TextMatch `json:"streaming"`
}

// SearchText runs the release-metadata search and the streaming-catalog
// search for an artist and title. The two queries are independent; either
// may fail without affecting the other, and neither failure propagates.
func (r *Resolver) SearchText(ctx context.Context, artist, title string) TextSearchResult {
	return TextSearchResult{
		Release:   r.searchRelease(ctx, artist, title),
		Streaming: r.searchStreaming(ctx, artist, title),
	}
}

func (r *Resolver) searchRelease(ctx context.Context, artist, title string) TextMatch {
	if r.releases == nil {
		return TextMatch{Message: "release search not configured"}
	}
	callCtx, cancel := r.callCtx(ctx)
	defer cancel()
	album, err := r.releases.SearchAlbum(callCtx, artist, title)
	if err != nil {
		r.logger.Debug("release search failed", logging.FieldProvider, "deezer", "error", err)
		return TextMatch{Message: "no release found"}
	}
	return TextMatch{
		Success:  true,
		Title:    album.Title,
		Artist:   album.Artist,
		ImageURL: album.CoverURL,
	}
}

func (r *Resolver) searchStreaming(ctx context.Context, artist, title string) TextMatch {
	if r.streaming == nil {
		return TextMatch{Message: "streaming search not configured"}
	}
	callCtx, cancel := r.callCtx(ctx)
	defer cancel()
	album, err := r.streaming.SearchAlbum(callCtx, artist, title)
	if err != nil {
		r.logger.Debug("streaming search failed", logging.FieldProvider, "spotify", "error", err)
		return TextMatch{Message: "no streaming match"}
	}
	match := TextMatch{
		Success:  true,
		Title:    album.Name,
		Artist:   album.Artist,
		Year:     album.Year,
		ImageURL: album.ImageURL,
	}
	for _, track := range album.Tracks {
		match.Tracks = append(match.Tracks, TrackStub{
			Position: track.Position,
			Title:    track.Title,
			Duration: track.Duration,
		})
	}
	return match
}
