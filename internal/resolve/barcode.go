package resolve

import (
	"context"
	"log/slog"
	"strings"

	"shelf/internal/catalog"
	"shelf/internal/logging"
	"shelf/internal/resolve/discogs"
)

// ResolveBarcode runs the barcode provider chain and returns the merged
// record. It never fails: every provider error is swallowed at its step and
// the remaining chain continues. An all-empty record with Success false
// means nothing recognized the identifier.
func (r *Resolver) ResolveBarcode(ctx context.Context, raw string) *Result {
	identifier := NormalizeBarcode(raw)
	result := &Result{}
	if identifier == "" {
		return result
	}
	log := r.logger.With("barcode", identifier)

	r.applyBookVolume(ctx, log, identifier, result)
	if !result.Success || result.ImageURL == "" {
		r.applyBookEdition(ctx, log, identifier, result)
	}
	if result.Success && result.ImageURL == "" {
		r.applyCoverProbe(ctx, log, identifier, result)
	}
	if !result.Success || result.Category == "" {
		r.applyMarketplace(ctx, log, identifier, result)
	}
	if !result.Success || result.Category == "" {
		r.applyDiscSite(ctx, log, identifier, result)
	}
	return result
}

// applyBookVolume merges the primary book source. A hit owns every text
// field outright since it runs first.
func (r *Resolver) applyBookVolume(ctx context.Context, log *slog.Logger, identifier string, result *Result) {
	if r.books == nil {
		return
	}
	callCtx, cancel := r.callCtx(ctx)
	defer cancel()
	volume, err := r.books.VolumeByISBN(callCtx, identifier)
	if err != nil {
		log.Debug("book volume lookup failed", logging.FieldProvider, "googlebooks", "error", err)
		return
	}
	result.Success = true
	result.Title = volume.Title
	result.Author = strings.Join(volume.Authors, ", ")
	result.Description = truncate(volume.Description, maxDescriptionLength)
	result.Category = catalog.CategoryBook
	if len(volume.PublishedDate) >= 4 {
		result.Year = volume.PublishedDate[:4]
	}
	result.ImageURL = volume.Thumbnail
}

// applyBookEdition merges the secondary book source. Text fields are adopted
// only while no earlier provider has succeeded; the image is adopted
// whenever none is set yet.
func (r *Resolver) applyBookEdition(ctx context.Context, log *slog.Logger, identifier string, result *Result) {
	if r.editions == nil {
		return
	}
	callCtx, cancel := r.callCtx(ctx)
	defer cancel()
	edition, err := r.editions.EditionByISBN(callCtx, identifier)
	if err != nil {
		log.Debug("book edition lookup failed", logging.FieldProvider, "openlibrary", "error", err)
		return
	}
	if !result.Success {
		result.Success = true
		result.Title = edition.Title
		result.Author = edition.Author
		result.Category = catalog.CategoryBook
		if len(edition.PublishDate) >= 4 {
			result.Year = edition.PublishDate[len(edition.PublishDate)-4:]
		}
	}
	if result.ImageURL == "" {
		result.ImageURL = edition.CoverURL
	}
}

func (r *Resolver) applyCoverProbe(ctx context.Context, log *slog.Logger, identifier string, result *Result) {
	if r.covers == nil {
		return
	}
	callCtx, cancel := r.callCtx(ctx)
	defer cancel()
	coverURL, err := r.covers.CoverURL(callCtx, identifier)
	if err != nil {
		log.Debug("cover probe failed", logging.FieldProvider, "coverarchive", "error", err)
		return
	}
	result.ImageURL = coverURL
}

// applyMarketplace merges the token-gated marketplace source, which covers
// the music and video formats the book providers do not know.
func (r *Resolver) applyMarketplace(ctx context.Context, log *slog.Logger, identifier string, result *Result) {
	if r.marketplace == nil {
		return
	}
	callCtx, cancel := r.callCtx(ctx)
	defer cancel()
	release, err := r.marketplace.SearchBarcode(callCtx, identifier)
	if err != nil {
		log.Debug("marketplace lookup failed", logging.FieldProvider, "discogs", "error", err)
		return
	}

	result.Success = true
	if result.Author == "" {
		artist, title := discogs.SplitArtistTitle(release.Title)
		result.Author = artist
		result.Title = title
	}
	if result.Year == "" {
		result.Year = release.Year
	}
	if result.ImageURL == "" {
		result.ImageURL = release.Thumb
	}
	if category := categoryFromFormats(release.Formats); category != "" && result.Category == "" {
		result.Category = category
	}

	if release.ResourceURL != "" {
		detailCtx, cancelDetail := r.callCtx(ctx)
		defer cancelDetail()
		rows, err := r.marketplace.Tracklist(detailCtx, release.ResourceURL)
		if err != nil {
			log.Debug("tracklist fetch failed", logging.FieldProvider, "discogs", "error", err)
			return
		}
		position := 0
		for _, row := range rows {
			if row.IsHeading() || strings.TrimSpace(row.Title) == "" {
				continue
			}
			position++
			result.Tracks = append(result.Tracks, TrackStub{
				Position: position,
				Title:    row.Title,
				Duration: row.Duration,
			})
		}
	}
}

func (r *Resolver) applyDiscSite(ctx context.Context, log *slog.Logger, identifier string, result *Result) {
	if r.discSite == nil {
		return
	}
	callCtx, cancel := r.callCtx(ctx)
	defer cancel()
	detail, err := r.discSite.Search(callCtx, identifier)
	if err != nil {
		log.Debug("disc site lookup failed", logging.FieldProvider, "discsite", "error", err)
		return
	}
	if detail.Title == "" {
		return
	}

	result.Success = true
	if result.Title == "" {
		result.Title = detail.Title
	}
	if result.Description == "" {
		result.Description = truncate(detail.Description, maxDescriptionLength)
	}
	if result.ImageURL == "" {
		result.ImageURL = detail.ImageURL
	}
	if result.Year == "" {
		result.Year = detail.Year
	}
	if result.Author == "" {
		result.Author = detail.Director
	}
	if result.Category == "" {
		result.Category = catalog.CategoryFilm
	}
}

// categoryFromFormats maps marketplace format tags to a category. The first
// match in listed order wins when a release carries several tags.
func categoryFromFormats(formats []string) string {
	for _, rule := range []struct {
		tags     []string
		category string
	}{
		{tags: []string{"Vinyl", "LP"}, category: catalog.CategoryVinyl},
		{tags: []string{"CD"}, category: catalog.CategoryCD},
		{tags: []string{"Film", "DVD", "Blu-ray"}, category: catalog.CategoryFilm},
	} {
		for _, format := range formats {
			for _, tag := range rule.tags {
				if strings.EqualFold(format, tag) {
					return rule.category
				}
			}
		}
	}
	return ""
}
