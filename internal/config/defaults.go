package config

const (
	defaultDataDir             = "~/.local/share/shelf"
	defaultLogDir              = "~/.local/share/shelf/logs"
	defaultAPIBind             = "127.0.0.1:7787"
	defaultProviderTimeout     = 8
	defaultGoogleBooksBaseURL  = "https://www.googleapis.com/books/v1"
	defaultOpenLibraryBaseURL  = "https://openlibrary.org"
	defaultCoverArchiveBaseURL = "https://images-na.ssl-images-amazon.com/images/P"
	defaultMinImageBytes       = 1000
	defaultDiscogsBaseURL      = "https://api.discogs.com"
	defaultSpotifyTokenURL     = "https://accounts.spotify.com/api/token"
	defaultSpotifyBaseURL      = "https://api.spotify.com/v1"
	defaultDeezerBaseURL       = "https://api.deezer.com"
	defaultDiscSiteBaseURL     = "https://www.bluray-disc.de"
	defaultPageSize            = 20
	defaultDefaultUser         = "admin"
	defaultLabelWidth          = 70.0
	defaultLabelHeight         = 36.0
	defaultLabelPadding        = 2.0
	defaultLabelColumns        = 3
	defaultLabelMarginLeft     = 7.0
	defaultLabelMarginTop      = 15.0
	defaultLabelFontSize       = 8.0
	defaultNotifyTimeout       = 10
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Providers: Providers{
			TimeoutSeconds: defaultProviderTimeout,
		},
		GoogleBooks: GoogleBooks{
			BaseURL: defaultGoogleBooksBaseURL,
		},
		OpenLibrary: OpenLibrary{
			BaseURL: defaultOpenLibraryBaseURL,
		},
		CoverArchive: CoverArchive{
			BaseURL:       defaultCoverArchiveBaseURL,
			MinImageBytes: defaultMinImageBytes,
		},
		Discogs: Discogs{
			BaseURL: defaultDiscogsBaseURL,
		},
		Spotify: Spotify{
			TokenURL: defaultSpotifyTokenURL,
			BaseURL:  defaultSpotifyBaseURL,
		},
		Deezer: Deezer{
			BaseURL: defaultDeezerBaseURL,
		},
		DiscSite: DiscSite{
			BaseURL: defaultDiscSiteBaseURL,
		},
		Listing: Listing{
			PageSize:    defaultPageSize,
			DefaultUser: defaultDefaultUser,
		},
		Labels: Labels{
			LabelWidth:    defaultLabelWidth,
			LabelHeight:   defaultLabelHeight,
			Padding:       defaultLabelPadding,
			Columns:       defaultLabelColumns,
			MarginLeft:    defaultLabelMarginLeft,
			MarginTop:     defaultLabelMarginTop,
			FontSize:      defaultLabelFontSize,
			Vertical:      false,
			ShowInventory: true,
			ShowTitle:     true,
			ShowLocation:  true,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Lending:        true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
