package media

import "strings"

// Config carries the API endpoints and keys needed to load base layer
// providers. It is passed explicitly to map widgets; nothing here is read
// from process level state.
type Config struct {
	// MediaURL is the base URL bundled widget assets are served from.
	MediaURL string

	OpenLayersAPI   string
	OSMAPI          string
	GoogleAPI       string
	GoogleAPIKey    string
	YahooAPI        string
	YahooAppID      string
	VirtualEarthAPI string
	CloudmadeAPI    string
	CloudmadeAPIKey string
}

// DefaultConfig returns the stock provider endpoints with assets served from
// /static/olwidget.
func DefaultConfig() Config {
	return Config{
		MediaURL:        "/static/olwidget",
		OpenLayersAPI:   "http://openlayers.org/api/2.8/OpenLayers.js",
		OSMAPI:          "http://openstreetmap.org/openlayers/OpenStreetMap.js",
		GoogleAPI:       "http://maps.google.com/maps?file=api&v=2",
		YahooAPI:        "http://api.maps.yahoo.com/ajaxymap?v=3.0",
		VirtualEarthAPI: "http://dev.virtualearth.net/mapcontrol/mapcontrol.ashx?v=6.1",
	}
}

// WithDefaults fills empty endpoints from DefaultConfig. Keys are never
// defaulted.
func (c Config) WithDefaults() Config {
	defaults := DefaultConfig()
	if c.MediaURL == "" {
		c.MediaURL = defaults.MediaURL
	}
	if c.OpenLayersAPI == "" {
		c.OpenLayersAPI = defaults.OpenLayersAPI
	}
	if c.OSMAPI == "" {
		c.OSMAPI = defaults.OSMAPI
	}
	if c.GoogleAPI == "" {
		c.GoogleAPI = defaults.GoogleAPI
	}
	if c.YahooAPI == "" {
		c.YahooAPI = defaults.YahooAPI
	}
	if c.VirtualEarthAPI == "" {
		c.VirtualEarthAPI = defaults.VirtualEarthAPI
	}
	if c.CloudmadeAPI == "" {
		c.CloudmadeAPI = URLJoin(c.MediaURL, "js/cloudmade.js")
	}
	return c
}

// WidgetScript is the URL of the bundled widget script.
func (c Config) WidgetScript() string {
	return URLJoin(c.WithDefaults().MediaURL, "js/olwidget.js")
}

// Stylesheet is the URL of the bundled widget stylesheet.
func (c Config) Stylesheet() string {
	return URLJoin(c.WithDefaults().MediaURL, "css/olwidget.css")
}

// URLJoin concatenates URL parts with exactly one slash between them.
func URLJoin(parts ...string) string {
	if len(parts) == 0 {
		return ""
	}
	joined := parts[0]
	for _, part := range parts[1:] {
		if strings.HasSuffix(joined, "/") {
			joined += strings.TrimPrefix(part, "/")
			continue
		}
		joined += "/" + strings.TrimPrefix(part, "/")
	}
	return joined
}
