package config

import (
	"github.com/goliatone/go-mapform/pkg/media"
	"github.com/goliatone/go-mapform/pkg/options"
)

// Document is the merged result of every file loaded.
type Document struct {
	Options options.Map
	Media   media.Config
	forms   map[string]FormConfig
}

// FormConfig configures one named form.
type FormConfig struct {
	Name           string        `json:"-" yaml:"-"`
	Source         string        `json:"-" yaml:"-"`
	Options        options.Map   `json:"options" yaml:"options"`
	Template       string        `json:"template" yaml:"template"`
	Maps           []MapConfig   `json:"maps" yaml:"maps"`
	Fields         []FieldConfig `json:"fields" yaml:"fields"`
	ListMap        []string      `json:"list_map" yaml:"list_map"`
	ListMapOptions options.Map   `json:"list_map_options" yaml:"list_map_options"`

	global options.Map
	media  media.Config
}

// MapConfig declares one group of fields sharing a map.
type MapConfig struct {
	Fields   []string    `json:"fields" yaml:"fields"`
	Options  options.Map `json:"options" yaml:"options"`
	Template string      `json:"template" yaml:"template"`
}

// FieldConfig declares one built-in field.
type FieldConfig struct {
	Name      string `json:"name" yaml:"name"`
	Type      string `json:"type" yaml:"type"`
	Geometry  string `json:"geometry" yaml:"geometry"`
	SRID      int    `json:"srid" yaml:"srid"`
	Required  *bool  `json:"required" yaml:"required"`
	MaxLength int    `json:"max_length" yaml:"max_length"`
}

// Field types.
const (
	FieldTypeChar     = "char"
	FieldTypeGeometry = "geometry"
)

type documentFile struct {
	Options options.Map           `json:"options" yaml:"options"`
	Media   mediaFile             `json:"media" yaml:"media"`
	Forms   map[string]FormConfig `json:"forms" yaml:"forms"`
}

type mediaFile struct {
	MediaURL        string `json:"media_url" yaml:"media_url"`
	OpenLayersAPI   string `json:"openlayers_api" yaml:"openlayers_api"`
	OSMAPI          string `json:"osm_api" yaml:"osm_api"`
	GoogleAPI       string `json:"google_api" yaml:"google_api"`
	GoogleAPIKey    string `json:"google_api_key" yaml:"google_api_key"`
	YahooAPI        string `json:"yahoo_api" yaml:"yahoo_api"`
	YahooAppID      string `json:"yahoo_app_id" yaml:"yahoo_app_id"`
	VirtualEarthAPI string `json:"ve_api" yaml:"ve_api"`
	CloudmadeAPI    string `json:"cloudmade_api" yaml:"cloudmade_api"`
	CloudmadeAPIKey string `json:"cloudmade_api_key" yaml:"cloudmade_api_key"`
}

// apply overlays the non empty settings of f onto cfg.
func (f mediaFile) apply(cfg media.Config) media.Config {
	set := func(dst *string, value string) {
		if value != "" {
			*dst = value
		}
	}
	set(&cfg.MediaURL, f.MediaURL)
	set(&cfg.OpenLayersAPI, f.OpenLayersAPI)
	set(&cfg.OSMAPI, f.OSMAPI)
	set(&cfg.GoogleAPI, f.GoogleAPI)
	set(&cfg.GoogleAPIKey, f.GoogleAPIKey)
	set(&cfg.YahooAPI, f.YahooAPI)
	set(&cfg.YahooAppID, f.YahooAppID)
	set(&cfg.VirtualEarthAPI, f.VirtualEarthAPI)
	set(&cfg.CloudmadeAPI, f.CloudmadeAPI)
	set(&cfg.CloudmadeAPIKey, f.CloudmadeAPIKey)
	return cfg
}
