package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSources are the health sites ingested when no sources file exists.
var DefaultSources = []string{
	"https://www.who.int/news-room/fact-sheets",
	"https://www.cdc.gov/healthyliving/index.html",
	"https://www.nih.gov/news-events/nih-research-matters",
	"https://www.mayoclinic.org/healthy-lifestyle",
	"https://www.health.harvard.edu/topics",
	"https://www.webmd.com/health-news",
	"https://www.medicalnewstoday.com/",
	"https://www.healthline.com/health-news",
	"https://www.nhs.uk/live-well/",
	"https://www.clevelandclinic.org/health",
	"https://www.hopkinsmedicine.org/health",
	"https://www.fda.gov/consumers/consumer-updates",
	"https://www.unicef.org/health",
	"https://www.heart.org/en/healthy-living",
	"https://www.cancer.org/latest-news.html",
}

// SourcesFile is the YAML document listing the pages to ingest.
type SourcesFile struct {
	Sources []string `yaml:"sources"`
}

// LoadSources reads the source list at path. An empty path or a missing file
// yields DefaultSources.
func LoadSources(path string) ([]string, error) {
	if len(path) == 0 {
		return slices.Clone(DefaultSources), nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return slices.Clone(DefaultSources), nil
	}
	if err != nil {
		return nil, err
	}

	var file SourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	sources := make([]string, 0, len(file.Sources))
	for _, s := range file.Sources {
		s = strings.TrimSpace(s)
		if len(s) == 0 {
			continue
		}
		u, err := url.Parse(s)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || len(u.Host) == 0 {
			return nil, fmt.Errorf("parse %s: invalid source url %q", path, s)
		}
		sources = append(sources, s)
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("parse %s: no sources listed", path)
	}

	return sources, nil
}
