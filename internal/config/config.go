// Package config loads the process-wide retrieval constants from the
// environment, with defaults matching the reference system's
// search_config.py constants dict.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable named in the fetch/search specification.
type Config struct {
	MaxResults      int
	DefaultRetries  int
	DefaultTimeout  time.Duration
	AllowedDomain   []string
	AgentURL        string
	FirecrawlAPIKey string

	BaiduURL          string
	BingURL           string
	GoogleURL         string
	SogouURL          string
	SoURL             string
	DoubanSearchURL   string
	DuckDuckGoURL     string
	LiteDuckDuckGoURL string
	DuckDuckGoAPIURL  string
}

// Load reads AGENT_URL, FIRECRAWL_API_KEY, MAX_RESULTS, DEFAULT_RETRIES,
// DEFAULT_TIMEOUT, ALLOWED_DOMAIN and the per-engine base URLs from the
// environment, falling back to the reference system's documented defaults.
func Load() Config {
	v := viper.New()
	v.SetEnvPrefix("")
	v.AutomaticEnv()

	v.SetDefault("MAX_RESULTS", 60)
	v.SetDefault("DEFAULT_RETRIES", 3)
	v.SetDefault("DEFAULT_TIMEOUT", 10)
	v.SetDefault("AGENT_URL", "")
	v.SetDefault("FIRECRAWL_API_KEY", "")
	v.SetDefault("ALLOWED_DOMAIN", "baidu.com,www.baidu.com,baike.baidu.com,movie.douban.com,zh.wikipedia.org,wikipedia.org,zhihu.com,bing.com,sogou.com,so.com,baike.com")
	v.SetDefault("BAIDU_URL", "https://www.baidu.com/s")
	v.SetDefault("BING_URL", "https://www.bing.com/search")
	v.SetDefault("GOOGLE_URL", "https://www.google.com/search")
	v.SetDefault("SOGOU_URL", "https://sogou.com/web")
	v.SetDefault("SO_URL", "https://www.so.com/s")
	v.SetDefault("DOUBAN_SEARCH_URL", "https://search.douban.com/movie/subject_search")
	v.SetDefault("DUCKDUCKGO_URL", "https://duckduckgo.com/html/")
	v.SetDefault("LITE_DUCKDUCKGO_URL", "https://lite.duckduckgo.com/lite/")
	v.SetDefault("DUCKDUCKGO_API", "https://duckduckgo.com/ac/")

	allowed := strings.Split(v.GetString("ALLOWED_DOMAIN"), ",")
	for i := range allowed {
		allowed[i] = strings.TrimSpace(allowed[i])
	}

	return Config{
		MaxResults:        v.GetInt("MAX_RESULTS"),
		DefaultRetries:    v.GetInt("DEFAULT_RETRIES"),
		DefaultTimeout:    time.Duration(v.GetInt("DEFAULT_TIMEOUT")) * time.Second,
		AllowedDomain:     allowed,
		AgentURL:          v.GetString("AGENT_URL"),
		FirecrawlAPIKey:   v.GetString("FIRECRAWL_API_KEY"),
		BaiduURL:          v.GetString("BAIDU_URL"),
		BingURL:           v.GetString("BING_URL"),
		GoogleURL:         v.GetString("GOOGLE_URL"),
		SogouURL:          v.GetString("SOGOU_URL"),
		SoURL:             v.GetString("SO_URL"),
		DoubanSearchURL:   v.GetString("DOUBAN_SEARCH_URL"),
		DuckDuckGoURL:     v.GetString("DUCKDUCKGO_URL"),
		LiteDuckDuckGoURL: v.GetString("LITE_DUCKDUCKGO_URL"),
		DuckDuckGoAPIURL:  v.GetString("DUCKDUCKGO_API"),
	}
}
