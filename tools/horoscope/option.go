package horoscope

import "net/http"

type Option func(*Config)

func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.baseURL = baseURL
	}
}

func WithHttpClient(clt *http.Client) Option {
	return func(c *Config) {
		c.httpClient = clt
	}
}
