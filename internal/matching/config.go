package matching

import "time"

// RecencyConfig shapes the posting-age multiplier applied to opening scores.
type RecencyConfig struct {
	FreshDays         int     `yaml:"fresh_days"`
	StaleDays         int     `yaml:"stale_days"`
	FreshMultiplier   float64 `yaml:"fresh_multiplier"`
	NeutralMultiplier float64 `yaml:"neutral_multiplier"`
	StaleMultiplier   float64 `yaml:"stale_multiplier"`
}

type Config struct {
	Recency      RecencyConfig `yaml:"recency"`
	SemanticTopK int           `yaml:"semantic_top_k"`
	// Timezone decides what "today" means for deadlines. IANA name, default UTC.
	Timezone string `yaml:"timezone"`
}

func DefaultConfig() Config {
	return Config{
		Recency: RecencyConfig{
			FreshDays:         7,
			StaleDays:         30,
			FreshMultiplier:   1.3,
			NeutralMultiplier: 1.0,
			StaleMultiplier:   0.8,
		},
		SemanticTopK: 10,
		Timezone:     "UTC",
	}
}

// Normalize fills zero values with defaults.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if c.Recency.FreshDays <= 0 {
		c.Recency.FreshDays = def.Recency.FreshDays
	}
	if c.Recency.StaleDays < c.Recency.FreshDays {
		c.Recency.StaleDays = def.Recency.StaleDays
		if c.Recency.StaleDays < c.Recency.FreshDays {
			c.Recency.StaleDays = c.Recency.FreshDays
		}
	}
	if c.Recency.FreshMultiplier <= 0 {
		c.Recency.FreshMultiplier = def.Recency.FreshMultiplier
	}
	if c.Recency.NeutralMultiplier <= 0 {
		c.Recency.NeutralMultiplier = def.Recency.NeutralMultiplier
	}
	if c.Recency.StaleMultiplier <= 0 {
		c.Recency.StaleMultiplier = def.Recency.StaleMultiplier
	}
	if c.SemanticTopK <= 0 {
		c.SemanticTopK = def.SemanticTopK
	}
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	return c
}

func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
