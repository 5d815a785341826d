package pricing

import (
	"os"

	"gopkg.in/yaml.v3"
)

type tierConfig struct {
	MinMinutes     int     `yaml:"min_minutes"`
	MaxMinutes     int     `yaml:"max_minutes"`
	Price          float64 `yaml:"price"`
	ConsumeMinutes int     `yaml:"consume_minutes"`
	Repeat         bool    `yaml:"repeat"`
}

type tariffConfig struct {
	Currency     string       `yaml:"currency"`
	GraceMinutes *int         `yaml:"grace_minutes"`
	Tiers        []tierConfig `yaml:"tiers"`
}

// LoadTariffTable loads the tariff from the yaml file named by the
// TARIFF_CONFIG environment variable. Without one, the default table is
// returned. Fields left out of the file keep their defaults.
func LoadTariffTable() (TariffTable, error) {
	table := DefaultTariffTable()

	path := os.Getenv("TARIFF_CONFIG")
	if path == "" {
		return table, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return table, err
	}
	var cfg tariffConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return table, err
	}

	if cfg.Currency != "" {
		table.Currency = cfg.Currency
	}
	if cfg.GraceMinutes != nil {
		table.GraceMinutes = *cfg.GraceMinutes
	}
	if len(cfg.Tiers) > 0 {
		tiers := make([]Tier, 0, len(cfg.Tiers))
		for _, tc := range cfg.Tiers {
			tiers = append(tiers, Tier{
				MinMinutes:     tc.MinMinutes,
				MaxMinutes:     tc.MaxMinutes,
				Price:          tc.Price,
				ConsumeMinutes: tc.ConsumeMinutes,
				Repeat:         tc.Repeat,
			})
		}
		table.Tiers = tiers
	}

	if err := table.Validate(); err != nil {
		return table, err
	}
	return table, nil
}
