package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Accounts []accountSchema `toml:"accounts"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported accounts schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

func (s fileSchema) indexOf(number int) int {
	for i, entry := range s.Accounts {
		if entry.Number == number {
			return i
		}
	}

	return -1
}

type accountSchema struct {
	Number       int     `toml:"number"`
	Balance      float64 `toml:"balance"`
	InterestRate float64 `toml:"interest_rate"`
}
