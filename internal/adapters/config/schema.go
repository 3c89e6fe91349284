package config

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Target  targetSchema  `toml:"target"`
	Session sessionSchema `toml:"session"`
}

type targetSchema struct {
	URL               string `toml:"url"`
	SkipSSLValidation bool   `toml:"skip_ssl_validation"`
}

type sessionSchema struct {
	AccessToken string `toml:"access_token"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported config schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

func fromSchema(file fileSchema) Settings {
	return Settings{
		TargetURL:         file.Target.URL,
		SkipSSLValidation: file.Target.SkipSSLValidation,
		AccessToken:       file.Session.AccessToken,
	}
}
