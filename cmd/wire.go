package cmd

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/spf13/viper"

	configstore "github.com/bnema/opsman-cli/internal/adapters/config"
	"github.com/bnema/opsman-cli/internal/adapters/opsman"
	"github.com/bnema/opsman-cli/internal/adapters/prompt"
	"github.com/bnema/opsman-cli/internal/adapters/uaa"
	"github.com/bnema/opsman-cli/internal/application"
	"github.com/bnema/opsman-cli/internal/domain"
)

type app struct {
	store    *configstore.Store
	prompter *prompt.Terminal
}

func wireApp() (*app, error) {
	store, err := configstore.NewStore(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire config store: %w", err)
	}

	return &app{
		store:    store,
		prompter: prompt.NewTerminal(),
	}, nil
}

// settings resolves the effective appliance settings: the persisted config,
// with OM_TARGET / OM_SKIP_SSL_VALIDATION environment overrides on top.
// Commands that talk to the appliance fail here, locally, when no target is
// configured.
func (a *app) settings() (configstore.Settings, error) {
	settings, err := a.store.Settings()
	if err != nil {
		return configstore.Settings{}, err
	}

	if target := os.Getenv("OM_TARGET"); target != "" {
		settings.TargetURL = target
	}
	if skip := os.Getenv("OM_SKIP_SSL_VALIDATION"); skip != "" {
		parsed, err := strconv.ParseBool(skip)
		if err != nil {
			return configstore.Settings{}, fmt.Errorf("parse OM_SKIP_SSL_VALIDATION: %w", err)
		}
		settings.SkipSSLValidation = parsed
	}

	if settings.TargetURL == "" {
		return configstore.Settings{}, fmt.Errorf("%w: run \"om target <url>\" first", domain.ErrNoTarget)
	}

	return settings, nil
}

func (a *app) httpClient(settings configstore.Settings) *http.Client {
	return opsman.NewHTTPClient(settings.SkipSSLValidation)
}

func (a *app) session(settings configstore.Settings) *application.Session {
	authority := uaa.Client{
		BaseURL:    settings.TargetURL,
		HTTPClient: a.httpClient(settings),
	}

	return application.NewSession(authority, authority, a.prompter, a.store)
}

// applianceClient builds the authenticated API client. Each request pulls
// its token through the session, so re-authentication happens exactly where
// a stale token is discovered.
func (a *app) applianceClient(settings configstore.Settings) *opsman.Client {
	return &opsman.Client{
		BaseURL:    settings.TargetURL,
		Tokens:     a.session(settings),
		HTTPClient: a.httpClient(settings),
	}
}
