package cmd

import (
	"github.com/Daskott/sosphone/app"
	"github.com/Daskott/sosphone/platform"
	"github.com/Daskott/sosphone/platform/alarm"
	"github.com/Daskott/sosphone/platform/terminal"
	"github.com/Daskott/sosphone/platform/twilio"
	"github.com/Daskott/sosphone/prefs"
	"github.com/Daskott/sosphone/profile"
	"github.com/Daskott/sosphone/shared"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// hostStores are the named stores the app runs on
type hostStores struct {
	prefs    prefs.Store
	platform prefs.Store
}

// storesStub, when set, is used instead of the sqlite stores. Only for tests.
var storesStub *hostStores

// host runs the app on the terminal, for the length of one command
type host struct {
	config *shared.Config
	db     *gorm.DB
	stores hostStores

	app    *app.App
	term   *terminal.Terminal
	clock  *alarm.Clock
	router *platform.Router
	twilio *twilio.ClientWrapper
}

func openHost(cmd *cobra.Command) (*host, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	h := &host{config: cfg}
	if err = h.openStores(); err != nil {
		return nil, err
	}

	validator, err := profile.NewValidator(cfg.Sosphone.Region)
	if err != nil {
		h.close()
		return nil, err
	}

	h.term = terminal.New(cmd.OutOrStdout(), cmd.InOrStdin(), h.stores.platform)
	h.clock = alarm.NewClock(cfg.Sosphone.TimeZone, cmd.OutOrStdout())

	if cfg.Twilio.Enabled() {
		h.twilio = twilio.NewClient(cfg.Twilio, cfg.Sosphone.Region, isTestEnv)
	}

	h.router, err = h.newRouter()
	if err != nil {
		h.close()
		return nil, err
	}

	h.app = app.New(app.Deps{
		Store:       h.stores.prefs,
		Validator:   validator,
		Notifier:    h.term,
		Dispatcher:  h.router,
		Permissions: h.term,
		Now:         h.clock.Now,
	})

	return h, nil
}

func (h *host) close() {
	if h.clock != nil {
		h.clock.Stop()
	}

	if h.db != nil {
		if err := prefs.CloseDB(h.db); err != nil {
			logg.Error(err)
		}
	}
}

func (h *host) openStores() error {
	if storesStub != nil {
		h.stores = *storesStub
		return nil
	}

	if isEphemeral {
		h.stores = hostStores{prefs: prefs.NewMemoryStore(), platform: prefs.NewMemoryStore()}
		return nil
	}

	db, err := prefs.OpenDB(h.config.Sqlite.PassPhrase, h.config.Sosphone.DataDir)
	if err != nil {
		return err
	}

	h.db = db
	h.stores = hostStores{
		prefs:    prefs.NewSQLiteStore(db, shared.PREFS_STORE_NAME),
		platform: prefs.NewSQLiteStore(db, shared.PLATFORM_STORE_NAME),
	}
	return nil
}

// newRouter wires every request kind to what carries it out on this machine.
// Calls go through twilio when it's configured, otherwise the number is printed.
func (h *host) newRouter() (*platform.Router, error) {
	router := platform.NewRouter()

	call := h.term.Open
	if h.twilio != nil {
		call = h.twilio.Handle
	}

	handlers := map[platform.Kind]platform.Handler{
		platform.KindDirectCall:   call,
		platform.KindViewURL:      h.term.Open,
		platform.KindViewLocation: h.term.Open,
		platform.KindComposeEmail: h.term.Open,
		platform.KindSetAlarm:     h.clock.Handle,
		platform.KindAppSettings:  h.term.Settings,
	}

	for kind, handler := range handlers {
		if err := router.Register(kind, handler); err != nil {
			return nil, err
		}
	}

	return router, nil
}

// launch opens the app & fails if it can't start
func (h *host) launch() error {
	return h.app.Launch()
}
