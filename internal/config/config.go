package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/lastclick-network/lastclick/internal/core/application"
	"github.com/lastclick-network/lastclick/internal/core/ports"
	"github.com/lastclick-network/lastclick/internal/infrastructure/clock"
	"github.com/lastclick-network/lastclick/internal/infrastructure/db"
	"github.com/lastclick-network/lastclick/internal/infrastructure/ledger"
	timescheduler "github.com/lastclick-network/lastclick/internal/infrastructure/scheduler/gocron"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	supportedDbs = supportedType{
		"badger": {},
		"sqlite": {},
	}
)

type Config struct {
	Datadir         string
	Port            uint32
	NoTLS           bool
	LogLevel        int
	TLSExtraIPs     []string
	TLSExtraDomains []string

	DbType       string
	DbDir        string
	EnableFaucet bool
	Operator     string
	GcInterval   int64

	repo      ports.RepoManager
	ledger    ports.Ledger
	clock     ports.Clock
	scheduler ports.SchedulerService
	svc       application.Service
}

func (c *Config) String() string {
	json, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Sprintf("error while marshalling config JSON: %s", err)
	}
	return string(json)
}

var (
	Datadir        = "DATADIR"
	Port           = "PORT"
	NoTLS          = "NO_TLS"
	TLSExtraIP     = "TLS_EXTRA_IP"
	TLSExtraDomain = "TLS_EXTRA_DOMAIN"
	DbType         = "DB_TYPE"
	LogLevel       = "LOG_LEVEL"
	EnableFaucet   = "ENABLE_FAUCET"
	Operator       = "OPERATOR"
	GcInterval     = "GC_INTERVAL"

	defaultDatadir      = btcutil.AppDataDir("lastclickd", false)
	DefaultPort         = 7171
	defaultNoTLS        = true
	defaultDbType       = "badger"
	defaultLogLevel     = 4
	defaultEnableFaucet = false
	defaultGcInterval   = 300
)

func LoadConfig() (*Config, error) {
	viper.SetEnvPrefix("LASTCLICK")
	viper.AutomaticEnv()

	viper.SetDefault(Datadir, defaultDatadir)
	viper.SetDefault(Port, DefaultPort)
	viper.SetDefault(NoTLS, defaultNoTLS)
	viper.SetDefault(DbType, defaultDbType)
	viper.SetDefault(LogLevel, defaultLogLevel)
	viper.SetDefault(EnableFaucet, defaultEnableFaucet)
	viper.SetDefault(GcInterval, defaultGcInterval)

	if err := initDatadir(); err != nil {
		return nil, fmt.Errorf("error while creating datadir: %s", err)
	}

	return &Config{
		Datadir:         viper.GetString(Datadir),
		Port:            viper.GetUint32(Port),
		NoTLS:           viper.GetBool(NoTLS),
		LogLevel:        viper.GetInt(LogLevel),
		TLSExtraIPs:     viper.GetStringSlice(TLSExtraIP),
		TLSExtraDomains: viper.GetStringSlice(TLSExtraDomain),
		DbType:          viper.GetString(DbType),
		DbDir:           filepath.Join(viper.GetString(Datadir), "db"),
		EnableFaucet:    viper.GetBool(EnableFaucet),
		Operator:        strings.TrimSpace(viper.GetString(Operator)),
		GcInterval:      viper.GetInt64(GcInterval),
	}, nil
}

func (c *Config) Validate() error {
	if !supportedDbs.supports(c.DbType) {
		return fmt.Errorf("db type not supported, please select one of: %s", supportedDbs)
	}
	if c.GcInterval < 0 {
		return fmt.Errorf("invalid gc interval, must be positive or 0 to disable")
	}
	if c.LogLevel < int(log.PanicLevel) || c.LogLevel > int(log.TraceLevel) {
		return fmt.Errorf("invalid log level %d", c.LogLevel)
	}

	if err := c.repoManager(); err != nil {
		return err
	}
	if err := c.ledgerService(); err != nil {
		return err
	}
	if err := c.clockService(); err != nil {
		return err
	}
	if err := c.schedulerService(); err != nil {
		return err
	}
	return c.appService()
}

func (c *Config) AppService() (application.Service, error) {
	if c.svc == nil {
		if err := c.appService(); err != nil {
			return nil, err
		}
	}
	return c.svc, nil
}

func (c *Config) Clock() ports.Clock {
	return c.clock
}

func (c *Config) repoManager() error {
	var dataStoreConfig []interface{}
	logger := log.New()
	logger.SetLevel(log.GetLevel())

	switch c.DbType {
	case "badger":
		dataStoreConfig = []interface{}{c.DbDir, logger}
	case "sqlite":
		if err := makeDirectoryIfNotExists(c.DbDir); err != nil {
			return err
		}
		dataStoreConfig = []interface{}{c.DbDir}
	default:
		return fmt.Errorf("unknown db type")
	}

	svc, err := db.NewService(db.ServiceConfig{
		DataStoreType:   c.DbType,
		DataStoreConfig: dataStoreConfig,
	})
	if err != nil {
		return err
	}

	c.repo = svc
	return nil
}

func (c *Config) ledgerService() error {
	c.ledger = ledger.NewService(c.repo)
	return nil
}

func (c *Config) clockService() error {
	c.clock = clock.NewWallClock()
	return nil
}

func (c *Config) schedulerService() error {
	c.scheduler = timescheduler.NewScheduler()
	return nil
}

func (c *Config) appService() error {
	svc, err := application.NewService(
		application.Config{
			EnableFaucet: c.EnableFaucet,
			GcInterval:   c.GcInterval,
		},
		c.repo, c.ledger, c.scheduler,
	)
	if err != nil {
		return err
	}

	c.svc = svc
	return nil
}

func initDatadir() error {
	datadir := viper.GetString(Datadir)
	return makeDirectoryIfNotExists(datadir)
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

type supportedType map[string]struct{}

func (t supportedType) String() string {
	types := make([]string, 0, len(t))
	for tt := range t {
		types = append(types, tt)
	}
	return strings.Join(types, " | ")
}

func (t supportedType) supports(typeStr string) bool {
	_, ok := t[typeStr]
	return ok
}
