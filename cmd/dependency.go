package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"rewards/domain"
	"rewards/domain/config"
	"rewards/infrastructure/dbhandler"
	"rewards/infrastructure/logger"
	"rewards/infrastructure/retry"
	"rewards/interface/exporter"
	"rewards/interface/oracle"
	"rewards/interface/repository"
	"rewards/usecase"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"
)

var ErrorNoLedgerStorage = errors.New("this command needs storage 'postgres'; " +
	"'memory' keeps nothing between commands, try 'simulate' instead")

// defaultDependencyInject wires every interactor over the postgres ledger.
func defaultDependencyInject() error {
	programId, err := config.RequireProgramId()
	if err != nil {
		return err
	}
	if !config.IsPostgres() {
		return ErrorNoLedgerStorage
	}

	log = logger.New(config.IsVerbose())
	exporter.Init()

	program, err = domain.NewProgram(programId)
	if err != nil {
		return err
	}

	dbPool, err = openDatabase()
	if err != nil {
		return err
	}
	dbHandler := dbhandler.DBHandler{DB: dbPool}
	ledger := repository.NewPostgresLedger(dbHandler)
	holderLister = repository.NewHolderRepository(dbHandler)

	deployment = &usecase.Deployment{
		Program: program,
		Ledger:  ledger,
		Clock:   clockwork.NewRealClock(),
		Logger:  log,
	}
	if err = deployment.Validate(); err != nil {
		return err
	}

	priceOracle, err := newPriceOracle()
	if err != nil {
		return err
	}

	genesisInteractor = usecase.NewGenesisInteractor(deployment)
	stateInteractor = usecase.NewStateInteractor(deployment)
	transferInteractor = usecase.NewTransferInteractor(deployment)
	swapInteractor = usecase.NewSwapInteractor(deployment, priceOracle)
	distributionInteractor = usecase.NewDistributionInteractor(deployment)
	taxInteractor = usecase.NewTaxInteractor(deployment)
	statisticInteractor = usecase.NewStatisticInteractor(deployment)
	keeperInteractor = usecase.NewKeeperInteractor(deployment, distributionInteractor, statisticInteractor,
		holderLister, config.GetDistributionHolders())
	return nil
}

func openDatabase() (*sql.DB, error) {
	db, err := sql.Open("postgres", config.GetDbUri())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(1 * time.Minute)
	db.SetConnMaxLifetime(4 * time.Hour)
	return db, nil
}

func newPriceOracle() (usecase.PriceOracle, error) {
	switch config.GetOracle() {
	case config.OracleJupiter:
		return oracle.NewJupiterOracle(oracle.JupiterConfig{
			Logger:      log,
			QuoteURL:    config.GetJupiterQuoteUrl(),
			Limiter:     rate.NewLimiter(rate.Limit(config.GetJupiterRps()), 1),
			Retry:       retry.DefaultConfig(),
			SlippageBps: config.GetSlippageBps(),
		})
	case config.OracleFixed:
		return oracle.NewFixedRateOracle(config.GetSwapRate())
	default:
		return nil, fmt.Errorf("%w: %v", config.ErrorInvalidOracle, config.GetOracle())
	}
}

func closeDependencies() {
	if dbPool != nil {
		_ = dbPool.Close()
	}
}

var log *slog.Logger
var dbPool *sql.DB
var program *domain.Program
var deployment *usecase.Deployment
var holderLister usecase.HolderLister
var genesisInteractor *usecase.GenesisInteractor
var stateInteractor *usecase.StateInteractor
var transferInteractor *usecase.TransferInteractor
var swapInteractor *usecase.SwapInteractor
var distributionInteractor *usecase.DistributionInteractor
var taxInteractor *usecase.TaxInteractor
var statisticInteractor *usecase.StatisticInteractor
var keeperInteractor *usecase.KeeperInteractor
