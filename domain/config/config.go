package config

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	OracleFixed   = "fixed"
	OracleJupiter = "jupiter"

	DefaultJupiterQuoteUrl = "https://quote-api.jup.ag/v6/quote"
)

var (
	ErrorInvalidStorage   = fmt.Errorf("storage must be equal to 'memory' or 'postgres' only")
	ErrorNoDbUri          = fmt.Errorf("service_db_uri is required for postgres storage")
	ErrorInvalidProgramId = fmt.Errorf("invalid program id")
	ErrorNoProgramId      = fmt.Errorf("program_id is required")
	ErrorInvalidOracle    = fmt.Errorf("oracle must be equal to 'fixed' or 'jupiter' only")
	ErrorInvalidSwapRate  = fmt.Errorf("swap rate denominator must be greater than zero")
	ErrorInvalidSlippage  = fmt.Errorf("slippage_bps must not exceed 10000")
	ErrorInvalidHolder    = fmt.Errorf("invalid distribution holder address")

	ErrorInvalidDistributeInterval = fmt.Errorf("invalid time interval for distribute process")
	ErrorInvalidRefreshInterval    = fmt.Errorf("invalid time interval for refresh process")
)

var (
	TrailingSlashRE = regexp.MustCompile("/+$")
)

var (
	storage string
	dbUri   string

	programId   solana.PublicKey
	keypairPath string

	oracle              string
	swapRateNumerator   uint64
	swapRateDenominator uint64
	jupiterQuoteUrl     string
	jupiterRps          float64
	slippageBps         uint16

	distributionHolders []solana.PublicKey
	distributeInterval  time.Duration
	refreshInterval     time.Duration

	metricsAddress string
	pidFile        string
	verbose        bool
)

func init() {
	setDefaults()
}

func setDefaults() {
	viper.SetDefault("oracle", OracleFixed)
	viper.SetDefault("swap_rate_numerator", 10)
	viper.SetDefault("swap_rate_denominator", 1)
	viper.SetDefault("jupiter_quote_url", DefaultJupiterQuoteUrl)
	viper.SetDefault("jupiter_rps", 1.0)
	viper.SetDefault("slippage_bps", 50)
	viper.SetDefault("distribute_interval", "1m")
	viper.SetDefault("refresh_interval", "15s")
	viper.SetDefault("metrics_address", ":9100")
	viper.SetDefault("pid_file", "rewards.pid")
}

func ReadConfig(filePath string) error {
	if filePath != "" {
		viper.SetConfigFile(filePath)
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		slog.Warn("⚠️ failed reading config file", "error", err)
	}

	if err := initializeVariables(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	return nil
}

// This method processes the configuration parameters and keeps the processed values
// in some variables for later accesses rapidly.
func initializeVariables() error {
	var err error

	// Storage stuff
	storage = strings.TrimSpace(strings.ToLower(viper.GetString("storage")))
	if storage != "" && storage != StorageMemory && storage != StoragePostgres {
		return ErrorInvalidStorage
	}
	dbUri = TrailingSlashRE.ReplaceAllString(viper.GetString("service_db_uri"), "")
	if storage == StoragePostgres && dbUri == "" {
		return ErrorNoDbUri
	}

	// Program stuff
	programId = solana.PublicKey{}
	if value := strings.TrimSpace(viper.GetString("program_id")); value != "" {
		programId, err = solana.PublicKeyFromBase58(value)
		if err != nil {
			return ErrorInvalidProgramId
		}
	}
	keypairPath = strings.TrimSpace(viper.GetString("keypair"))

	// Oracle stuff
	oracle = strings.TrimSpace(strings.ToLower(viper.GetString("oracle")))
	if oracle != OracleFixed && oracle != OracleJupiter {
		return ErrorInvalidOracle
	}
	swapRateNumerator = viper.GetUint64("swap_rate_numerator")
	swapRateDenominator = viper.GetUint64("swap_rate_denominator")
	if swapRateDenominator == 0 {
		return ErrorInvalidSwapRate
	}
	jupiterQuoteUrl = TrailingSlashRE.ReplaceAllString(viper.GetString("jupiter_quote_url"), "")
	jupiterRps = viper.GetFloat64("jupiter_rps")
	slippage := viper.GetUint("slippage_bps")
	if slippage > 10000 {
		return ErrorInvalidSlippage
	}
	slippageBps = uint16(slippage)

	//---------------------------------------------------------------
	// distribution holders
	distributionHolders = distributionHolders[:0]
	for _, holder := range viper.GetStringSlice("distribution_holders") {
		key, err := solana.PublicKeyFromBase58(strings.TrimSpace(holder))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrorInvalidHolder, holder)
		}
		distributionHolders = append(distributionHolders, key)
	}

	//---------------------------------------------------------------
	// distribute interval
	strValue := viper.GetString("distribute_interval")
	distributeInterval, err = time.ParseDuration(strValue)
	if err != nil || distributeInterval <= 0 {
		return ErrorInvalidDistributeInterval
	}

	//---------------------------------------------------------------
	// refresh interval
	strValue = viper.GetString("refresh_interval")
	refreshInterval, err = time.ParseDuration(strValue)
	if err != nil || refreshInterval <= 0 {
		return ErrorInvalidRefreshInterval
	}

	metricsAddress = strings.TrimSpace(viper.GetString("metrics_address"))
	pidFile = strings.TrimSpace(viper.GetString("pid_file"))
	verbose = viper.GetBool("verbose")

	return nil
}

//-------------------------------------------------------------------
// Normal configuration values

func GetStorage() string {
	return storage
}

func GetDbUri() string {
	return dbUri
}

func GetProgramId() solana.PublicKey {
	return programId
}

// RequireProgramId is GetProgramId for commands that cannot run without one.
func RequireProgramId() (solana.PublicKey, error) {
	if programId.IsZero() {
		return programId, ErrorNoProgramId
	}
	return programId, nil
}

func GetKeypairPath() string {
	return keypairPath
}

func GetOracle() string {
	return oracle
}

func GetSwapRate() (numerator, denominator uint64) {
	return swapRateNumerator, swapRateDenominator
}

func GetJupiterQuoteUrl() string {
	return jupiterQuoteUrl
}

func GetJupiterRps() float64 {
	return jupiterRps
}

func GetSlippageBps() uint16 {
	return slippageBps
}

func GetDistributionHolders() []solana.PublicKey {
	return distributionHolders
}

func GetDistributeInterval() time.Duration {
	return distributeInterval
}

func GetRefreshInterval() time.Duration {
	return refreshInterval
}

func GetMetricsAddress() string {
	return metricsAddress
}

func GetPidFile() string {
	return pidFile
}

// -------------------------------------------------------------------
// Evaluating values

func IsVerbose() bool {
	return verbose
}

func IsPostgres() bool {
	return storage == StoragePostgres
}
