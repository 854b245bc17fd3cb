// Command importdata loads the exchange-rate table and CPI series into Postgres
// for deployments that set data.rates.source / data.cpi.source to "postgres".
// With --write-csv it instead writes the CPI series to a CSV file, which is how
// data/cpi_us.csv is regenerated from the BLS API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"etbinflation/internal/adapters"
	"etbinflation/internal/adapters/file"
	"etbinflation/internal/adapters/httpclient"
	"etbinflation/internal/adapters/postgres"
	"etbinflation/internal/config"
	"etbinflation/internal/domain"
	"etbinflation/internal/platform/db"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

func main() {
	ratesPath := flag.StringP("rates", "r", "data/exchange_rates.json", "exchange rates JSON file, empty to skip")
	cpiPath := flag.StringP("cpi", "c", "data/cpi_us.csv", "CPI CSV file, empty to skip")
	fromBLS := flag.Bool("bls", false, "fetch CPI from the BLS API instead of --cpi")
	writeCSV := flag.String("write-csv", "", "write the CPI series to this CSV file instead of Postgres")
	flag.Parse()

	logrus.SetOutput(os.Stdout)
	var err error
	if *writeCSV != "" {
		err = exportCPI(*cpiPath, *fromBLS, *writeCSV)
	} else {
		err = run(*ratesPath, *cpiPath, *fromBLS)
	}
	if err != nil {
		logrus.WithError(err).Error("Import failed")
		os.Exit(1)
	}
}

func run(ratesPath, cpiPath string, fromBLS bool) error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Open(ctx, appCfg.DbServer)
	if err != nil {
		return err
	}
	defer pool.Close()

	if ratesPath != "" {
		raw, loadErr := file.NewRateTableSource(ratesPath).LoadRates(ctx)
		if loadErr != nil {
			return loadErr
		}
		table, tableErr := domain.NewExchangeRateTable(raw)
		if tableErr != nil {
			return tableErr
		}
		if err = postgres.NewRateTableRepository(pool).ReplaceRates(ctx, table.Raw()); err != nil {
			return err
		}
		logrus.Infof("✅ Imported %d monthly rates, current %.4f", table.Len(), table.Current())
	}

	cpiSource := cpiSourceFor(appCfg, cpiPath, fromBLS)
	if cpiSource == nil {
		return nil
	}
	values, err := loadCPI(ctx, cpiSource)
	if err != nil {
		return err
	}
	n, err := postgres.NewCPIRepository(pool).UpsertCPI(ctx, values)
	if err != nil {
		return err
	}
	logrus.Infof("✅ Imported %d CPI months", n)
	return nil
}

func exportCPI(cpiPath string, fromBLS bool, out string) error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cpiSource := cpiSourceFor(appCfg, cpiPath, fromBLS)
	if cpiSource == nil {
		return errors.New("nothing to export: pass --bls or --cpi")
	}
	values, err := loadCPI(ctx, cpiSource)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err = file.WriteCPI(f, values); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	logrus.Infof("✅ Wrote %d CPI months to %s", len(values), out)
	return nil
}

func cpiSourceFor(appCfg *config.AppConfig, cpiPath string, fromBLS bool) adapters.CPISource {
	switch {
	case fromBLS:
		httpClient := &http.Client{Timeout: time.Duration(max(appCfg.HTTPClient.TimeoutSeconds, 1)) * time.Second}
		return httpclient.NewBLSClient(httpClient, appCfg.BLSAPI.BaseURL, appCfg.BLSAPI.SeriesID, appCfg.BLSAPI.APIKey, appCfg.BLSAPI.StartYear)
	case cpiPath != "":
		return file.NewCPISource(cpiPath)
	default:
		return nil
	}
}

func loadCPI(ctx context.Context, source adapters.CPISource) (map[domain.Period]float64, error) {
	values, err := source.LoadCPI(ctx)
	if err != nil {
		return nil, err
	}
	series, err := domain.NewCPISeries(values)
	if err != nil {
		return nil, err
	}
	if gaps := series.Gaps(); len(gaps) > 0 {
		logrus.Warnf("CPI series is missing %d months, first %s", len(gaps), gaps[0].Key())
	}
	return values, nil
}
