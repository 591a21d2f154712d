package providerservice_test

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"gopharma/internal/domain"
	"gopharma/internal/pkg/database/dbtest"
	"gopharma/internal/pkg/logger"
	"gopharma/internal/repository/providerrepo"
	"gopharma/internal/repository/stockrepo"
	"gopharma/internal/service/providerservice"
	"gopharma/internal/service/stockservice"
)

type replenishmentTestContext struct {
	t      *testing.T
	db     *sql.DB
	seed   *dbtest.Seeder
	report domain.ReplenishmentReport
	err    error
}

func (c *replenishmentTestContext) reset() {
	c.db = dbtest.NewSQLite(c.t)
	c.seed = dbtest.NewSeeder(c.t, c.db)
	c.report = domain.ReplenishmentReport{}
	c.err = nil
}

func (c *replenishmentTestContext) providerNamed(id, name string) error {
	c.seed.Provider(id, name)
	return nil
}

func (c *replenishmentTestContext) theFollowingMedicinesInStock(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("expected a header and at least one medicine")
	}
	header := table.Rows[0].Cells
	for _, row := range table.Rows[1:] {
		values := map[string]string{}
		for i, cell := range row.Cells {
			values[header[i].Value] = cell.Value
		}
		ints := map[string]int{}
		for _, col := range []string{"quantity", "min", "max", "alert"} {
			n, err := strconv.Atoi(values[col])
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", col, values[col], err)
			}
			ints[col] = n
		}
		c.seed.Medicine(values["id"], values["name"], ints["quantity"], ints["min"], ints["max"], ints["alert"])
	}
	return nil
}

func (c *replenishmentTestContext) offerLinkedToMedicine(offerID, providerID string, quantity, price int, medicineID string) error {
	c.seed.Offer(offerID, "Oferta "+offerID, providerID, quantity, int64(price), int64(price))
	c.seed.Link(medicineID, offerID)
	return nil
}

func (c *replenishmentTestContext) offerHasAnOpenOrder(offerID string) error {
	var providerID string
	if err := c.db.QueryRow(`SELECT "providerId" FROM "MedicineFromProvider" WHERE "id" = $1`, offerID).Scan(&providerID); err != nil {
		return err
	}
	c.seed.OpenOrder(offerID, providerID)
	return nil
}

func (c *replenishmentTestContext) theReplenishmentReportIsBuilt() error {
	log := logger.NewNopLogger()
	stock := stockservice.NewService(stockrepo.NewMedicineRepository(c.db, 5*time.Second, log), log)
	repo := providerrepo.NewProviderRepository(c.db, nil, 5*time.Second, time.Minute, log)
	svc := providerservice.NewService(repo, stock, log, providerservice.Options{Workers: 4})

	c.report, c.err = svc.BuildReport(context.Background())
	return c.err
}

func (c *replenishmentTestContext) theReportHasRecords(n int) error {
	if len(c.report.Records) != n {
		return fmt.Errorf("expected %d records, got %d", n, len(c.report.Records))
	}
	return nil
}

func (c *replenishmentTestContext) record(name string) (domain.MedicineMatchingRecord, error) {
	for _, r := range c.report.Records {
		if r.Name == name {
			return r, nil
		}
	}
	return domain.MedicineMatchingRecord{}, fmt.Errorf("no record for %q", name)
}

func (c *replenishmentTestContext) entry(name, offerID string) (domain.MedicineMapRecord, error) {
	r, err := c.record(name)
	if err != nil {
		return domain.MedicineMapRecord{}, err
	}
	for _, e := range r.ProviderMedicines {
		if e.Medicine.ID == offerID {
			return e, nil
		}
	}
	return domain.MedicineMapRecord{}, fmt.Errorf("record %q has no offer %q", name, offerID)
}

func (c *replenishmentTestContext) theRecordRecommendsUnits(name string, units int, offerID, providerName string) error {
	e, err := c.entry(name, offerID)
	if err != nil {
		return err
	}
	if e.QuantityToOrder != units {
		return fmt.Errorf("expected %d units, got %d", units, e.QuantityToOrder)
	}
	if e.Provider.Name != providerName {
		return fmt.Errorf("expected provider %q, got %q", providerName, e.Provider.Name)
	}
	return nil
}

func (c *replenishmentTestContext) theRecordCosts(name string, cost int, offerID string) error {
	e, err := c.entry(name, offerID)
	if err != nil {
		return err
	}
	if !e.EstimatedCost.Equal(decimal.NewFromInt(int64(cost))) {
		return fmt.Errorf("expected cost %d, got %s", cost, e.EstimatedCost)
	}
	return nil
}

func (c *replenishmentTestContext) theRecordHasNoOffer(name, offerID string) error {
	if _, err := c.entry(name, offerID); err == nil {
		return fmt.Errorf("record %q should not contain offer %q", name, offerID)
	}
	return nil
}

func (c *replenishmentTestContext) medicineIsNotInTheReport(medicineID string) error {
	for _, r := range c.report.Records {
		if r.MedicineID == medicineID {
			return fmt.Errorf("medicine %q should not be in the report", medicineID)
		}
	}
	return nil
}

func (c *replenishmentTestContext) theRecordsAreOrderedAs(names string) error {
	want := strings.Split(names, ", ")
	got := make([]string, 0, len(c.report.Records))
	for _, r := range c.report.Records {
		got = append(got, r.Name)
	}
	if strings.Join(got, ", ") != strings.Join(want, ", ") {
		return fmt.Errorf("expected order %v, got %v", want, got)
	}
	return nil
}

func (c *replenishmentTestContext) noMedicineWasSkipped() error {
	if len(c.report.Skipped) != 0 {
		return fmt.Errorf("expected no skipped medicines, got %v", c.report.Skipped)
	}
	return nil
}

func initializeScenario(t *testing.T) func(*godog.ScenarioContext) {
	return func(ctx *godog.ScenarioContext) {
		tc := &replenishmentTestContext{t: t}

		ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
			tc.reset()
			return ctx, nil
		})

		// Given
		ctx.Step(`^provider "([^"]*)" named "([^"]*)"$`, tc.providerNamed)
		ctx.Step(`^the following medicines in stock:$`, tc.theFollowingMedicinesInStock)
		ctx.Step(`^offer "([^"]*)" from provider "([^"]*)" with quantity (\d+) at price (\d+) is linked to medicine "([^"]*)"$`, tc.offerLinkedToMedicine)
		ctx.Step(`^offer "([^"]*)" has an open order$`, tc.offerHasAnOpenOrder)

		// When
		ctx.Step(`^the replenishment report is built$`, tc.theReplenishmentReportIsBuilt)

		// Then
		ctx.Step(`^the report has (\d+) records?$`, tc.theReportHasRecords)
		ctx.Step(`^the record for "([^"]*)" recommends (-?\d+) units of offer "([^"]*)" from "([^"]*)"$`, tc.theRecordRecommendsUnits)
		ctx.Step(`^the record for "([^"]*)" costs (\d+) for offer "([^"]*)"$`, tc.theRecordCosts)
		ctx.Step(`^the record for "([^"]*)" has no offer "([^"]*)"$`, tc.theRecordHasNoOffer)
		ctx.Step(`^medicine "([^"]*)" is not in the report$`, tc.medicineIsNotInTheReport)
		ctx.Step(`^the records are ordered as "([^"]*)"$`, tc.theRecordsAreOrderedAs)
		ctx.Step(`^no medicine was skipped$`, tc.noMedicineWasSkipped)
	}
}

func TestReplenishmentFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeScenario(t),
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../../../features/replenishment.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
