package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/greenpharma/greenpharma-backend/pkg/db/models"
	"github.com/greenpharma/greenpharma-backend/pkg/logger"
	"github.com/greenpharma/greenpharma-backend/pkg/metrics"
	"github.com/greenpharma/greenpharma-backend/pkg/pricing"
)

const expiryJobName = "expiry-sweep"

type expiringProductSource interface {
	ListExpiring(ctx context.Context, horizon time.Time) ([]models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
}

// ExpiryJob sweeps the catalog for expired and soon-to-expire products. It
// clears the active offer on expired listings and reports both counts.
type ExpiryJob struct {
	repo        expiringProductSource
	logg        *logger.Logger
	metrics     *metrics.CronJobMetrics
	warningDays int
	now         func() time.Time
}

// NewExpiryJob builds the product expiry sweep.
func NewExpiryJob(repo expiringProductSource, logg *logger.Logger, cronMetrics *metrics.CronJobMetrics, warningDays int) (*ExpiryJob, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if warningDays <= 0 {
		warningDays = pricing.ExpiryWarningDays
	}
	return &ExpiryJob{
		repo:        repo,
		logg:        logg,
		metrics:     cronMetrics,
		warningDays: warningDays,
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

// Name identifies the job in logs and metrics.
func (j *ExpiryJob) Name() string {
	return expiryJobName
}

// Run executes one sweep. Per-product failures are collected so one bad row
// does not stop the rest of the sweep.
func (j *ExpiryJob) Run(ctx context.Context) error {
	asOf := j.now()
	horizon := asOf.AddDate(0, 0, j.warningDays)

	products, err := j.repo.ListExpiring(ctx, horizon)
	if err != nil {
		return fmt.Errorf("list expiring products: %w", err)
	}

	var expired, expiringSoon int
	var errs error
	for i := range products {
		product := &products[i]
		if pricing.IsExpired(product.ExpiryDate, asOf) {
			expired++
			if product.OfferPercent > 0 {
				product.OfferPercent = 0
				if _, err := j.repo.UpdateProduct(ctx, product); err != nil {
					errs = multierr.Append(errs, fmt.Errorf("clear offer on product %s: %w", product.ID, err))
					continue
				}
			}
			productCtx := j.logg.WithFields(ctx, map[string]any{
				"product_id":  product.ID,
				"expiry_date": product.ExpiryDate,
			})
			j.logg.Warn(productCtx, "product is past its expiry date")
			continue
		}

		expiringSoon++
		productCtx := j.logg.WithFields(ctx, map[string]any{
			"product_id":  product.ID,
			"expiry_date": product.ExpiryDate,
		})
		j.logg.Warn(productCtx, "product expires within the warning window")
	}

	if j.metrics != nil {
		j.metrics.SetExpiryState("expired", expired)
		j.metrics.SetExpiryState("expiring_soon", expiringSoon)
	}

	summaryCtx := j.logg.WithFields(ctx, map[string]any{
		"expired":       expired,
		"expiring_soon": expiringSoon,
	})
	j.logg.Info(summaryCtx, "expiry sweep finished")
	return errs
}
