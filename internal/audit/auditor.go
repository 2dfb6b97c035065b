package audit

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Source provides escrow contract snapshots.
type Source interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// Auditor periodically checks snapshots provided by Source.
type Auditor struct {
	src      Source
	log      *zap.Logger
	metrics  *Metrics
	interval time.Duration
}

// NewAuditor returns Auditor which runs every interval. Metrics can be nil.
func NewAuditor(src Source, log *zap.Logger, metrics *Metrics, interval time.Duration) *Auditor {
	return &Auditor{
		src:      src,
		log:      log,
		metrics:  metrics,
		interval: interval,
	}
}

// Run audits the contract until the context is done. Failed runs are logged
// and retried on the next tick.
func (a *Auditor) Run(ctx context.Context) {
	t := time.NewTicker(a.interval)
	defer t.Stop()

	for {
		if _, err := a.RunOnce(ctx); err != nil {
			a.log.Error("escrow audit failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

// RunOnce takes a single snapshot, checks it and reports the result.
func (a *Auditor) RunOnce(ctx context.Context) (*Report, error) {
	s, err := a.src.Snapshot(ctx)
	if err == nil {
		err = s.Validate()
	}
	if err != nil {
		if a.metrics != nil {
			a.metrics.Failed()
		}
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	r := Check(s)
	if a.metrics != nil {
		a.metrics.Observe(r)
	}

	for _, v := range r.Violations {
		a.log.Warn("escrow accounting violation",
			zap.Uint32("height", r.Height),
			zap.String("kind", v.Kind),
			zap.Stringer("depositor", v.Depositor),
			zap.String("cid", v.CID),
			zap.String("details", v.Details))
	}

	a.log.Info("escrow audited",
		zap.Uint32("height", r.Height),
		zap.Int("deposits", r.Deposits),
		zap.String("deposited", FormatGAS(r.TotalDeposited)),
		zap.String("claimed", FormatGAS(r.TotalClaimed)),
		zap.String("balance", FormatGAS(r.Balance)),
		zap.String("surplus", FormatGAS(r.Surplus)),
		zap.String("claimable", FormatGAS(r.Claimable)),
		zap.Int("violations", len(r.Violations)))

	return r, nil
}
