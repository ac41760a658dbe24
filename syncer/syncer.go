package syncer

import (
	"context"
	"strings"

	"github.com/Uniswap/lp-action-contracts/artifacts"
	"github.com/Uniswap/lp-action-contracts/config"
	"github.com/Uniswap/lp-action-contracts/rewrite"
	"github.com/Uniswap/lp-action-contracts/substitute"
	"github.com/Uniswap/lp-action-contracts/types"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
)

// Stage names a step of the pipeline. Errors returned by Run are prefixed
// with the stage that failed.
type Stage string

const (
	StageLoading      Stage = "loading"
	StageSubstituting Stage = "substituting"
	StageWriting      Stage = "writing"
)

// Result summarizes a completed run.
type Result struct {
	Destination string
	// Changed reports whether the destination content differs from the artifacts.
	Changed bool
	// Written reports whether the destination file was replaced.
	Written bool
	Report  substitute.Report
}

// Run loads every configured artifact, substitutes the bytecode into the
// destination text and writes it back. The destination is only read once all
// artifacts loaded, and only written when its content changes, so a failed
// load never touches it and repeated runs leave it untouched.
//
// In check mode nothing is written and a stale destination yields
// types.ErrOutOfSync.
func Run(ctx context.Context, cfg config.Config, logger log.Logger) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	loader := artifacts.NewLoader(cfg.BaseDir, logger)
	logger = logger.With("module", "syncer")

	res := Result{Destination: cfg.Destination}

	logger.Debug("loading artifacts", "targets", strings.Join(cfg.TargetNames(), ","))
	bytecodes, err := loader.Load(cfg.Targets)
	if err != nil {
		return res, stageErr(StageLoading, err)
	}

	if err := ctx.Err(); err != nil {
		return res, stageErr(StageSubstituting, err)
	}

	current, err := rewrite.ReadFile(cfg.Destination)
	if err != nil {
		return res, stageErr(StageSubstituting, err)
	}

	updated, report, err := substitute.Apply(
		string(current),
		types.Values(bytecodes),
		substitute.Options{AllowMissing: cfg.AllowMissing},
	)
	if err != nil {
		return res, stageErr(StageSubstituting, err)
	}
	res.Report = report
	res.Changed = updated != string(current)

	for _, name := range report.Missing() {
		logger.Warn("placeholder not found in destination, skipping", "name", name, "destination", cfg.Destination)
	}

	if cfg.Check {
		if res.Changed {
			return res, errorsmod.Wrapf(
				types.ErrOutOfSync, "%s: stale placeholders %s", cfg.Destination, strings.Join(report.Changed(), ", "),
			)
		}
		logger.Info("destination up to date", "destination", cfg.Destination)
		return res, nil
	}

	if !res.Changed {
		logger.Info("destination already up to date, nothing to write", "destination", cfg.Destination)
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return res, stageErr(StageWriting, err)
	}

	if err := rewrite.WriteFile(cfg.Destination, []byte(updated)); err != nil {
		return res, stageErr(StageWriting, err)
	}
	res.Written = true

	logger.Info(
		"updated destination",
		"destination", cfg.Destination,
		"changed", strings.Join(report.Changed(), ","),
	)
	return res, nil
}

func stageErr(stage Stage, err error) error {
	return errorsmod.Wrapf(err, "%s stage failed", stage)
}
