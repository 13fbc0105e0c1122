// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"github.com/pdiddy/kwallet-extract/internal/plaintext"
	"github.com/pdiddy/kwallet-extract/internal/wallet"
	"github.com/pdiddy/kwallet-extract/pkg/types"
)

// Check is the verification outcome for one output file.
type Check struct {
	Key    string             `json:"key" yaml:"key"`
	Name   string             `json:"name" yaml:"name"`
	Status types.VerifyStatus `json:"status" yaml:"status"`
}

// VerifyReport holds the result of comparing an output directory with a
// wallet.
type VerifyReport struct {
	Checks []Check
}

// Failed returns the number of checks that are not ok.
func (r VerifyReport) Failed() int {
	n := 0
	for _, c := range r.Checks {
		if c.Status != types.VerifyOK {
			n++
		}
	}
	return n
}

// Verify compares the files in cfg.OutDir with the entries of cfg.Folder.
// Only the last entry for each key is checked, since that is the one a
// run leaves on disk. Checks are returned in document order of those
// entries.
func Verify(wl *wallet.Wallet, cfg types.ExtractConfig) (VerifyReport, error) {
	cfg = cfg.WithDefaults()

	records, err := Plan(wl, cfg.Folder, cfg.MissingText)
	if err != nil {
		return VerifyReport{}, err
	}

	var (
		live []types.Record
		keys []string
	)
	for _, r := range records {
		if r.Overwritten {
			continue
		}
		live = append(live, r)
		keys = append(keys, r.Key)
	}

	values, _, err := plaintext.Load(cfg.OutDir, keys)
	if err != nil {
		return VerifyReport{}, err
	}

	report := VerifyReport{Checks: make([]Check, 0, len(live))}
	for _, r := range live {
		c := Check{Key: r.Key, Name: r.Name, Status: types.VerifyOK}
		got, ok := values[r.Key]
		switch {
		case !ok:
			c.Status = types.VerifyMissing
		case got != r.Content(cfg.MissingText):
			c.Status = types.VerifyMismatch
		}
		report.Checks = append(report.Checks, c)
	}
	return report, nil
}
