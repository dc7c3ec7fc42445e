package refdata

import (
	"errors"
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// constError is an immutable sentinel error type.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrIncompatiblePack indicates the pack requires a newer tool version.
	ErrIncompatiblePack = constError("reference pack requires a newer tool version")

	// ErrEmptyPack indicates the pack file carried no tables at all.
	ErrEmptyPack = constError("reference pack contains no tables")
)

// Pack is the on-disk YAML form of a reference-table bundle. Alternate
// packs let operators pin a regulation vintage without rebuilding the
// tool; sections absent from the pack fall back to the built-ins.
type Pack struct {
	// Version labels the pack itself (regulation vintage, e.g. "2026.1").
	Version string `yaml:"version"`

	// MinToolVersion is the lowest tool version whose table schema the
	// pack was authored against. Empty means no constraint.
	MinToolVersion string `yaml:"min_tool_version"`

	Tables Tables `yaml:"tables"`
}

// LoadPack reads a YAML reference pack, checks its tool-version
// constraint against toolVersion, and overlays its sections onto the
// built-in defaults. Each table present in the pack replaces the
// built-in table wholesale; there is no per-key merge.
func LoadPack(path, toolVersion string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("reading reference pack %s: %w", path, err)
	}

	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return Tables{}, fmt.Errorf("parsing reference pack %s: %w", path, err)
	}

	if err := checkToolVersion(pack.MinToolVersion, toolVersion); err != nil {
		return Tables{}, fmt.Errorf("reference pack %s (version %q): %w", path, pack.Version, err)
	}

	if isEmpty(pack.Tables) {
		return Tables{}, fmt.Errorf("reference pack %s: %w", path, ErrEmptyPack)
	}

	return overlay(Default(), pack.Tables), nil
}

// checkToolVersion compares the pack's min_tool_version constraint with
// the running tool version. Development builds (unparseable versions,
// e.g. "dev") skip the check rather than refusing every pack.
func checkToolVersion(minVersion, toolVersion string) error {
	if minVersion == "" {
		return nil
	}
	minimum, err := semver.NewVersion(minVersion)
	if err != nil {
		return fmt.Errorf("invalid min_tool_version %q: %w", minVersion, err)
	}
	current, err := semver.NewVersion(toolVersion)
	if err != nil {
		// Not a release build; trust the operator.
		return nil
	}
	if current.LessThan(minimum) {
		return fmt.Errorf("%w: need >= %s, running %s", ErrIncompatiblePack, minimum, current)
	}
	return nil
}

// overlay replaces each base table with the pack's version of it when
// the pack supplies one.
func overlay(base, pack Tables) Tables {
	if len(pack.Fuels) > 0 {
		base.Fuels = pack.Fuels
	}
	if len(pack.GWP) > 0 {
		base.GWP = pack.GWP
	}
	if len(pack.PhaseIn) > 0 {
		base.PhaseIn = pack.PhaseIn
	}
	if len(pack.CertPrices) > 0 {
		base.CertPrices = pack.CertPrices
	}
	if len(pack.Markup) > 0 {
		base.Markup = pack.Markup
	}
	if len(pack.Intensities) > 0 {
		base.Intensities = pack.Intensities
	}
	if len(pack.Credits) > 0 {
		base.Credits = pack.Credits
	}
	if len(pack.CommodityPrices) > 0 {
		base.CommodityPrices = pack.CommodityPrices
	}
	return base
}

func isEmpty(t Tables) bool {
	return len(t.Fuels) == 0 && len(t.GWP) == 0 && len(t.PhaseIn) == 0 &&
		len(t.CertPrices) == 0 && len(t.Markup) == 0 && len(t.Intensities) == 0 &&
		len(t.Credits) == 0 && len(t.CommodityPrices) == 0
}

// Validate checks structural invariants of a table set: the payable
// share must be monotonically non-decreasing across the projection
// window, markup schedules must be non-decreasing and capped, and the
// CO2 multiplier must be exactly 1.
func Validate(t Tables) error {
	var errs []error

	if gwp, ok := t.GWP[GasCO2]; ok && gwp != 1 {
		errs = append(errs, fmt.Errorf("GWP for CO2 must be 1, got %g", gwp))
	}

	prev := 0.0
	for year := StartYear; year <= EndYear; year++ {
		share := t.PayableShare(year)
		if share < prev {
			errs = append(errs, fmt.Errorf("payable share decreases at %d: %g -> %g", year, prev, share))
		}
		prev = share
	}

	for sector, sched := range t.Markup {
		limit := StandardMarkupCap
		if sector == SectorFertiliser {
			limit = FertiliserMarkupCap
		}
		prevRate := 0.0
		for year := StartYear; year <= EndYear; year++ {
			rate := sched[year]
			if rate > limit {
				errs = append(errs, fmt.Errorf("markup for %s exceeds cap in %d: %g > %g", sector, year, rate, limit))
			}
			if rate < prevRate {
				errs = append(errs, fmt.Errorf("markup for %s decreases at %d: %g -> %g", sector, year, prevRate, rate))
			}
			prevRate = rate
		}
	}

	return errors.Join(errs...)
}
