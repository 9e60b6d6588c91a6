package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/andrescamacho/motif-planner/internal/domain/production"
)

// PlannerConfig holds the calculation defaults
type PlannerConfig struct {
	// Maximum recipe nesting before a build is aborted
	MaxDepth int `mapstructure:"max_depth" validate:"min=1,max=1024"`

	// Directory holding parts.json, heroes_minion.json, heroes_spell.json and equipments.json
	CatalogDir string `mapstructure:"catalog_dir"`

	// CatalogSource selects where the planner reads the catalog from: json or database
	CatalogSource string `mapstructure:"catalog_source" validate:"required,oneof=json database"`

	// Defaults is the bundle used when a request carries none
	Defaults production.ConfigurationBundle `mapstructure:"defaults"`
}

// registerPlannerDefaults seeds viper with the stock bundle so that partial
// config files and MP_PLANNER_DEFAULTS_* variables override single keys.
func registerPlannerDefaults(v *viper.Viper) {
	registerBundleDefaults(v, "planner.defaults.", production.DefaultBundle())
}

func registerBundleDefaults(v *viper.Viper, prefix string, base production.ConfigurationBundle) {
	v.SetDefault(prefix+"tiers.canvas", string(base.Tiers.Canvas))
	v.SetDefault(prefix+"tiers.composite_canvas", string(base.Tiers.CompositeCanvas))
	v.SetDefault(prefix+"tiers.motif_maker", string(base.Tiers.MotifMaker))
	v.SetDefault(prefix+"tiers.pipette", string(base.Tiers.Pipette))
	v.SetDefault(prefix+"tiers.spell_generator", string(base.Tiers.SpellGenerator))

	v.SetDefault(prefix+"coefficients.canvas", base.Coefficients.Canvas)
	v.SetDefault(prefix+"coefficients.motif_maker", base.Coefficients.MotifMaker)
	v.SetDefault(prefix+"coefficients.pipette", base.Coefficients.Pipette)
	v.SetDefault(prefix+"coefficients.mixer", base.Coefficients.Mixer)
	v.SetDefault(prefix+"coefficients.mixer_efficiency", base.Coefficients.MixerEfficiency)
	v.SetDefault(prefix+"coefficients.scissors", base.Coefficients.Scissors)
	v.SetDefault(prefix+"coefficients.albedo", base.Coefficients.Albedo)
	v.SetDefault(prefix+"coefficients.albedo_efficiency", base.Coefficients.AlbedoEfficiency)

	v.SetDefault(prefix+"boosts.circle", base.Boosts.Circle)
	v.SetDefault(prefix+"boosts.square", base.Boosts.Square)
	v.SetDefault(prefix+"boosts.triangle", base.Boosts.Triangle)

	v.SetDefault(prefix+"options.scissors_double_port", base.Options.ScissorsDoublePort)
	v.SetDefault(prefix+"options.tutu_double_port", base.Options.TutuDoublePort)
	v.SetDefault(prefix+"options.triple_ink_bottle_consumption", base.Options.TripleInkBottleConsumption)
	v.SetDefault(prefix+"options.big_motif_bonus", base.Options.BigMotifBonus)
}

// LoadBundleProfile reads a configuration bundle from a YAML or JSON profile file.
// Keys absent from the file keep their value from base.
func LoadBundleProfile(path string, base production.ConfigurationBundle) (production.ConfigurationBundle, error) {
	v := viper.New()
	v.SetConfigFile(path)
	registerBundleDefaults(v, "", base)

	if err := v.ReadInConfig(); err != nil {
		return production.ConfigurationBundle{}, fmt.Errorf("failed to read bundle profile: %w", err)
	}

	var bundle production.ConfigurationBundle
	if err := v.Unmarshal(&bundle); err != nil {
		return production.ConfigurationBundle{}, fmt.Errorf("failed to unmarshal bundle profile: %w", err)
	}

	if err := NewValidator().Validate(bundle); err != nil {
		return production.ConfigurationBundle{}, fmt.Errorf("invalid bundle profile: %w", err)
	}
	return bundle, nil
}
