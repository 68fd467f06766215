package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WanderingWalnut/Grantly/internal/discovery"
	"github.com/WanderingWalnut/Grantly/internal/model"
	"github.com/WanderingWalnut/Grantly/internal/service"
)

func searchCmd(load ConfigLoader) *cobra.Command {
	var (
		profile        model.OrganizationProfile
		addressProv    string
		province       string
		minAmount      int64
		deadlineBefore string
		maxResults     int
		mode           string
		profileFile    string
	)

	c := &cobra.Command{
		Use:   "search",
		Short: "Find grants for an organization and print them as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if mode != "" {
				cfg.Discovery.Mode = mode
			}

			if profileFile != "" {
				fromFile, err := loadProfile(profileFile)
				if err != nil {
					return err
				}
				profile = mergeProfile(fromFile, profile)
			}
			if addressProv != "" {
				if profile.Address == nil {
					profile.Address = &model.Address{Country: model.DefaultCountry}
				}
				profile.Address.Province = addressProv
			}
			if profile.LegalName == "" {
				return fmt.Errorf("--legal-name or a profile file with legal_name is required")
			}

			filters := &model.SearchFilters{Province: province}
			if cmd.Flags().Changed("min-amount") {
				filters.MinAmount = &minAmount
			}
			if cmd.Flags().Changed("max-results") {
				filters.MaxResults = &maxResults
			}
			if deadlineBefore != "" {
				d, err := model.ParseDate(deadlineBefore)
				if err != nil {
					return fmt.Errorf("--deadline-before: %w", err)
				}
				filters.DeadlineBefore = &d
			}

			finder, err := discovery.FromConfig(cfg)
			if err != nil {
				return err
			}

			res, err := service.NewGrantService(finder, nil).Search(cmd.Context(), profile, filters)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}

	c.Flags().StringVar(&profileFile, "profile", "", "YAML organization profile; flags override its fields")
	c.Flags().StringVar(&profile.LegalName, "legal-name", "", "Organization legal name")
	c.Flags().StringVar(&profile.OperatingName, "operating-name", "", "Operating name")
	c.Flags().StringVar((*string)(&profile.Structure), "structure", "", "nonprofit, charity, coop or other")
	c.Flags().StringVar(&profile.NAICSCode, "naics", "", "NAICS code")
	c.Flags().StringSliceVar(&profile.SectorTags, "sector", nil, "Sector tag (repeatable)")
	c.Flags().StringVar(&addressProv, "address-province", "", "Province of the organization address, e.g. AB")
	c.Flags().StringVar(&province, "province", "", "Keep only grants for this province and national grants")
	c.Flags().Int64Var(&minAmount, "min-amount", 0, "Minimum funding amount in CAD")
	c.Flags().StringVar(&deadlineBefore, "deadline-before", "", "Keep grants with a deadline before YYYY-MM-DD")
	c.Flags().IntVar(&maxResults, "max-results", model.DefaultMaxResults, "Result cap (1-50)")
	c.Flags().StringVar(&mode, "mode", "", "Override GRANT_FINDER_MODE (mock or live)")

	return c
}

// mergeProfile fills the unset fields of flags from file.
func mergeProfile(file, flags model.OrganizationProfile) model.OrganizationProfile {
	out := file.Clone()
	if flags.LegalName != "" {
		out.LegalName = flags.LegalName
	}
	if flags.OperatingName != "" {
		out.OperatingName = flags.OperatingName
	}
	if flags.Structure != "" {
		out.Structure = flags.Structure
	}
	if flags.NAICSCode != "" {
		out.NAICSCode = flags.NAICSCode
	}
	if len(flags.SectorTags) > 0 {
		out.SectorTags = flags.SectorTags
	}
	return out
}
