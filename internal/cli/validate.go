package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-textdomain"
)

func newValidateCmd(a *app) *cobra.Command {
	var domain string

	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Load catalog files and report their entries per locale",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			domain = firstNonEmpty(domain, a.cfg.Domain, textdomain.DefaultDomain)
			translations, err := textdomain.NewFileLoader(args...).WithDomain(domain).Load()
			if err != nil {
				return err
			}

			locales := make([]string, 0, len(translations))
			for locale := range translations {
				locales = append(locales, locale)
			}
			sort.Strings(locales)

			for _, locale := range locales {
				simple, plural := 0, 0
				for _, entry := range translations[locale].Entries {
					if entry.IsPlural() {
						plural++
					} else {
						simple++
					}
				}
				fmt.Fprintf(a.stdout, "%s\t%s\t%d simple\t%d plural\n", domain, locale, simple, plural)
			}
			a.logger.Debug("textdomain.validate", "files", args, "locales", locales)
			return nil
		},
	}

	cmd.Flags().StringVarP(&domain, "domain", "d", "", "domain stamped on the catalogs")
	return cmd
}
