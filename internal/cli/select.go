package cli

import (
	"fmt"
	"strconv"
	"strings"

	"mvncli/internal/i18n"
	"mvncli/internal/ui/selector"

	"github.com/spf13/cobra"
)

type selectOptions struct {
	multi   bool
	prompt  string
	header  string
	initial int
	checked []int
	labels  bool
}

func newSelectCmd(app *App) *cobra.Command {
	var opts selectOptions

	cmd := &cobra.Command{
		Use:   "select [flags] OPTION...",
		Short: "Pick from a list and print the chosen index",
		Long: strings.TrimSpace(`
Shows a full-screen list and prints the chosen index, or the chosen
indices (ascending, space separated) with --multi. Esc or q cancels
with a non-zero exit status and no output.`),
		Example: strings.TrimSpace(`
  mvncli select clean package test
  mvncli select --multi --prompt Goals clean package test`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !interactive(app.Term) {
				return ErrNotTerminal
			}
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			cat, err := i18n.New(cfg.Language)
			if err != nil {
				return err
			}

			res, err := selector.Run(cmd.Context(), app.Term, args, selector.Options{
				Multi:           opts.multi,
				Initial:         opts.initial,
				InitialSelected: opts.checked,
				Prompt:          opts.prompt,
				Header:          opts.header,
				Help:            cat.T("SelectorHelp"),
				Signals:         app.Signals,
			})
			if err != nil {
				return err
			}

			picked := []int{res.Index}
			if opts.multi {
				picked = res.Indices
			}
			out := make([]string, len(picked))
			for i, idx := range picked {
				if opts.labels {
					out[i] = args[idx]
				} else {
					out[i] = strconv.Itoa(idx)
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(out, " "))
			return err
		},
	}

	cmd.Flags().BoolVarP(&opts.multi, "multi", "m", false, "Allow selecting several options with Space")
	cmd.Flags().StringVarP(&opts.prompt, "prompt", "p", "", "Prompt shown above the list")
	cmd.Flags().StringVar(&opts.header, "header", "", "Text shown above the prompt")
	cmd.Flags().IntVar(&opts.initial, "initial", 0, "Initial cursor position")
	cmd.Flags().IntSliceVar(&opts.checked, "checked", nil, "Initially selected indices (with --multi)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "Print the chosen labels instead of indices")
	return cmd
}
