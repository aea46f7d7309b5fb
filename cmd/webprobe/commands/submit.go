package commands

import (
	"fmt"
	"log/slog"
	"os"

	"webprobe/lib/element"

	"github.com/spf13/cobra"
)

var (
	submitKind     string
	submitUrl      string
	submitAction   string
	submitMethod   string
	submitFormName string
	submitParams   []string
	submitNoFollow bool
)

func init() {
	flags := submitCmd.Flags()
	flags.StringVar(&submitKind, "kind", string(element.KindLink), "The element kind: link, form, cookie or header.")
	flags.StringVar(&submitUrl, "url", "", "The page the element belongs to.")
	flags.StringVar(&submitAction, "action", "", "The element action, relative to --url. Defaults to --url.")
	flags.StringVar(&submitMethod, "method", "", "The element method, defaults depend on the kind.")
	flags.StringVar(&submitFormName, "name", "", "The form name, only used with --kind form.")
	flags.StringArrayVarP(&submitParams, "param", "p", nil, "An input in the form name=value, can be repeated.")
	flags.BoolVar(&submitNoFollow, "no-follow", false, "Do not follow redirects.")
	rootCmd.AddCommand(submitCmd)
}

var submitCmd = &cobra.Command{
	Use:   "submit --url <url> [--kind <kind>] [-p name=value]...",
	Short: "Submits a single element and prints the response.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if submitUrl == "" && submitAction == "" {
			return fmt.Errorf("one of --url or --action is required")
		}
		pairs, err := parseParams(submitParams)
		if err != nil {
			return err
		}

		client, registry, err := newClient()
		if err != nil {
			return err
		}

		e, err := buildElement(element.Kind(submitKind), element.Config{
			URL:       submitUrl,
			Action:    submitAction,
			Method:    element.ParseMethod(submitMethod),
			Inputs:    pairs,
			Platforms: registry,
			Transport: client,
		}, submitFormName)
		if err != nil {
			return err
		}

		h, err := element.Submit(cmd.Context(), e, element.Options{
			FollowRedirects: element.Bool(!submitNoFollow),
			Auditor:         cliAuditor("webprobe submit"),
		}, nil)
		if err != nil {
			return err
		}
		slog.Debug("submitted element", "request_id", h.ID(), "action", e.Action())

		res, err := h.Wait()
		if err != nil {
			return err
		}

		t := responseTable(e, h, res)
		t.SetOutputMirror(os.Stdout)
		t.Render()
		return nil
	},
}
