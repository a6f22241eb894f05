package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-mapform/pkg/config"
	"github.com/goliatone/go-mapform/pkg/fields"
	"github.com/goliatone/go-mapform/pkg/forms"
)

type renderOptions struct {
	configDir string
	form      string
	data      string
	initial   string
	admin     bool
	clean     bool
	media     bool
}

func newRenderCommand(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render, or clean a submission for, a configured form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.configDir, "config", ".", "Directory of JSON/YAML configuration documents")
	cmd.Flags().StringVarP(&opts.form, "form", "f", "", "Form name")
	cmd.Flags().StringVar(&opts.data, "data", "", "YAML/JSON file of submitted values")
	cmd.Flags().StringVar(&opts.initial, "initial", "", "YAML/JSON file of initial values")
	cmd.Flags().BoolVar(&opts.admin, "admin", false, "Render geometry fields through the admin map")
	cmd.Flags().BoolVar(&opts.clean, "clean", false, "Clean the submission and print the result as JSON")
	cmd.Flags().BoolVar(&opts.media, "media", false, "Print the scripts and stylesheets the form needs")
	_ = cmd.MarkFlagRequired("form")
	return cmd
}

func runRender(cmd *cobra.Command, root *rootOptions, opts *renderOptions) error {
	doc, err := config.LoadFS(os.DirFS(opts.configDir))
	if err != nil {
		return err
	}
	formCfg, ok := doc.Form(opts.form)
	if !ok {
		return fmt.Errorf("mapform: form %q not found in %s (have %v)", opts.form, opts.configDir, doc.Names())
	}

	form, err := buildForm(formCfg, root, opts.admin)
	if err != nil {
		return err
	}

	if opts.initial != "" {
		initial := map[string]any{}
		if err := readDocument(cmd, opts.initial, &initial); err != nil {
			return err
		}
		form.SetInitial(initial)
	}
	if opts.data != "" {
		data := map[string]any{}
		if err := readDocument(cmd, opts.data, &data); err != nil {
			return err
		}
		form.Bind(data)
	}

	out := cmd.OutOrStdout()
	switch {
	case opts.media:
		return writeJSON(out, form.Media())
	case opts.clean:
		cleaned, err := form.Clean()
		var errs *fields.Errors
		if errors.As(err, &errs) {
			if writeErr := writeJSON(out, map[string]any{"errors": errs.Fields, "form_errors": errs.Form}); writeErr != nil {
				return writeErr
			}
			return err
		}
		if err != nil {
			return err
		}
		return writeJSON(out, cleaned)
	default:
		html, err := form.Render()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, html)
		return err
	}
}

func buildForm(formCfg config.FormConfig, root *rootOptions, admin bool) (*forms.Form, error) {
	if !admin {
		return formCfg.Build(forms.WithLogger(root.logger))
	}
	modelAdmin := formCfg.Admin()
	modelAdmin.Logger = root.logger
	set, err := formCfg.AdminFieldSet(modelAdmin)
	if err != nil {
		return nil, err
	}
	return modelAdmin.Form(set)
}
