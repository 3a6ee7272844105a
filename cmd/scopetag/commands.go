package main

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/scopedtags/dom/domdbg"
	"github.com/npillmayer/scopedtags/stylesheet"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   appName + " [command]",
	Short: "Scope custom element names in markup and CSS",
	Long: appName + " rewrites logical custom element names to concrete names,\n" +
		"unique for a scope, and back.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var markupCmd = &cobra.Command{
	Use:   "markup [file]",
	Short: "Rewrite element names in markup",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := input(args)
		if err != nil {
			return err
		}
		sess, err := setup()
		if err != nil {
			return err
		}
		if !flagDOM {
			_, err = io.WriteString(cmd.OutOrStdout(), sess.polyfill.RewriteMarkup(text, sess.scope))
			return err
		}
		doc, err := sess.polyfill.Document(sess.scope)
		if err != nil {
			return err
		}
		root, err := doc.Parse(text)
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), domdbg.Print(root, doc.TagName))
		return err
	},
}

var cssCmd = &cobra.Command{
	Use:   "css [file]",
	Short: "Rewrite type selectors in a style sheet",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := input(args)
		if err != nil {
			return err
		}
		sess, err := setup()
		if err != nil {
			return err
		}
		if flagRules {
			sheet, err := stylesheet.Parse(text)
			if err != nil {
				return err
			}
			sheet.Scope(sess.scope, sess.polyfill.Selectors)
			return listRules(cmd.OutOrStdout(), sheet)
		}
		out, err := sess.polyfill.RewriteCSS(text, sess.scope)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}
		_, err = io.WriteString(cmd.OutOrStdout(), out)
		return err
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore [file]",
	Short: "Restore logical element names in scoped markup",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := input(args)
		if err != nil {
			return err
		}
		sess, err := setup()
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), sess.polyfill.Markup.Restore(text))
		return err
	},
}

var scopesCmd = &cobra.Command{
	Use:   "scopes",
	Short: "Print the scope tree with its definitions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := setup()
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), sess.polyfill.Registry.Dump())
		return err
	},
}

// listRules prints the scoped selectors of a style sheet together with the
// declarations of each rule.
func listRules(w io.Writer, sheet stylesheet.StyleSheet) error {
	if sheet.Empty() {
		_, err := fmt.Fprintln(w, "no rules")
		return err
	}
	for _, r := range sheet.Rules() {
		if r.IsAtRule() {
			fmt.Fprintf(w, "at-rule %s\n", r.Selector())
			continue
		}
		fmt.Fprintln(w, r.Selector())
		for _, prop := range r.Properties() {
			important := ""
			if r.IsImportant(prop) {
				important = " !important"
			}
			fmt.Fprintf(w, "    %s: %s%s\n", prop, r.Value(prop), important)
		}
	}
	return nil
}

// input reads the file given as the only argument, or stdin.
func input(args []string) (string, error) {
	if len(args) == 0 {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(args[0])
	return string(b), err
}
